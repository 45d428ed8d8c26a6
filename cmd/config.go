package cmd

import "fmt"

const (
	DefaultOutboxRelaySchedule  = "*/5 * * * * *"
	DefaultOutboxRelayBatchSize = 100
)

type Config struct {
	HTTPPort              string
	DBHost                string
	DBPort                string
	DBUser                string
	DBPassword            string
	DBName                string
	DBSslMode             string
	KafkaHost             string
	KafkaOrderEventsTopic string
	OutboxRelaySchedule   string
	OutboxRelayBatchSize  int
}

// WithDefaults fills the optional settings that were left empty.
func (c Config) WithDefaults() Config {
	if c.HTTPPort == "" {
		c.HTTPPort = "8080"
	}
	if c.DBSslMode == "" {
		c.DBSslMode = "disable"
	}
	if c.KafkaOrderEventsTopic == "" {
		c.KafkaOrderEventsTopic = "order.events"
	}
	if c.OutboxRelaySchedule == "" {
		c.OutboxRelaySchedule = DefaultOutboxRelaySchedule
	}
	if c.OutboxRelayBatchSize == 0 {
		c.OutboxRelayBatchSize = DefaultOutboxRelayBatchSize
	}
	return c
}

// DSN is the PostgreSQL connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
