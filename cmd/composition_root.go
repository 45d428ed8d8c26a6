package cmd

import (
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	codes      kernel.CodeGenerator
	desk       *services.CheckoutDesk
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	codes := kernel.NewRandomCodeGenerator()
	desk, err := services.NewCheckoutDesk(codes)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		codes:      codes,
		desk:       desk,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.desk)
}

func (c *CompositionRoot) CreateVerifyDeliveryCommandHandler() commands.VerifyDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateIssueActiveOrderCodesCommandHandler() commands.IssueActiveOrderCodesCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueActiveOrderCodesCommandHandler(f, c.codes)
}

func (c *CompositionRoot) CreateRelayOrderEventsCommandHandler() commands.RelayOrderEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOrderEventsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetSellerDeliveriesQueryHandler() queries.GetSellerDeliveriesQueryHandler {
	return queries.NewGetSellerDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCheckoutCommandHandler(),
		c.CreateVerifyDeliveryCommandHandler(),
		c.CreateIssueActiveOrderCodesCommandHandler(),
		c.CreateGetSellerDeliveriesQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayOrderEventsCommandHandler(),
		jobs.RelaySettings{
			Schedule:  c.config.OutboxRelaySchedule,
			BatchSize: c.config.OutboxRelayBatchSize,
		},
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
