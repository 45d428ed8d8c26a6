package kernel

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MinDeliveryCode is the smallest code a CodeGenerator may issue.
	MinDeliveryCode = 100000

	// MaxDeliveryCode is the largest code a CodeGenerator may issue.
	MaxDeliveryCode = 999999

	codeDigestLength = sha256.Size * 2
)

var (
	// ErrDeliveryCodeIsNotConstructed is returned when a zero-value DeliveryCode is used.
	ErrDeliveryCodeIsNotConstructed = errors.New("DeliveryCode must be created via NewDeliveryCode or a CodeGenerator")

	// ErrCodeDigestIsNotConstructed is returned when a zero-value CodeDigest is used.
	ErrCodeDigestIsNotConstructed = errors.New("CodeDigest must be created via DeliveryCode.Digest or CodeDigestFromString")
)

// DeliveryCode is the raw six digit one-time code the buyer reads out to the
// seller at handoff. It only ever lives in memory: persistence stores its
// CodeDigest.
type DeliveryCode struct {
	value int
	guard guard.ConstructorGuard
}

// NewDeliveryCode wraps an integer in [MinDeliveryCode, MaxDeliveryCode].
func NewDeliveryCode(value int) (DeliveryCode, error) {
	if value < MinDeliveryCode || value > MaxDeliveryCode {
		return DeliveryCode{}, errs.NewValueIsOutOfRangeError("delivery code", value, MinDeliveryCode, MaxDeliveryCode)
	}

	return DeliveryCode{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the code was created through NewDeliveryCode.
func (c DeliveryCode) Validate() error {
	return c.guard.Validate(ErrDeliveryCodeIsNotConstructed)
}

// String returns the six digits as the buyer sees them.
func (c DeliveryCode) String() string {
	return strconv.Itoa(c.value)
}

// Digest returns the one-way digest that is stored in place of the code.
func (c DeliveryCode) Digest() CodeDigest {
	return DigestOf(c.String())
}

// CodeDigest is the hex encoded SHA-256 of a delivery code.
type CodeDigest struct {
	value string
	guard guard.ConstructorGuard
}

// DigestOf hashes any presented code. Presented codes are not parsed first:
// a malformed code simply produces a digest that matches nothing.
func DigestOf(code string) CodeDigest {
	sum := sha256.Sum256([]byte(code))
	return CodeDigest{
		value: hex.EncodeToString(sum[:]),
		guard: guard.NewConstructorGuard(),
	}
}

// CodeDigestFromString restores a digest read from storage.
func CodeDigestFromString(s string) (CodeDigest, error) {
	if len(s) != codeDigestLength {
		return CodeDigest{}, errs.NewValueIsInvalidErrorWithCause(
			"code digest",
			fmt.Errorf("expected %d hex characters, got %d", codeDigestLength, len(s)),
		)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return CodeDigest{}, errs.NewValueIsInvalidErrorWithCause("code digest", err)
	}

	return CodeDigest{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the digest was produced by DigestOf or CodeDigestFromString.
func (d CodeDigest) Validate() error {
	return d.guard.Validate(ErrCodeDigestIsNotConstructed)
}

// String returns the hex digest. It is meant for persistence only.
func (d CodeDigest) String() string {
	return d.value
}

// Matches reports whether the presented code hashes to this digest.
//
// The presented value is hashed as is: no trimming or parsing, so " 482913"
// does not match "482913". The digests are compared in constant time. A zero
// value digest matches nothing.
//
// Example:
//
//	code, _ := kernel.NewDeliveryCode(482913)
//	digest := code.Digest()
//
//	digest.Matches("482913") // true
//	digest.Matches("000000") // false
func (d CodeDigest) Matches(presented string) bool {
	if d.Validate() != nil {
		return false
	}
	candidate := DigestOf(presented)
	return subtle.ConstantTimeCompare([]byte(d.value), []byte(candidate.value)) == 1
}

// IsEqual compares two digests.
func (d CodeDigest) IsEqual(other CodeDigest) bool {
	return d.value == other.value
}

// CodeGenerator issues fresh delivery codes.
type CodeGenerator interface {
	Generate() (DeliveryCode, error)
}

// RandomCodeGenerator draws codes uniformly from [MinDeliveryCode, MaxDeliveryCode]
// using a cryptographically secure source.
type RandomCodeGenerator struct {
	source io.Reader
}

// NewRandomCodeGenerator returns a generator backed by crypto/rand.
func NewRandomCodeGenerator() RandomCodeGenerator {
	return RandomCodeGenerator{source: rand.Reader}
}

// NewRandomCodeGeneratorFromSource returns a generator reading entropy from source.
func NewRandomCodeGeneratorFromSource(source io.Reader) RandomCodeGenerator {
	return RandomCodeGenerator{source: source}
}

// Generate draws the next code.
func (g RandomCodeGenerator) Generate() (DeliveryCode, error) {
	source := g.source
	if source == nil {
		source = rand.Reader
	}

	n, err := rand.Int(source, big.NewInt(MaxDeliveryCode-MinDeliveryCode+1))
	if err != nil {
		return DeliveryCode{}, fmt.Errorf("generate delivery code: %w", err)
	}

	return NewDeliveryCode(MinDeliveryCode + int(n.Int64()))
}
