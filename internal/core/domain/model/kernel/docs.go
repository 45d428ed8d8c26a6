// Package kernel holds the value objects shared by every aggregate of the
// marketplace: identifiers and the one-time delivery codes that prove an
// in-person handoff.
//
// The package includes:
//   - UUID: identifier for orders, products, users and events
//   - DeliveryCode: raw six digit code, kept in memory only
//   - CodeDigest: SHA-256 digest stored in place of a DeliveryCode
//   - CodeGenerator: source of fresh codes (crypto/rand in production)
//
// Every value object rejects its zero value through Validate.
package kernel
