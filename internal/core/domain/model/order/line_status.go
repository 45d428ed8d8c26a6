package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// LineStatus is the delivery state of one order line.
//
//	InProcess ──> Completed
//
// Completed is terminal. There is no cancelled or expired state.
type LineStatus int

const (
	// UnknownLineStatus catches uninitialized values.
	UnknownLineStatus LineStatus = iota

	// InProcess lines wait for the buyer to hand the code to the seller.
	InProcess

	// Completed lines were handed over.
	Completed
)

func getLineStatusStrings() map[LineStatus]string {
	return map[LineStatus]string{
		UnknownLineStatus: "unknown",
		InProcess:         "in process",
		Completed:         "completed",
	}
}

// Validate rejects UnknownLineStatus and out-of-range values.
func (s LineStatus) Validate() error {
	if s != InProcess && s != Completed {
		return errs.NewValueIsInvalidErrorWithCause("line status is invalid", fmt.Errorf("%d is not a valid line status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s LineStatus) String() string {
	if str, ok := getLineStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateRotate checks that a new delivery code may be issued.
// Only InProcess lines have a code worth rotating.
func (s LineStatus) ValidateRotate() error {
	return s.validatePending("rotate a code")
}

// ValidateComplete checks that the line may be handed over.
func (s LineStatus) ValidateComplete() error {
	return s.validatePending("complete a delivery")
}

// Complete transitions InProcess to Completed.
func (s LineStatus) Complete() (LineStatus, error) {
	if err := s.ValidateComplete(); err != nil {
		return UnknownLineStatus, err
	}
	return Completed, nil
}

func (s LineStatus) validatePending(action string) error {
	switch s {
	case InProcess:
		return nil
	case Completed:
		return ErrLineAlreadyCompleted
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"line status is invalid",
			fmt.Errorf("%s is not a valid status to %s", s, action),
		)
	}
}
