package signal

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is wrapped by every [ParamError].
var ErrInvalidParameter = errors.New("signal: invalid parameter")

// Kind classifies a rejected synthesis parameter.
type Kind int

const (
	// InvalidFrequency marks a zero or non-finite fundamental frequency.
	InvalidFrequency Kind = iota + 1
	// InvalidCycleCount marks a cycle count that is not > 0.
	InvalidCycleCount
	// UnboundedSampleCount marks a sample count above the configured ceiling.
	UnboundedSampleCount
)

func (k Kind) String() string {
	switch k {
	case InvalidFrequency:
		return "InvalidFrequency"
	case InvalidCycleCount:
		return "InvalidCycleCount"
	case UnboundedSampleCount:
		return "UnboundedSampleCount"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParamError reports which synthesis parameter was rejected and why.
type ParamError struct {
	Kind  Kind
	Field string
	Value float64
	// Limit is the sample ceiling for UnboundedSampleCount.
	Limit int
}

func (e *ParamError) Error() string {
	switch e.Kind {
	case InvalidFrequency:
		return fmt.Sprintf("%s must be non-zero and finite: %v", e.Field, e.Value)
	case InvalidCycleCount:
		return fmt.Sprintf("%s must be > 0: %v", e.Field, e.Value)
	case UnboundedSampleCount:
		return fmt.Sprintf("%s yields %.0f samples, limit is %d", e.Field, e.Value, e.Limit)
	default:
		return fmt.Sprintf("%s is invalid: %v", e.Field, e.Value)
	}
}

// Unwrap lets errors.Is match [ErrInvalidParameter].
func (e *ParamError) Unwrap() error {
	return ErrInvalidParameter
}

// KindOf returns the kind of a ParamError anywhere in err's chain,
// or 0 if there is none.
func KindOf(err error) Kind {
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}
