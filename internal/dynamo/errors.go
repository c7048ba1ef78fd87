package dynamo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrIntegrationFailure = errors.New("integration failure")
	ErrDegenerateVariance = errors.New("degenerate output variance")
	ErrDesignMismatch     = errors.New("output length does not match design")
)

// SimError records where along a trajectory the integration went bad.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func (e SimError) Unwrap() error { return ErrIntegrationFailure }
