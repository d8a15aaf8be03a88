package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingProperty is returned when a task is asked for a property it does not carry.
	ErrMissingProperty = errors.New("missing task property")
	// ErrMissingEstimate wraps ErrMissingProperty for the estimatedhours key.
	ErrMissingEstimate = fmt.Errorf("missing estimate: %w", ErrMissingProperty)
	// ErrInvalidEstimate is returned when estimatedhours is not a number.
	ErrInvalidEstimate = errors.New("invalid estimate")
)
