package platform

import (
	"errors"
)

var (
	// ErrAlreadyRunning is an error returned when run can't be started because previous run is not finished yet.
	ErrAlreadyRunning = errors.New("synchronization already running")
	// ErrValidation is returned when entity is missing required fields.
	ErrValidation = errors.New("entity validation failed")
	// ErrDependencyNotReady is returned when entity's parent or category is not synchronized yet.
	ErrDependencyNotReady = errors.New("dependency not synchronized yet")
	// ErrCategoryCycle is returned for categories which are part of or descend from parent cycle.
	ErrCategoryCycle = errors.New("category parent cycle")
	// ErrNotFound is returned when local entity doesn't exist.
	ErrNotFound = errors.New("entity not found")
)
