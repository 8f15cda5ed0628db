package scheduler

import "errors"

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("scheduler already started")

	// ErrInvalidTask is returned when a task has no name, no body, or no
	// cadence.
	ErrInvalidTask = errors.New("invalid task definition")

	// ErrDuplicateTask is returned when a task name is registered twice.
	ErrDuplicateTask = errors.New("task name already registered")

	// ErrUnknownTask is returned when referring to a task that was never
	// registered.
	ErrUnknownTask = errors.New("unknown task")
)
