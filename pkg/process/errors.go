package process

import "errors"

var (
	// ErrNoCommand indicates a request without a program name.
	ErrNoCommand = errors.New("no command configured")
	// ErrStart indicates the program could not be launched.
	ErrStart = errors.New("process launch failed")
	// ErrExit indicates the program exited with a non-zero status.
	ErrExit = errors.New("process exited with error")
	// ErrTimeout indicates the program exceeded its wall-clock budget and was killed.
	ErrTimeout = errors.New("process timed out")
	// ErrCanceled indicates the caller's context ended before the program exited.
	ErrCanceled = errors.New("process canceled")
)
