package main

import (
	"fmt"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// batchFailedError makes the process exit non-zero after a report was
// printed for a batch with failed entities.
type batchFailedError struct {
	failed int
	total  int
}

func (e *batchFailedError) Error() string {
	return fmt.Sprintf("%d of %d entities failed; run `crmbulk retry` to retry them", e.failed, e.total)
}
