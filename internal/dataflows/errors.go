package dataflows

import (
	"errors"
	"fmt"
)

// RetrievalError marks a failed external data fetch after retries were
// exhausted. Orchestrator runs fail when one surfaces from a stage.
type RetrievalError struct {
	Source string
	Op     string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval %s/%s: %v", e.Source, e.Op, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// IsRetrieval reports whether err wraps a RetrievalError.
func IsRetrieval(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}

func retrievalErr(source, op string, err error) error {
	if err == nil {
		return nil
	}
	return &RetrievalError{Source: source, Op: op, Err: err}
}
