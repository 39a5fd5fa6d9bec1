package agents

import (
	"errors"
	"fmt"
)

// ReasoningError marks a stage whose reasoning model errored or returned
// an unusable response. It fails the entire pipeline run; there is no
// silent HOLD fallback for a broken stage.
type ReasoningError struct {
	Stage string
	Err   error
}

func (e *ReasoningError) Error() string {
	return fmt.Sprintf("reasoning failed in %s: %v", e.Stage, e.Err)
}

func (e *ReasoningError) Unwrap() error { return e.Err }

// IsReasoning reports whether err wraps a ReasoningError.
func IsReasoning(err error) bool {
	var re *ReasoningError
	return errors.As(err, &re)
}
