package youtube

import (
	"errors"
	"fmt"
)

// ErrInvalidLink means the input does not match either accepted host form.
var ErrInvalidLink = errors.New("youtube: not a recognized video link")

// ExtractionError is the user-reportable failure from the download executor:
// a non-benign extraction-tool error, or any unexpected error converted at
// that boundary.
type ExtractionError struct {
	Msg string
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Msg, e.Err)
	}
	return "extraction failed: " + e.Msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func extractionFailed(msg string, err error) error {
	return &ExtractionError{Msg: msg, Err: err}
}
