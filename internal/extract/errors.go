package extract

import "fmt"

// MalformedResponseError indicates the response text could not be reduced to
// parseable JSON. RawText carries the offending text for logging; it is never
// shown verbatim to end users.
type MalformedResponseError struct {
	Message string
	RawText string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// IncompleteDataError indicates the JSON parsed but lacked mandatory
// top-level sections.
type IncompleteDataError struct {
	Missing []string
}

func (e *IncompleteDataError) Error() string {
	return fmt.Sprintf("incomplete report data: missing sections %v", e.Missing)
}
