package pipeline

import "fmt"

// AbortError is the terminal failure state of a run. No further stages
// execute once it is returned.
type AbortError struct {
	Stage  Stage
	Reason string
	Err    error
}

func (e *AbortError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *AbortError) Unwrap() error {
	return e.Err
}
