package field

import "fmt"

// DecodeError reports a course image that could not be read as pixels.
type DecodeError struct {
	Source string // file path, or "reader"
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("field: cannot decode course image %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
