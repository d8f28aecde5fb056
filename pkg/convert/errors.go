package convert

import "fmt"

// InputUnavailableError is returned when a description file can't be read
type InputUnavailableError struct {
	Path string
	Err  error
}

func (e *InputUnavailableError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *InputUnavailableError) Unwrap() error {
	return e.Err
}

// OutputWriteError is returned when the generated file can't be written
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error {
	return e.Err
}
