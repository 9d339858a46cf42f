package emulator

import (
	"github.com/ezrec/regvm/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrPart indicates which part of a Solve failed.
type ErrPart struct {
	Part string
	Err  error
}

func (err *ErrPart) Error() string {
	return f("part %v: %v", err.Part, err.Err)
}

func (err *ErrPart) Unwrap() error {
	return err.Err
}
