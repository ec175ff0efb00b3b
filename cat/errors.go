package cat

import (
	"errors"
	"fmt"
)

// Evaluation errors; each one is terminal for the evaluation in progress and
// is returned unchanged to the caller of Eval.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrDivideByZero   = errors.New("division by zero")
	ErrDepthExceeded  = errors.New("evaluation depth exceeded")
	ErrStepLimit      = errors.New("evaluation step limit exceeded")
)

// NotFoundError is returned when a Call names a word absent from the
// dictionary.
type NotFoundError string

func (name NotFoundError) Error() string { return fmt.Sprintf("could not find `%v`", string(name)) }
