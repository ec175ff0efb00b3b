package cat

import "strconv"

// Value is a literal datum: either a Bool or a Number.
type Value interface {
	String() string
	isValue()
}

// Bool is a boolean Value.
type Bool bool

// Number is a 32-bit signed integer Value.
type Number int32

func (Bool) isValue()   {}
func (Number) isValue() {}

func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }
