package cat

import "strings"

// Term is one element of a Stack: a Push, Quote, Call or Prim.
type Term interface {
	String() string
	isTerm()
}

// Push pushes its literal Value when evaluated.
type Push struct{ Value Value }

// Quote pushes itself, unevaluated, when evaluated.
type Quote struct{ Stack Stack }

// Call names a word to be resolved against Words when evaluated.
type Call string

func (Push) isTerm()  {}
func (Quote) isTerm() {}
func (Call) isTerm()  {}
func (Prim) isTerm()  {}

// PushBool returns a term that pushes a boolean.
func PushBool(b bool) Push { return Push{Bool(b)} }

// PushNumber returns a term that pushes a number.
func PushNumber(n int32) Push { return Push{Number(n)} }

// Quoted returns a quotation of the given terms.
func Quoted(terms ...Term) Quote { return Quote{NewStack(terms...)} }

func (p Push) String() string { return p.Value.String() }
func (c Call) String() string { return string(c) }

func (q Quote) String() string {
	if q.Stack.Len() == 0 {
		return "[ ]"
	}
	var sb strings.Builder
	sb.WriteString("[ ")
	q.Stack.writeTo(&sb)
	sb.WriteString(" ]")
	return sb.String()
}

// TermEqual compares two terms structurally; primitives compare by identity.
func TermEqual(a, b Term) bool {
	switch at := a.(type) {
	case Push:
		bt, ok := b.(Push)
		return ok && at.Value == bt.Value
	case Quote:
		bt, ok := b.(Quote)
		return ok && at.Stack.Equal(bt.Stack)
	case Call:
		bt, ok := b.(Call)
		return ok && at == bt
	case Prim:
		bt, ok := b.(Prim)
		return ok && at == bt
	}
	return a == nil && b == nil
}
