package cat

import "strings"

// Stack is an ordered sequence of terms whose top is the end of the sequence.
// It is used both as a program to evaluate and as the runtime value stack.
//
// A Stack is a value: exported operations never modify a stack in place, they
// return a new one instead, and the stack given to them should be considered
// consumed.
type Stack struct {
	terms []Term
}

// NewStack returns a stack of the given terms, the last one being on top.
func NewStack(terms ...Term) Stack {
	if len(terms) == 0 {
		return Stack{}
	}
	return Stack{append([]Term(nil), terms...)}
}

// EmptyStack returns a stack with no terms.
func EmptyStack() Stack { return Stack{} }

// Len returns the number of terms in the stack.
func (s Stack) Len() int { return len(s.terms) }

// Terms returns a copy of the stack's terms, bottom first.
func (s Stack) Terms() []Term { return append([]Term(nil), s.terms...) }

// Push returns a new stack with term added on top.
func (s Stack) Push(term Term) Stack {
	terms := make([]Term, len(s.terms), len(s.terms)+1)
	copy(terms, s.terms)
	return Stack{append(terms, term)}
}

// Pop returns the stack without its top term, and that term.
func (s Stack) Pop() (Stack, Term, error) { return s.pop() }

// Peek returns the top term.
func (s Stack) Peek() (Term, error) {
	if len(s.terms) == 0 {
		return nil, ErrStackUnderflow
	}
	return s.terms[len(s.terms)-1], nil
}

// Concat returns a new stack holding s's terms followed by other's.
func (s Stack) Concat(other Stack) Stack {
	if len(s.terms)+len(other.terms) == 0 {
		return Stack{}
	}
	terms := make([]Term, 0, len(s.terms)+len(other.terms))
	terms = append(terms, s.terms...)
	terms = append(terms, other.terms...)
	return Stack{terms}
}

// Equal returns true if both stacks hold equal terms in the same order.
func (s Stack) Equal(other Stack) bool {
	if len(s.terms) != len(other.terms) {
		return false
	}
	for i := range s.terms {
		if !TermEqual(s.terms[i], other.terms[i]) {
			return false
		}
	}
	return true
}

func (s Stack) String() string {
	var sb strings.Builder
	s.writeTo(&sb)
	return sb.String()
}

func (s Stack) writeTo(sb *strings.Builder) {
	for i, term := range s.terms {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(term.String())
	}
}

// push appends in place; only the evaluator's runtime stack, which it alone
// owns, may grow this way. Quoted stacks are never appended to.
func (s Stack) push(term Term) Stack {
	s.terms = append(s.terms, term)
	return s
}

func (s Stack) pop() (Stack, Term, error) {
	i := len(s.terms) - 1
	if i < 0 {
		return s, nil, ErrStackUnderflow
	}
	term := s.terms[i]
	s.terms = s.terms[:i]
	return s, term, nil
}

func (s Stack) popBool() (Stack, bool, error) {
	s, term, err := s.pop()
	if err != nil {
		return s, false, err
	}
	if push, ok := term.(Push); ok {
		if b, ok := push.Value.(Bool); ok {
			return s, bool(b), nil
		}
	}
	return s, false, ErrTypeMismatch
}

func (s Stack) popNumber() (Stack, int32, error) {
	s, term, err := s.pop()
	if err != nil {
		return s, 0, err
	}
	if push, ok := term.(Push); ok {
		if n, ok := push.Value.(Number); ok {
			return s, int32(n), nil
		}
	}
	return s, 0, ErrTypeMismatch
}

func (s Stack) popQuote() (Stack, Stack, error) {
	s, term, err := s.pop()
	if err != nil {
		return s, Stack{}, err
	}
	if quote, ok := term.(Quote); ok {
		return s, quote.Stack, nil
	}
	return s, Stack{}, ErrTypeMismatch
}
