package cat

import "fmt"

// Prim identifies one of the host implemented primitive operations.
type Prim uint8

// Primitives, in their standard dictionary order.
const (
	PrimWords Prim = iota
	PrimDup
	PrimPop
	PrimSwap
	PrimApply
	PrimQuote
	PrimCompose
	PrimIf
	PrimEq
	PrimAnd
	PrimOr
	PrimNot
	PrimAdd
	PrimSub
	PrimMul
	PrimDiv
	PrimRem

	primCount
)

var primNames = [primCount]string{
	PrimWords:   "words",
	PrimDup:     "dup",
	PrimPop:     "pop",
	PrimSwap:    "swap",
	PrimApply:   "apply",
	PrimQuote:   "quote",
	PrimCompose: "compose",
	PrimIf:      "if",
	PrimEq:      "eq",
	PrimAnd:     "and",
	PrimOr:      "or",
	PrimNot:     "not",
	PrimAdd:     "+",
	PrimSub:     "-",
	PrimMul:     "*",
	PrimDiv:     "/",
	PrimRem:     "%",
}

// Prims returns every primitive.
func Prims() []Prim {
	prims := make([]Prim, primCount)
	for i := range prims {
		prims[i] = Prim(i)
	}
	return prims
}

// Name returns the canonical dictionary name of the primitive.
func (prim Prim) Name() string {
	if prim < primCount {
		return primNames[prim]
	}
	return fmt.Sprintf("prim#%d", uint8(prim))
}

// String renders an opaque placeholder; use Name for the primitive's word.
func (prim Prim) String() string { return "<prim>" }

func (prim Prim) run(ev *evaluator, s Stack) (Stack, error) {
	switch prim {
	case PrimWords:
		return ev.words(s)
	case PrimDup:
		return dup(s)
	case PrimPop:
		s, _, err := s.pop()
		return s, err
	case PrimSwap:
		return swap(s)
	case PrimApply:
		return ev.applyQuote(s)
	case PrimQuote:
		return quote(s)
	case PrimCompose:
		return compose(s)
	case PrimIf:
		return ev.ifElse(s)

	case PrimEq:
		return numberCompare(s, func(a, b int32) bool { return a == b })
	case PrimAnd:
		return boolBinary(s, func(a, b bool) bool { return a && b })
	case PrimOr:
		return boolBinary(s, func(a, b bool) bool { return a || b })
	case PrimNot:
		s, a, err := s.popBool()
		if err != nil {
			return s, err
		}
		return s.push(PushBool(!a)), nil

	// + - and * wrap around on overflow, following two's complement int32.
	case PrimAdd:
		return numberBinary(s, func(a, b int32) (int32, error) { return a + b, nil })
	case PrimSub:
		return numberBinary(s, func(a, b int32) (int32, error) { return a - b, nil })
	case PrimMul:
		return numberBinary(s, func(a, b int32) (int32, error) { return a * b, nil })

	// / and % truncate toward zero; MinInt32 / -1 wraps to MinInt32.
	case PrimDiv:
		return numberBinary(s, func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, ErrDivideByZero
			}
			return a / b, nil
		})
	case PrimRem:
		return numberBinary(s, func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, ErrDivideByZero
			}
			return a % b, nil
		})
	}
	panic(fmt.Sprintf("cat: invalid primitive %v", prim.Name()))
}

// dup (A b -> A b b)
func dup(s Stack) (Stack, error) {
	term, err := s.Peek()
	if err != nil {
		return s, err
	}
	return s.push(term), nil
}

// swap (A b c -> A c b)
func swap(s Stack) (Stack, error) {
	s, c, err := s.pop()
	if err != nil {
		return s, err
	}
	s, b, err := s.pop()
	if err != nil {
		return s, err
	}
	return s.push(c).push(b), nil
}

// quote (A b -> A (C -> C b))
func quote(s Stack) (Stack, error) {
	s, b, err := s.pop()
	if err != nil {
		return s, err
	}
	return s.push(Quote{Stack{[]Term{b}}}), nil
}

// compose (A (B -> C) (C -> D) -> A (B -> D))
func compose(s Stack) (Stack, error) {
	s, second, err := s.popQuote()
	if err != nil {
		return s, err
	}
	s, first, err := s.popQuote()
	if err != nil {
		return s, err
	}
	return s.push(Quote{first.Concat(second)}), nil
}

// apply (A (A -> B) -> B)
func (ev *evaluator) applyQuote(s Stack) (Stack, error) {
	s, body, err := s.popQuote()
	if err != nil {
		return s, err
	}
	return ev.evalNested(s, body)
}

// if (A bool (A -> B) (A -> B) -> B)
//
// The else quotation is on top, the then quotation under it, and the
// condition under both; only the selected quotation is evaluated.
func (ev *evaluator) ifElse(s Stack) (Stack, error) {
	s, elseBody, err := s.popQuote()
	if err != nil {
		return s, err
	}
	s, thenBody, err := s.popQuote()
	if err != nil {
		return s, err
	}
	s, cond, err := s.popBool()
	if err != nil {
		return s, err
	}
	if cond {
		return ev.evalNested(s, thenBody)
	}
	return ev.evalNested(s, elseBody)
}

// words (A ~> A)
func (ev *evaluator) words(s Stack) (Stack, error) {
	for _, name := range ev.dict.Names() {
		term, _ := ev.dict.Lookup(name)
		def := term.String()
		if prim, ok := term.(Prim); ok {
			def = fmt.Sprintf("%v %v", def, prim.Name())
		}
		if _, err := fmt.Fprintf(ev.out, "%v = %v\n", name, def); err != nil {
			return s, err
		}
	}
	return s, nil
}

func numberBinary(s Stack, op func(a, b int32) (int32, error)) (Stack, error) {
	s, b, err := s.popNumber()
	if err != nil {
		return s, err
	}
	s, a, err := s.popNumber()
	if err != nil {
		return s, err
	}
	c, err := op(a, b)
	if err != nil {
		return s, err
	}
	return s.push(PushNumber(c)), nil
}

func numberCompare(s Stack, op func(a, b int32) bool) (Stack, error) {
	s, b, err := s.popNumber()
	if err != nil {
		return s, err
	}
	s, a, err := s.popNumber()
	if err != nil {
		return s, err
	}
	return s.push(PushBool(op(a, b))), nil
}

func boolBinary(s Stack, op func(a, b bool) bool) (Stack, error) {
	s, b, err := s.popBool()
	if err != nil {
		return s, err
	}
	s, a, err := s.popBool()
	if err != nil {
		return s, err
	}
	return s.push(PushBool(op(a, b))), nil
}
