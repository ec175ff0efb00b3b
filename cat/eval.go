package cat

import (
	"fmt"
	"io"
)

// DefaultDepthLimit bounds how deeply calls and quotation applications may
// nest before evaluation fails with ErrDepthExceeded.
const DefaultDepthLimit = 10000

// Step describes one term about to be evaluated, as passed to a step hook.
type Step struct {
	// Depth counts the calls and quotation applications enclosing Term.
	Depth int

	// Count is the 1-based number of this step within the evaluation.
	Count int

	Term Term

	// Stack is the runtime stack that Term will be evaluated against. It is
	// only valid for the duration of the hook call.
	Stack Stack
}

type evaluator struct {
	dict  *Words
	out   io.Writer
	stack Stack

	logfn      func(mess string, args ...interface{})
	hook       func(Step) error
	depthLimit int
	stepLimit  int

	depth int
	steps int
}

// Eval evaluates program against an initially empty runtime stack, resolving
// calls through words, and returns the final runtime stack. WithStack starts
// from a copy of some other stack instead.
//
// Evaluation halts at the first error, which is returned as is; no partial
// stack is returned in that case.
func Eval(program Stack, words *Words, opts ...EvalOption) (Stack, error) {
	ev := evaluator{dict: words}
	ev.apply(opts...)
	s, err := ev.evalStack(NewStack(ev.stack.terms...), program)
	if err != nil {
		return Stack{}, err
	}
	return s, nil
}

func (ev *evaluator) evalStack(s Stack, program Stack) (Stack, error) {
	for _, term := range program.terms {
		var err error
		if s, err = ev.evalTerm(s, term); err != nil {
			return Stack{}, err
		}
	}
	return s, nil
}

func (ev *evaluator) evalTerm(s Stack, term Term) (Stack, error) {
	if err := ev.step(s, term); err != nil {
		return s, err
	}
	switch t := term.(type) {
	case Push:
		return s.push(t), nil
	case Quote:
		return s.push(t), nil
	case Call:
		def, defined := ev.dict.Lookup(string(t))
		if !defined {
			return s, NotFoundError(t)
		}
		if err := ev.enter(); err != nil {
			return s, err
		}
		defer ev.leave()
		return ev.evalTerm(s, def)
	case Prim:
		return t.run(ev, s)
	}
	panic(fmt.Sprintf("cat: invalid term %T", term))
}

// evalNested evaluates a quoted body against the remaining stack, as done by
// apply and if.
func (ev *evaluator) evalNested(s Stack, body Stack) (Stack, error) {
	if err := ev.enter(); err != nil {
		return s, err
	}
	defer ev.leave()
	return ev.evalStack(s, body)
}

func (ev *evaluator) enter() error {
	if ev.depth >= ev.depthLimit {
		ev.logf("depth limit %v exceeded", ev.depthLimit)
		return ErrDepthExceeded
	}
	ev.depth++
	return nil
}

func (ev *evaluator) leave() { ev.depth-- }

func (ev *evaluator) step(s Stack, term Term) error {
	ev.steps++
	if ev.stepLimit > 0 && ev.steps > ev.stepLimit {
		ev.logf("step limit %v exceeded", ev.stepLimit)
		return ErrStepLimit
	}
	if ev.logfn != nil {
		ev.logf("%v%v :: %v", indent(ev.depth), term, s)
	}
	if ev.hook != nil {
		n := len(s.terms)
		return ev.hook(Step{
			Depth: ev.depth,
			Count: ev.steps,
			Term:  term,
			Stack: Stack{s.terms[:n:n]},
		})
	}
	return nil
}

func (ev *evaluator) logf(mess string, args ...interface{}) {
	if ev.logfn != nil {
		ev.logfn(mess, args...)
	}
}

func indent(depth int) string {
	const dots = ". . . . . . . . . . . . . . . . "
	if n := 2 * depth; n <= len(dots) {
		return dots[:n]
	}
	return fmt.Sprintf("%v(%v) ", dots, depth)
}
