package cat

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evalTestCases []evalTestCase

func (ets evalTestCases) run(t *testing.T) {
	{
		var exclusive []evalTestCase
		for _, et := range ets {
			if et.exclusive {
				exclusive = append(exclusive, et)
			}
		}
		if len(exclusive) > 0 {
			ets = exclusive
		}
	}
	for _, et := range ets {
		t.Run(et.name, et.run)
	}
}

func evalTest(name string, program ...Term) (et evalTestCase) {
	et.name = name
	et.program = NewStack(program...)
	return et
}

type evalResult struct {
	stack Stack
	err   error
	out   string
}

type evalTestCase struct {
	name    string
	program Stack
	words   *Words
	opts    []EvalOption
	expect  []func(t *testing.T, res evalResult)

	exclusive bool
}

func (et evalTestCase) exclusiveTest() evalTestCase {
	et.exclusive = true
	return et
}

func (et evalTestCase) withWords(words *Words) evalTestCase {
	et.words = words
	return et
}

func (et evalTestCase) withWord(name string, term Term) evalTestCase {
	if et.words == nil {
		et.words = StandardWords()
	} else {
		et.words = et.words.Clone()
	}
	et.words.Define(name, term)
	return et
}

func (et evalTestCase) withOptions(opts ...EvalOption) evalTestCase {
	et.opts = append(et.opts, opts...)
	return et
}

func (et evalTestCase) expectStack(terms ...Term) evalTestCase {
	want := NewStack(terms...)
	et.expect = append(et.expect, func(t *testing.T, res evalResult) {
		require.NoError(t, res.err, "unexpected evaluation error")
		assert.True(t, want.Equal(res.stack), "expected stack [%v], got [%v]", want, res.stack)
	})
	return et
}

func (et evalTestCase) expectError(want error) evalTestCase {
	et.expect = append(et.expect, func(t *testing.T, res evalResult) {
		require.Error(t, res.err, "expected evaluation error")
		assert.True(t, errors.Is(res.err, want), "expected error %v, got %v", want, res.err)
		assert.Equal(t, 0, res.stack.Len(), "expected no partial stack")
	})
	return et
}

func (et evalTestCase) expectOutput(lines ...string) evalTestCase {
	et.expect = append(et.expect, func(t *testing.T, res evalResult) {
		var want string
		if len(lines) > 0 {
			want = strings.Join(lines, "\n") + "\n"
		}
		assert.Equal(t, want, res.out, "expected words output")
	})
	return et
}

func (et evalTestCase) run(t *testing.T) {
	words := et.words
	if words == nil {
		words = StandardWords()
	}
	var out strings.Builder
	opts := append([]EvalOption{WithOutput(&out)}, et.opts...)
	var res evalResult
	res.stack, res.err = Eval(et.program, words, opts...)
	res.out = out.String()
	for _, expect := range et.expect {
		expect(t, res)
	}
}

// term shorthands
var (
	n = PushNumber
	b = PushBool
	q = Quoted
)

func Test_Eval(t *testing.T) {
	var testCases evalTestCases

	// literals and quotations
	testCases = append(testCases,
		evalTest("empty program").expectStack(),
		evalTest("push", n(1), b(true), n(2)).expectStack(n(1), b(true), n(2)),
		evalTest("quotation is not evaluated", q(Call("frobnicate"), PrimPop)).
			expectStack(q(Call("frobnicate"), PrimPop)),
	)

	// calls
	testCases = append(testCases,
		evalTest("call prim", n(3), Call("dup")).expectStack(n(3), n(3)),
		evalTest("not found", Call("frobnicate")).expectError(NotFoundError("frobnicate")),
		evalTest("empty words", n(1), Call("dup")).withWords(EmptyWords()).expectError(NotFoundError("dup")),
		evalTest("literal word", Call("seven"), Call("seven"), Call("+")).
			withWord("seven", n(7)).expectStack(n(14)),
		evalTest("quotation word", n(3), Call("sq"), Call("apply")).
			withWord("sq", q(PrimDup, PrimMul)).expectStack(n(9)),
		evalTest("alias word", n(5), Call("twice")).
			withWord("twice", Call("dup")).expectStack(n(5), n(5)),
		evalTest("stops at first error", n(1), Call("nope"), Call("frobnicate")).
			expectError(NotFoundError("nope")),
	)

	// stack shuffling
	testCases = append(testCases,
		evalTest("dup", n(1), n(2), PrimDup).expectStack(n(1), n(2), n(2)),
		evalTest("dup quote", q(n(1)), PrimDup).expectStack(q(n(1)), q(n(1))),
		evalTest("dup underflow", PrimDup).expectError(ErrStackUnderflow),
		evalTest("pop", n(1), n(2), PrimPop).expectStack(n(1)),
		evalTest("pop underflow", PrimPop).expectError(ErrStackUnderflow),
		evalTest("swap", n(1), n(2), n(3), PrimSwap).expectStack(n(1), n(3), n(2)),
		evalTest("swap underflow", n(1), PrimSwap).expectError(ErrStackUnderflow),
	)

	// quotation combinators
	testCases = append(testCases,
		evalTest("quote", n(1), n(2), PrimQuote).expectStack(n(1), q(n(2))),
		evalTest("quote quotation", q(n(2)), PrimQuote).expectStack(q(q(n(2)))),
		evalTest("quote underflow", PrimQuote).expectError(ErrStackUnderflow),
		evalTest("compose", q(n(1), n(2)), q(PrimAdd), PrimCompose).expectStack(q(n(1), n(2), PrimAdd)),
		evalTest("compose empties", q(), q(), PrimCompose).expectStack(q()),
		evalTest("compose non quote", q(), n(1), PrimCompose).expectError(ErrTypeMismatch),
		evalTest("compose underflow", q(), PrimCompose).expectError(ErrStackUnderflow),
		evalTest("apply", q(n(1), n(2), PrimAdd), PrimApply).expectStack(n(3)),
		evalTest("apply on remaining stack", n(1), q(n(2), PrimAdd), PrimApply).expectStack(n(3)),
		evalTest("apply empty", n(1), q(), PrimApply).expectStack(n(1)),
		evalTest("apply non quote", n(1), PrimApply).expectError(ErrTypeMismatch),
		evalTest("apply underflow", PrimApply).expectError(ErrStackUnderflow),
		evalTest("apply error", q(PrimPop), PrimApply).expectError(ErrStackUnderflow),
	)

	// conditional; the else quotation is on top, the then quotation below it
	testCases = append(testCases,
		evalTest("if true", b(true), q(n(1)), q(n(2)), PrimIf).expectStack(n(1)),
		evalTest("if false", b(false), q(n(1)), q(n(2)), PrimIf).expectStack(n(2)),
		evalTest("if on remaining stack", n(10), b(true), q(n(1), PrimAdd), q(n(1), PrimSub), PrimIf).
			expectStack(n(11)),
		evalTest("if skips failing else", b(true), q(n(1)), q(PrimPop, PrimPop), PrimIf).expectStack(n(1)),
		evalTest("if skips failing then", b(false), q(Call("frobnicate")), q(n(1)), PrimIf).expectStack(n(1)),
		evalTest("if number condition", n(1), q(), q(), PrimIf).expectError(ErrTypeMismatch),
		evalTest("if non quote branch", b(true), n(1), q(), PrimIf).expectError(ErrTypeMismatch),
		evalTest("if underflow", q(), q(), PrimIf).expectError(ErrStackUnderflow),
	)

	// booleans
	for _, tc := range []struct {
		prim Prim
		a, b bool
		want bool
	}{
		{PrimAnd, false, false, false},
		{PrimAnd, false, true, false},
		{PrimAnd, true, false, false},
		{PrimAnd, true, true, true},
		{PrimOr, false, false, false},
		{PrimOr, false, true, true},
		{PrimOr, true, false, true},
		{PrimOr, true, true, true},
	} {
		testCases = append(testCases,
			evalTest(fmt.Sprintf("%v %v %v", tc.a, tc.b, tc.prim.Name()), n(0), b(tc.a), b(tc.b), tc.prim).
				expectStack(n(0), b(tc.want)))
	}
	testCases = append(testCases,
		evalTest("not true", b(true), PrimNot).expectStack(b(false)),
		evalTest("not false", b(false), PrimNot).expectStack(b(true)),
		evalTest("not number", n(0), PrimNot).expectError(ErrTypeMismatch),
		evalTest("and number", b(true), n(1), PrimAnd).expectError(ErrTypeMismatch),
		evalTest("or underflow", b(true), PrimOr).expectError(ErrStackUnderflow),
		evalTest("eq same", n(3), n(3), PrimEq).expectStack(b(true)),
		evalTest("eq different", n(3), n(4), PrimEq).expectStack(b(false)),
		evalTest("eq bools", b(true), b(true), PrimEq).expectError(ErrTypeMismatch),
	)

	// arithmetic
	testCases = append(testCases,
		evalTest("add", n(3), n(4), Call("+")).expectStack(n(7)),
		evalTest("sub", n(10), n(4), PrimSub).expectStack(n(6)),
		evalTest("mul", n(6), n(7), PrimMul).expectStack(n(42)),
		evalTest("div", n(7), n(2), PrimDiv).expectStack(n(3)),
		evalTest("div negative", n(-7), n(2), PrimDiv).expectStack(n(-3)),
		evalTest("rem", n(7), n(2), PrimRem).expectStack(n(1)),
		evalTest("rem negative", n(-7), n(2), PrimRem).expectStack(n(-1)),
		evalTest("div by zero", n(1), n(0), PrimDiv).expectError(ErrDivideByZero),
		evalTest("rem by zero", n(1), n(0), PrimRem).expectError(ErrDivideByZero),
		evalTest("add wraps", n(math.MaxInt32), n(1), PrimAdd).expectStack(n(math.MinInt32)),
		evalTest("sub wraps", n(math.MinInt32), n(1), PrimSub).expectStack(n(math.MaxInt32)),
		evalTest("mul wraps", n(0x10000), n(0x10000), PrimMul).expectStack(n(0)),
		evalTest("div wraps", n(math.MinInt32), n(-1), PrimDiv).expectStack(n(math.MinInt32)),
		evalTest("rem min", n(math.MinInt32), n(-1), PrimRem).expectStack(n(0)),
		evalTest("add bool", b(true), n(1), Call("+")).expectError(ErrTypeMismatch),
		evalTest("add quote", q(), n(1), PrimAdd).expectError(ErrTypeMismatch),
		evalTest("add underflow", n(1), PrimAdd).expectError(ErrStackUnderflow),
	)

	// words
	testCases = append(testCases,
		evalTest("words", n(1), PrimWords).
			withWords(EmptyWords()).
			withWord("x", n(1)).
			withWord("dup", PrimDup).
			withWord("sq", q(PrimDup, PrimMul)).
			withWord("alias", Call("x")).
			expectStack(n(1)).
			expectOutput(
				"alias = x",
				"dup = <prim> dup",
				"sq = [ <prim> <prim> ]",
				"x = 1",
			),
		evalTest("words empty", PrimWords).withWords(EmptyWords()).expectStack().expectOutput(),
	)

	// recursion
	down := q(PrimDup, n(0), PrimEq, q(), q(n(1), PrimSub, Call("down"), PrimApply), PrimIf)
	testCases = append(testCases,
		evalTest("recursive countdown", n(5), Call("down"), PrimApply).
			withWord("down", down).expectStack(n(0)),
		evalTest("self call", Call("loop")).
			withWord("loop", Call("loop")).expectError(ErrDepthExceeded),
		evalTest("self apply", Call("loop"), PrimApply).
			withWord("loop", q(Call("loop"), PrimApply)).expectError(ErrDepthExceeded),
		evalTest("depth limit", n(20), Call("down"), PrimApply).
			withWord("down", down).
			withOptions(WithDepthLimit(10)).
			expectError(ErrDepthExceeded),
		evalTest("step limit", Call("loop")).
			withWord("loop", Call("loop")).
			withOptions(WithStepLimit(10)).
			expectError(ErrStepLimit),

		evalTest("initial stack", n(3), PrimAdd).
			withOptions(WithStack(NewStack(n(1), n(2)))).
			expectStack(n(1), n(5)),
		evalTest("initial stack is not stepped", PrimAdd).
			withOptions(WithStack(NewStack(n(1), n(2), n(3), n(4))), WithStepLimit(1)).
			expectStack(n(1), n(2), n(7)),
	)

	testCases.run(t)
}

func Test_Eval_stepHook(t *testing.T) {
	errStop := errors.New("stop")
	var steps []Step
	_, err := Eval(NewStack(n(1), n(2), PrimAdd, n(3)), StandardWords(), WithStepHook(func(step Step) error {
		steps = append(steps, step)
		if step.Count == 3 {
			return errStop
		}
		return nil
	}))
	assert.Equal(t, errStop, err, "expected hook error to be returned as is")
	require.Len(t, steps, 3, "expected hook calls")
	assert.Equal(t, "1 :: ", fmt.Sprintf("%v :: %v", steps[0].Term, steps[0].Stack))
	assert.Equal(t, "<prim> :: 1 2", fmt.Sprintf("%v :: %v", steps[2].Term, steps[2].Stack))
	assert.Equal(t, 0, steps[2].Depth)
}

func Test_Eval_depth(t *testing.T) {
	var depths []int
	words := StandardWords()
	words.Define("inc", q(n(1), PrimAdd))
	_, err := Eval(NewStack(n(1), Call("inc"), PrimApply), words, WithStepHook(func(step Step) error {
		depths = append(depths, step.Depth)
		return nil
	}))
	require.NoError(t, err)
	// 1, inc, [1 +] (substituted), apply, 1, +
	assert.Equal(t, []int{0, 0, 1, 0, 1, 1}, depths)
}

func Test_Eval_trace(t *testing.T) {
	var lines []string
	_, err := Eval(NewStack(n(3), q(PrimDup), PrimApply), StandardWords(), WithLogf(func(mess string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(mess, args...))
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"3 :: ",
		"[ <prim> ] :: 3",
		"<prim> :: 3 [ <prim> ]",
		". <prim> :: 3",
	}, lines)
}

func Test_Eval_noAliasing(t *testing.T) {
	words := StandardWords()
	body := q(n(1), n(2))
	words.Define("pair", body)

	// dup a quotation, then compose one copy; neither the other copy nor the
	// dictionary entry may observe the composition
	got, err := Eval(NewStack(Call("pair"), PrimDup, q(n(3)), PrimCompose), words)
	require.NoError(t, err)
	assert.Equal(t, "[ 1 2 ] [ 1 2 3 ]", got.String())

	def, ok := words.Lookup("pair")
	require.True(t, ok)
	assert.True(t, TermEqual(body, def), "dictionary entry changed: %v", def)

	// results are values too
	more := got.Push(n(4))
	assert.Equal(t, "[ 1 2 ] [ 1 2 3 ]", got.String())
	assert.Equal(t, "[ 1 2 ] [ 1 2 3 ] 4", more.String())
}

func Test_Eval_properties(t *testing.T) {
	words := StandardWords()
	words.Define("sq", q(PrimDup, PrimMul))

	programs := []Stack{
		NewStack(n(1)),
		NewStack(n(1), n(2)),
		NewStack(b(true), n(-4), q(n(1))),
		NewStack(n(3), n(4), PrimAdd, b(false)),
		NewStack(q(), q(PrimDup), PrimCompose, n(7)),
	}
	eval := func(t *testing.T, prog Stack, more ...Term) Stack {
		res, err := Eval(prog.Concat(NewStack(more...)), words)
		require.NoError(t, err, "unexpected error evaluating %v", prog)
		return res
	}

	t.Run("dup pop", func(t *testing.T) {
		for _, prog := range programs {
			want := eval(t, prog)
			got := eval(t, prog, PrimDup, PrimPop)
			assert.True(t, want.Equal(got), "%v dup pop: expected [%v], got [%v]", prog, want, got)
		}
	})

	t.Run("swap swap", func(t *testing.T) {
		for _, prog := range programs {
			if want := eval(t, prog); want.Len() >= 2 {
				got := eval(t, prog, PrimSwap, PrimSwap)
				assert.True(t, want.Equal(got), "%v swap swap: expected [%v], got [%v]", prog, want, got)
			}
		}
	})

	t.Run("quote apply", func(t *testing.T) {
		for _, v := range []Term{n(0), n(42), n(math.MinInt32), b(true), b(false)} {
			want := eval(t, NewStack(v))
			got := eval(t, NewStack(v, PrimQuote, PrimApply))
			assert.True(t, want.Equal(got), "%v quote apply: expected [%v], got [%v]", v, want, got)
		}
	})

	t.Run("compose", func(t *testing.T) {
		for _, tc := range []struct {
			s      Stack
			q1, q2 Quote
		}{
			{NewStack(n(2)), q(PrimDup), q(PrimMul)},
			{NewStack(n(2), n(3)), q(PrimSwap), q(PrimSub)},
			{NewStack(), q(n(1)), q(n(2), PrimAdd)},
			{NewStack(n(5)), q(Call("sq")), q()},
			{NewStack(b(true)), q(PrimNot), q(q(n(1)), q(n(2)), PrimIf)},
		} {
			want := eval(t, tc.s, tc.q1, PrimApply, tc.q2, PrimApply)
			got := eval(t, tc.s, tc.q1, tc.q2, PrimCompose, PrimApply)
			assert.True(t, want.Equal(got), "expected [%v], got [%v]", want, got)
		}
	})
}

func Test_Eval_withStack(t *testing.T) {
	words := StandardWords()
	start := NewStack(n(1), n(2))

	// grow a prefix of start in place; its tail must stay untouched
	prefix, _, err := start.Pop()
	require.NoError(t, err)
	got, err := Eval(NewStack(n(9)), words, WithStack(prefix))
	require.NoError(t, err)
	assert.Equal(t, "1 9", got.String())
	assert.Equal(t, "1 2", start.String())

	got, err = Eval(NewStack(PrimPop), words, WithStack(start))
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())
	assert.Equal(t, "1 2", start.String())
}
