package cat

import "io"

// EvalOption customizes an evaluation.
type EvalOption interface{ apply(ev *evaluator) }

var defaultOptions = []EvalOption{
	WithOutput(io.Discard),
	WithDepthLimit(DefaultDepthLimit),
}

// EvalOptions combines any number of options into one.
func EvalOptions(opts ...EvalOption) EvalOption {
	var res evalOptions
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case evalOptions:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

// WithOutput sets the diagnostic writer used by the words primitive.
func WithOutput(w io.Writer) EvalOption { return outputOption{w} }

// WithLogf enables trace logging of every evaluation step.
func WithLogf(logfn func(mess string, args ...interface{})) EvalOption { return logfnOption(logfn) }

// WithDepthLimit bounds the nesting of calls and quotation applications;
// a limit of 0 or less restores DefaultDepthLimit.
func WithDepthLimit(limit int) EvalOption { return depthLimitOption(limit) }

// WithStepLimit bounds the total number of evaluated terms; 0 means no bound.
func WithStepLimit(limit int) EvalOption { return stepLimitOption(limit) }

// WithStack sets the runtime stack that evaluation starts from; the given
// stack itself is never modified.
func WithStack(s Stack) EvalOption { return stackOption{s} }

// WithStepHook registers a function to be called before every term is
// evaluated; any error it returns aborts the evaluation.
func WithStepHook(hook func(Step) error) EvalOption { return hookOption(hook) }

type evalOptions []EvalOption
type outputOption struct{ io.Writer }
type stackOption struct{ Stack }
type logfnOption func(mess string, args ...interface{})
type depthLimitOption int
type stepLimitOption int
type hookOption func(Step) error

func (ev *evaluator) apply(opts ...EvalOption) {
	for _, opt := range defaultOptions {
		opt.apply(ev)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ev)
		}
	}
}

func (opts evalOptions) apply(ev *evaluator) {
	for _, opt := range opts {
		opt.apply(ev)
	}
}

func (o outputOption) apply(ev *evaluator) {
	if o.Writer == nil {
		ev.out = io.Discard
	} else {
		ev.out = o.Writer
	}
}

func (o stackOption) apply(ev *evaluator) { ev.stack = o.Stack }

func (logfn logfnOption) apply(ev *evaluator) { ev.logfn = logfn }

func (lim depthLimitOption) apply(ev *evaluator) {
	if lim <= 0 {
		ev.depthLimit = DefaultDepthLimit
	} else {
		ev.depthLimit = int(lim)
	}
}

func (lim stepLimitOption) apply(ev *evaluator) { ev.stepLimit = int(lim) }

func (hook hookOption) apply(ev *evaluator) { ev.hook = hook }
