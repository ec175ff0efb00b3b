package main

import (
	"io"
	"time"
)

type Option interface{ apply(sess *Session) }

var defaults = []Option{
	withOutput(io.Discard),
}

func (sess *Session) apply(opts ...Option) {
	for _, opt := range defaults {
		if opt != nil {
			opt.apply(sess)
		}
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(sess)
		}
	}
}

// Options combines any number of options into one.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
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

type options []Option

func (opts options) apply(sess *Session) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(sess)
		}
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(sess *Session) {
	sess.logfn = logfn
}

type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type depthLimitOption int
type stepLimitOption int
type timeoutOption time.Duration
type persistOption bool

func withOutput(w io.Writer) outputOption { return outputOption{w} }

func (o outputOption) apply(sess *Session) {
	if sess.out != nil {
		sess.out.Flush()
	}
	sess.out = newWriteFlusher(o.Writer)
}

func (o teeOption) apply(sess *Session) {
	sess.out = tee(sess.out, newWriteFlusher(o.Writer))
}

func (lim depthLimitOption) apply(sess *Session) { sess.depthLimit = int(lim) }
func (lim stepLimitOption) apply(sess *Session)  { sess.stepLimit = int(lim) }
func (t timeoutOption) apply(sess *Session)      { sess.timeout = time.Duration(t) }
func (p persistOption) apply(sess *Session)      { sess.persistent = bool(p) }
