package main

import (
	"context"
	"io"
	"time"

	"github.com/jcorbin/gocat/cat"
)

// New creates a session around the standard dictionary.
func New(opts ...Option) *Session {
	sess := &Session{words: cat.StandardWords()}
	sess.apply(opts...)
	return sess
}

// Run parses the given inputs, installs any definitions they contain, and
// evaluates their top level terms, returning the resulting stack.
func (sess *Session) Run(ctx context.Context, inputs ...io.Reader) (cat.Stack, error) {
	return sess.run(ctx, inputs...)
}

func WithOutput(w io.Writer) Option              { return outputOption{w} }
func WithTee(w io.Writer) Option                 { return teeOption{w} }
func WithDepthLimit(limit int) Option            { return depthLimitOption(limit) }
func WithStepLimit(limit int) Option             { return stepLimitOption(limit) }
func WithTimeout(timeout time.Duration) Option   { return timeoutOption(timeout) }
func WithPersistentStack(persistent bool) Option { return persistOption(persistent) }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
