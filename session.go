package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jcorbin/gocat/cat"
	"github.com/jcorbin/gocat/internal/fileinput"
	"github.com/jcorbin/gocat/internal/panicerr"
	"github.com/jcorbin/gocat/internal/parse"
)

// Session evaluates programs against a dictionary that grows with every
// definition it is given.
type Session struct {
	words *cat.Words
	user  map[string]fileinput.Location

	// definitions restored by Reset, as recorded by Save
	saved     *cat.Words
	savedUser map[string]fileinput.Location

	// when persistent, each run starts from the stack left by the last one
	persistent bool
	stack      cat.Stack

	out   writeFlusher
	logfn func(mess string, args ...interface{})

	depthLimit int
	stepLimit  int
	timeout    time.Duration
}

// how many evaluation steps go by between context checks
const ctxCheckInterval = 1024

func (sess *Session) run(ctx context.Context, inputs ...io.Reader) (cat.Stack, error) {
	p := parse.Parser{UserWord: sess.isUserWord}
	prog, err := p.Parse(inputs...)
	if err != nil {
		return cat.Stack{}, err
	}
	for _, def := range prog.Definitions {
		sess.define(def)
	}

	if sess.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sess.timeout)
		defer cancel()
	}

	var res cat.Stack
	err = panicerr.Recover("eval", func() (err error) {
		res, err = cat.Eval(prog.Body, sess.words, sess.evalOptions(ctx))
		return err
	})
	if ferr := sess.out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		sess.logf("eval error: %v", err)
		return cat.Stack{}, err
	}
	if sess.persistent {
		sess.stack = res
	}
	return res, nil
}

func (sess *Session) evalOptions(ctx context.Context) cat.EvalOption {
	opts := []cat.EvalOption{
		cat.WithOutput(sess.out),
		cat.WithDepthLimit(sess.depthLimit),
		cat.WithStepLimit(sess.stepLimit),
	}
	if sess.persistent {
		opts = append(opts, cat.WithStack(sess.stack))
	}
	if sess.logfn != nil {
		opts = append(opts, cat.WithLogf(sess.logfn))
	}
	if ctx.Done() != nil {
		opts = append(opts, cat.WithStepHook(func(step cat.Step) error {
			if step.Count%ctxCheckInterval == 0 {
				return ctx.Err()
			}
			return nil
		}))
	}
	return cat.EvalOptions(opts...)
}

func (sess *Session) define(def parse.Definition) {
	if sess.user == nil {
		sess.user = make(map[string]fileinput.Location)
	}
	sess.user[def.Name] = def.Location
	sess.words.Define(def.Name, def.Term())
	sess.logf("define %v @%v", def.Name, def.Location)
}

// declare marks name as a user word ahead of its definition, so that
// definitions may refer to each other in any order.
func (sess *Session) declare(name string) {
	if sess.user == nil {
		sess.user = make(map[string]fileinput.Location)
	}
	if _, defined := sess.user[name]; !defined {
		sess.user[name] = fileinput.Location{}
	}
}

func (sess *Session) isUserWord(name string) bool {
	_, defined := sess.user[name]
	return defined
}

// Define installs word definitions given as source text, keyed by name.
func (sess *Session) Define(defs map[string]string) error {
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
		sess.declare(name)
	}
	sort.Strings(names)
	for _, name := range names {
		src := fmt.Sprintf(": %v\n%v\n;", name, defs[name])
		p := parse.Parser{UserWord: sess.isUserWord}
		prog, err := p.Parse(fileinput.Named("word "+name, strings.NewReader(src)))
		if err != nil {
			return err
		}
		if len(prog.Definitions) != 1 || prog.Definitions[0].Name != name || prog.Body.Len() != 0 {
			return fmt.Errorf("invalid definition of %q", name)
		}
		sess.define(prog.Definitions[0])
	}
	return nil
}

// Words returns the session's dictionary.
func (sess *Session) Words() *cat.Words { return sess.words }

// Stack returns the stack kept between runs of a persistent session.
func (sess *Session) Stack() cat.Stack { return sess.stack }

// Clear drops the persistent stack.
func (sess *Session) Clear() { sess.stack = cat.Stack{} }

// Save records the current definitions as the ones Reset returns to.
func (sess *Session) Save() {
	sess.saved = sess.words.Clone()
	sess.savedUser = cloneUser(sess.user)
}

// Reset drops the persistent stack and every definition made since the last
// Save, or all user definitions if Save was never called.
func (sess *Session) Reset() {
	if sess.saved != nil {
		sess.words = sess.saved.Clone()
		sess.user = cloneUser(sess.savedUser)
	} else {
		sess.words = cat.StandardWords()
		sess.user = nil
	}
	sess.Clear()
}

func cloneUser(user map[string]fileinput.Location) map[string]fileinput.Location {
	if user == nil {
		return nil
	}
	clone := make(map[string]fileinput.Location, len(user))
	for name, loc := range user {
		clone[name] = loc
	}
	return clone
}

// Fork returns an independent session sharing the current definitions and
// options, writing its output to out.
func (sess *Session) Fork(out io.Writer) *Session {
	fork := *sess
	fork.words = sess.words.Clone()
	fork.user = cloneUser(sess.user)
	fork.out = newWriteFlusher(out)
	return &fork
}

// Show writes a stack to the session's output on its own line.
func (sess *Session) Show(stack cat.Stack) error {
	if _, err := fmt.Fprintln(sess.out, stack); err != nil {
		return err
	}
	return sess.out.Flush()
}

func (sess *Session) logf(mess string, args ...interface{}) {
	if sess.logfn != nil {
		sess.logfn(mess, args...)
	}
}
