package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/gocat/cat"
)

type batchResult struct {
	name  string
	stack cat.Stack
	out   bytes.Buffer
	done  bool
}

// runEach evaluates every named file as an independent program, concurrently,
// each in its own fork of sess. Results are written to out in argument order;
// the first failure cancels all evaluations still in progress.
func runEach(ctx context.Context, sess *Session, out io.Writer, names ...string) error {
	results := make([]batchResult, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range names {
		i, name := i, name
		res := &results[i]
		res.name = name
		g.Go(func() error {
			f, err := os.Open(name)
			if err != nil {
				return err
			}
			defer f.Close()
			fork := sess.Fork(&res.out)
			stack, err := fork.Run(ctx, f)
			if err != nil {
				return fmt.Errorf("%v: %w", name, err)
			}
			res.stack, res.done = stack, true
			return nil
		})
	}
	err := g.Wait()

	for i := range results {
		res := &results[i]
		if !res.done {
			continue
		}
		if _, werr := res.out.WriteTo(out); werr != nil && err == nil {
			err = werr
		}
		if _, werr := fmt.Fprintf(out, "%v: %v\n", res.name, res.stack); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}
