package main

import (
	"bufio"
	"errors"
	"io"
)

type writeFlusher interface {
	io.Writer
	Flush() error
}

var discardWriteFlusher writeFlusher = nopFlusher{io.Discard}

func newWriteFlusher(w io.Writer) writeFlusher {
	// discard writer does not need flushing
	if w == nil || w == io.Discard {
		return discardWriteFlusher
	}

	if wf, is := w.(writeFlusher); is {
		return wf
	}

	// in memory buffers, as implemented by types like bytes.Buffer and
	// strings.Builder, do not need to be flushed
	type buffer interface {
		io.Writer
		Cap() int
		Len() int
		Grow(n int)
		Reset()
	}
	if _, isBuffer := w.(buffer); isBuffer {
		return nopFlusher{w}
	}

	return bufio.NewWriter(w)
}

type nopFlusher struct{ io.Writer }

func (nf nopFlusher) Flush() error { return nil }

// teeFlusher copies every write to all of its writers in order, stopping at
// the first one that fails.
type teeFlusher []writeFlusher

// tee combines writers into one; discarded and nil writers are dropped, and
// nested tees are flattened.
func tee(wfs ...writeFlusher) writeFlusher {
	var res teeFlusher
	for _, wf := range wfs {
		switch impl := wf.(type) {
		case nil:
		case teeFlusher:
			res = append(res, impl...)
		case nopFlusher:
			if impl.Writer != io.Discard {
				res = append(res, impl)
			}
		default:
			res = append(res, impl)
		}
	}
	switch len(res) {
	case 0:
		return discardWriteFlusher
	case 1:
		return res[0]
	}
	return res
}

func (t teeFlusher) Write(p []byte) (int, error) {
	for _, wf := range t {
		if n, err := wf.Write(p); err != nil {
			return n, err
		} else if n < len(p) {
			return n, io.ErrShortWrite
		}
	}
	return len(p), nil
}

// Flush flushes every writer, even after one fails, returning all errors.
func (t teeFlusher) Flush() error {
	var errs []error
	for _, wf := range t {
		if err := wf.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
