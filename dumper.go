package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jcorbin/gocat/cat"
)

type dumper struct {
	sess *Session
	out  io.Writer

	nameWidth int
}

func (dump dumper) dump() {
	fmt.Fprintf(dump.out, "# Session Dump\n")
	fmt.Fprintf(dump.out, "  words: %v\n", dump.sess.words.Len())
	fmt.Fprintf(dump.out, "  stack: [%v]\n", dump.sess.stack)
	dump.dumpUser()
}

// dumpWords lists every word, primitives first.
func (dump dumper) dumpWords() {
	var prims, other []string
	for _, name := range dump.sess.words.Names() {
		if term, _ := dump.sess.words.Lookup(name); isPrim(term) {
			prims = append(prims, name)
		} else {
			other = append(other, name)
		}
	}
	if len(prims) > 0 {
		fmt.Fprintf(dump.out, "%v\n", strings.Join(prims, " "))
	}
	if len(other) > 0 {
		fmt.Fprintf(dump.out, "%v\n", strings.Join(other, " "))
	}
}

func (dump dumper) dumpUser() {
	names := make([]string, 0, len(dump.sess.user))
	for name := range dump.sess.user {
		names = append(names, name)
		if n := len(name); n > dump.nameWidth {
			dump.nameWidth = n
		}
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)

	fmt.Fprintf(dump.out, "\n# User Words\n")
	for _, name := range names {
		term, defined := dump.sess.words.Lookup(name)
		if !defined {
			continue
		}
		fmt.Fprintf(dump.out, "  %-*s %v", dump.nameWidth, name, term)
		if loc := dump.sess.user[name]; loc.Name != "" {
			fmt.Fprintf(dump.out, "  # %v", loc)
		}
		fmt.Fprintf(dump.out, "\n")
	}
}

func isPrim(term cat.Term) bool {
	_, is := term.(cat.Prim)
	return is
}
