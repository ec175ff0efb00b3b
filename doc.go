/*
Command gocat runs programs written in a small concatenative language.

Programs are sequences of words separated by whitespace, operating on an
implicit stack:

	3 4 +               # 7
	[ dup * ] quote     # quotations are first-class values
	2 [ dup * ] apply   # 4
	true [ 1 ] [ 2 ] if # 1; the else quotation is on top

New words are defined with ": name body ;", and may refer to themselves:

	: sq dup * ;
	: fact dup 1 eq [ ] [ dup 1 - fact * ] if ;
	5 fact              # 120

With no arguments and an interactive terminal, gocat starts a REPL that keeps
its stack between lines. Otherwise it evaluates the named files, the -e
program, or standard input as one program, and prints the resulting stack.
With -each, every file is evaluated as an independent program, concurrently.

Evaluation limits and a prelude of word definitions may be given by a
gocat.toml file, found in the current directory or any parent:

	depth-limit = 1000
	step-limit = 1000000
	timeout = "5s"
	prelude = ["lib/prelude.cat"]

	[words]
	sq = "dup *"
	cube = "dup sq *"

See package cat for the evaluation core and its primitive words.
*/
package main
