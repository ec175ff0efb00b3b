/*
Package cat implements the evaluation core of a small concatenative
language, in the family of FORTH, Joy and Cat.

Programs are sequences of terms that consume and produce values on an
implicit data stack; there are no named variables. A term is one of:

	Push   a literal boolean or 32-bit number
	Quote  an unevaluated term sequence, pushed as a first-class value
	Call   a name resolved against a dictionary of Words at evaluation time
	Prim   one of the host implemented primitive operations

The same Stack type serves both as a program and as the runtime value stack:
quoting a program and pushing data share one representation, so quotations
may be duplicated, composed and applied like any other value.

Evaluation is a left-to-right fold over the program: each term transforms the
stack produced by the previous one, and the first failing term aborts the
whole evaluation. A Call is a substitution of its definition, not a sub-call
with its own scope; primitives like apply and if re-enter the evaluator
against the remaining stack. Nesting is bounded by a checked depth limit.

Stack effects below use the notation (inputs -> outputs), relative to an
unspecified lower portion of the stack named by a capital letter:

	dup      (A b -> A b b)
	pop      (A b -> A)
	swap     (A b c -> A c b)
	quote    (A b -> A (C -> C b))
	compose  (A (B -> C) (C -> D) -> A (B -> D))
	apply    (A (A -> B) -> B)
	if       (A bool (A -> B) (A -> B) -> B)
	eq       (A num num -> A bool)
	and, or  (A bool bool -> A bool)
	not      (A bool -> A bool)
	+ - * /  (A num num -> A num)
	%        (A num num -> A num)
	words    (A ~> A)
*/
package cat
