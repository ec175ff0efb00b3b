package cat

import "sort"

// Words is a dictionary mapping names to their definition terms.
// A Words is only read during evaluation.
type Words struct {
	defs map[string]Term
}

// EmptyWords returns a dictionary with no entries.
func EmptyWords() *Words {
	return &Words{defs: make(map[string]Term)}
}

// StandardWords returns a dictionary holding every primitive under its
// canonical name.
func StandardWords() *Words {
	words := EmptyWords()
	for _, prim := range Prims() {
		words.Define(prim.Name(), prim)
	}
	return words
}

// Define inserts or replaces the definition for name.
func (words *Words) Define(name string, term Term) {
	if words.defs == nil {
		words.defs = make(map[string]Term)
	}
	words.defs[name] = term
}

// Lookup returns the definition for name, if any.
//
// Terms are immutable values, so the returned term is independent of the
// dictionary: evaluating it can neither observe nor affect later changes.
func (words *Words) Lookup(name string) (Term, bool) {
	if words == nil {
		return nil, false
	}
	term, ok := words.defs[name]
	return term, ok
}

// Len returns the number of defined words.
func (words *Words) Len() int {
	if words == nil {
		return 0
	}
	return len(words.defs)
}

// Names returns all defined names in sorted order.
func (words *Words) Names() []string {
	if words == nil {
		return nil
	}
	names := make([]string, 0, len(words.defs))
	for name := range words.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the dictionary that may be extended independently.
func (words *Words) Clone() *Words {
	clone := EmptyWords()
	if words != nil {
		for name, term := range words.defs {
			clone.defs[name] = term
		}
	}
	return clone
}
