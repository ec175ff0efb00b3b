// Package parse reads the textual syntax of the language into terms.
//
// Tokens are separated by whitespace, except for the quotation brackets "["
// and "]" which always stand alone. A "#" at the start of a token comments
// out the rest of its line. The tokens "true" and "false" are booleans,
// decimal integers within the 32-bit range are numbers, and every other
// token is a call to a named word.
//
// A definition ": name body ;" binds name to the quotation of its body. Uses
// of such user words are expanded into a call that pushes the quotation,
// followed by an apply primitive to run it.
package parse

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/jcorbin/gocat/cat"
	"github.com/jcorbin/gocat/internal/fileinput"
)

// Definition is a user word parsed from ": name body ;".
type Definition struct {
	Name     string
	Body     cat.Stack
	Location fileinput.Location
}

// Term returns the dictionary entry for the definition.
func (def Definition) Term() cat.Term { return cat.Quote{Stack: def.Body} }

// Program is the result of parsing: definitions, in source order, and the
// remaining top level terms to be evaluated.
type Program struct {
	Definitions []Definition
	Body        cat.Stack
}

// Error is a syntax error at some input location.
type Error struct {
	fileinput.Location
	Message string

	// Incomplete is set when the input ended inside a quotation or
	// definition, so that more input could complete it.
	Incomplete bool
}

func errorf(loc fileinput.Location, mess string, args ...interface{}) Error {
	return Error{Location: loc, Message: fmt.Sprintf(mess, args...)}
}

func incompletef(loc fileinput.Location, mess string, args ...interface{}) Error {
	err := errorf(loc, mess, args...)
	err.Incomplete = true
	return err
}

func (err Error) Error() string { return fmt.Sprintf("%v: %v", err.Location, err.Message) }

// Parser reads programs from a queue of inputs.
type Parser struct {
	// UserWord reports whether a name, not defined in the parsed input, is a
	// previously defined user word to be expanded.
	UserWord func(name string) bool

	in      fileinput.Input
	defined map[string]struct{}
	pending rune
	toks    []token
}

type token struct {
	fileinput.Location
	text string
}

// String parses a program from a string.
func String(src string) (Program, error) {
	var p Parser
	return p.Parse(fileinput.Named("<string>", strings.NewReader(src)))
}

// Parse reads a program from the given inputs, in order. Any input that
// implements io.Closer is closed once it has been read.
func (p *Parser) Parse(inputs ...io.Reader) (prog Program, err error) {
	p.in.Queue = append(p.in.Queue, inputs...)
	defer func() {
		if cerr := p.in.Close(); err == nil {
			err = cerr
		}
	}()

	if err := p.scan(); err != nil {
		return Program{}, err
	}
	p.declare()

	var body []cat.Term
	for {
		tok, err := p.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return Program{}, err
		}
		switch tok.text {
		case ":":
			def, err := p.definition(tok)
			if err != nil {
				return Program{}, err
			}
			prog.Definitions = append(prog.Definitions, def)
		default:
			if body, err = p.term(tok, body); err != nil {
				return Program{}, err
			}
		}
	}
	prog.Body = cat.NewStack(body...)
	return prog, nil
}

func (p *Parser) definition(start token) (def Definition, err error) {
	def.Location = start.Location
	name, err := p.next()
	if err == io.EOF {
		return def, incompletef(start.Location, "missing definition name")
	} else if err != nil {
		return def, err
	}
	if !isName(name.text) {
		return def, errorf(name.Location, "invalid definition name %q", name.text)
	}
	def.Name = name.text

	var body []cat.Term
	for {
		tok, err := p.next()
		if err == io.EOF {
			return def, incompletef(start.Location, "unterminated definition of %q", def.Name)
		} else if err != nil {
			return def, err
		}
		if tok.text == ";" {
			break
		}
		if body, err = p.term(tok, body); err != nil {
			return def, err
		}
	}
	def.Body = cat.NewStack(body...)
	return def, nil
}

func (p *Parser) quotation(start token) (cat.Quote, error) {
	var body []cat.Term
	for {
		tok, err := p.next()
		if err == io.EOF {
			return cat.Quote{}, incompletef(start.Location, "unterminated quotation")
		} else if err != nil {
			return cat.Quote{}, err
		}
		if tok.text == "]" {
			return cat.Quoted(body...), nil
		}
		if body, err = p.term(tok, body); err != nil {
			return cat.Quote{}, err
		}
	}
}

func (p *Parser) term(tok token, terms []cat.Term) ([]cat.Term, error) {
	switch tok.text {
	case "[":
		quote, err := p.quotation(tok)
		if err != nil {
			return terms, err
		}
		return append(terms, quote), nil
	case "]":
		return terms, errorf(tok.Location, "unexpected ]")
	case ":":
		return terms, errorf(tok.Location, "nested definition")
	case ";":
		return terms, errorf(tok.Location, "unexpected ;")
	case "true":
		return append(terms, cat.PushBool(true)), nil
	case "false":
		return append(terms, cat.PushBool(false)), nil
	}

	if isNumber(tok.text) {
		n, err := strconv.ParseInt(tok.text, 10, 32)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return terms, errorf(tok.Location, "number %v out of range", tok.text)
			}
			return terms, errorf(tok.Location, "invalid number %q", tok.text)
		}
		return append(terms, cat.PushNumber(int32(n))), nil
	}

	terms = append(terms, cat.Call(tok.text))
	if p.isUserWord(tok.text) {
		terms = append(terms, cat.PrimApply)
	}
	return terms, nil
}

func (p *Parser) isUserWord(name string) bool {
	if _, defined := p.defined[name]; defined {
		return true
	}
	return p.UserWord != nil && p.UserWord(name)
}

// scan reads every remaining token of the input queue.
func (p *Parser) scan() error {
	p.toks = p.toks[:0]
	for {
		tok, err := p.scanToken()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		p.toks = append(p.toks, tok)
	}
}

// declare marks every name defined anywhere in the scanned tokens as a user
// word, so that uses ahead of a definition expand the same as later ones.
func (p *Parser) declare() {
	for i := 0; i+1 < len(p.toks); i++ {
		if p.toks[i].text != ":" || !isName(p.toks[i+1].text) {
			continue
		}
		if p.defined == nil {
			p.defined = make(map[string]struct{})
		}
		p.defined[p.toks[i+1].text] = struct{}{}
	}
}

func (p *Parser) next() (token, error) {
	if len(p.toks) == 0 {
		return token{}, io.EOF
	}
	tok := p.toks[0]
	p.toks = p.toks[1:]
	return tok, nil
}

func (p *Parser) scanToken() (tok token, err error) {
	var sb strings.Builder
	for {
		r, err := p.readRune()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				break
			}
			return tok, err
		}

		switch {
		case r == '#' && sb.Len() == 0:
			if err := p.skipLine(); err != nil {
				return tok, err
			}

		case r == 0 || unicode.IsSpace(r):
			if sb.Len() > 0 {
				tok.text = sb.String()
				return tok, nil
			}

		case r == '[' || r == ']':
			if sb.Len() > 0 {
				p.pending = r
				tok.text = sb.String()
				return tok, nil
			}
			tok.Location = p.in.Scan.Location
			tok.text = string(r)
			return tok, nil

		default:
			if sb.Len() == 0 {
				tok.Location = p.in.Scan.Location
			}
			sb.WriteRune(r)
		}
	}
	tok.text = sb.String()
	return tok, nil
}

func (p *Parser) readRune() (rune, error) {
	if r := p.pending; r != 0 {
		p.pending = 0
		return r, nil
	}
	r, _, err := p.in.ReadRune()
	return r, err
}

func (p *Parser) skipLine() error {
	for {
		r, err := p.readRune()
		if err != nil || r == '\n' || r == 0 {
			return err
		}
	}
}

func isNumber(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func isName(s string) bool {
	switch s {
	case "[", "]", ":", ";", "true", "false":
		return false
	}
	return !isNumber(s)
}
