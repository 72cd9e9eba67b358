package syntax

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrEmptyInput is returned by [Parse] when the input has no tree.
var ErrEmptyInput = errors.New("empty tree string")

// ParseError describes a syntax error in bracketed notation.
type ParseError struct {
	Offset int    // Byte offset of the offending input
	Msg    string // What went wrong
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse tree at offset %d: %s", e.Offset, e.Msg)
}

// Parse reads a single tree in bracketed notation, e.g.
//
//	(S (NP (PRP I)) (VP (VBP like) (NP (NNS trees))))
//
// The first element after an opening parenthesis is the label unless it is
// itself a parenthesis, which yields an unlabelled node (common for Penn
// Treebank root wrappers). Every other element is either a nested tree or a
// token. Whitespace between elements is free-form.
//
// Parse rejects empty input, unbalanced parentheses, bare top-level tokens and
// trailing content after the root.
func Parse(s string) (*Tree, error) {
	p := &parser{src: s}
	p.skipSpace()
	if p.eof() {
		return nil, ErrEmptyInput
	}
	if p.peek() != '(' {
		return nil, p.errorf("expected '(' at start of tree, found %q", p.peek())
	}
	t, err := p.tree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected trailing input %q", p.rest(16))
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) *Tree {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) rest(n int) string {
	end := min(p.pos+n, len(p.src))
	return p.src[p.pos:end]
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.pos++
	}
}

// tree parses "(" [label] {tree | token} ")" starting at an opening parenthesis.
func (p *parser) tree() (*Tree, error) {
	p.pos++ // '('
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input, missing ')'")
	}

	t := &Tree{}
	if c := p.peek(); c != '(' && c != ')' {
		t.Label = p.atom()
	}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unexpected end of input, missing ')'")
		}
		switch p.peek() {
		case ')':
			p.pos++
			return t, nil
		case '(':
			child, err := p.tree()
			if err != nil {
				return nil, err
			}
			child.parent = t
			t.children = append(t.children, child)
		default:
			tok := Token(p.atom())
			tok.parent = t
			t.children = append(t.children, tok)
		}
	}
}

// atom reads a run of characters up to whitespace or a parenthesis.
func (p *parser) atom() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '(' || c == ')' || isSpace(c) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func isSpace(c byte) bool {
	return c < 0x80 && unicode.IsSpace(rune(c))
}
