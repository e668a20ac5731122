// Package types holds the tree-shaped type representation used by the later
// checking phases. Tokenization does not depend on it.
package types

import (
	"fmt"

	"github.com/pipe01/bearbones/internal/lexer"
)

type Kind int

const (
	Bool Kind = iota
	Int
	Char
	Array
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Char:
		return "char"
	case Array:
		return "array"
	}

	return "<unknown>"
}

type Type struct {
	Kind Kind

	// Element type, only set for arrays.
	Elem *Type

	Span lexer.Span
}

func New(kind Kind, span lexer.Span) *Type {
	return &Type{
		Kind: kind,
		Span: span,
	}
}

func NewArray(elem *Type, span lexer.Span) *Type {
	return &Type{
		Kind: Array,
		Elem: elem,
		Span: span,
	}
}

// FromKeyword returns the scalar type named by a type keyword, if any.
func FromKeyword(tk lexer.Token) (*Type, bool) {
	if tk.Kind != lexer.KindKeyword {
		return nil, false
	}

	switch tk.Keyword {
	case lexer.KwBool:
		return New(Bool, tk.Span), true
	case lexer.KwInt:
		return New(Int, tk.Span), true
	case lexer.KwChar:
		return New(Char, tk.Span), true
	}

	return nil, false
}

func (t *Type) String() string {
	if t.Kind == Array {
		return fmt.Sprintf("%s[]", t.Elem)
	}
	return t.Kind.String()
}

// Equal reports whether both types have the same shape. Spans are ignored.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind == Array {
		return t.Elem.Equal(other.Elem)
	}
	return true
}
