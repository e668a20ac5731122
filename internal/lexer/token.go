package lexer

import (
	"fmt"
	"strconv"
)

type Kind int

const (
	KindKeyword Kind = iota
	KindOperator
	KindID
	KindBool
	KindInt
	KindChar

	// Reserved for line-sensitive consumers, never emitted by the lexer.
	KindNewline

	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindKeyword:
		return "Keyword"
	case KindOperator:
		return "Operator"
	case KindID:
		return "Identifier"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindChar:
		return "Char"
	case KindNewline:
		return "Newline"
	case KindUnknown:
		return "Unknown"
	}

	return "<unknown>"
}

type Keyword int

const (
	KwConst Keyword = iota
	KwVoid
	KwBool
	KwChar
	KwInt
	KwIf
	KwElse
	KwFor
	KwWhile
	KwDo
	KwContinue
	KwBreak
	KwReturn
)

var keywordNames = [...]string{
	KwConst:    "const",
	KwVoid:     "void",
	KwBool:     "bool",
	KwChar:     "char",
	KwInt:      "int",
	KwIf:       "if",
	KwElse:     "else",
	KwFor:      "for",
	KwWhile:    "while",
	KwDo:       "do",
	KwContinue: "continue",
	KwBreak:    "break",
	KwReturn:   "return",
}

func (k Keyword) String() string {
	if k < 0 || int(k) >= len(keywordNames) {
		return "<unknown>"
	}
	return keywordNames[k]
}

type Operator int

const (
	OpLeftParen Operator = iota
	OpRightParen
	OpLeftBrace
	OpRightBrace
	OpComma
	OpSemicolon
	OpColon
	OpDot

	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpEqq
	OpNeq
	OpNot
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpAddAssign
	OpSubAssign
	OpMulAssign
	OpDivAssign
)

var operatorSpellings = [...]string{
	OpLeftParen:  "(",
	OpRightParen: ")",
	OpLeftBrace:  "{",
	OpRightBrace: "}",
	OpComma:      ",",
	OpSemicolon:  ";",
	OpColon:      ":",
	OpDot:        ".",

	OpLt:        "<",
	OpLe:        "<=",
	OpGt:        ">",
	OpGe:        ">=",
	OpEq:        "=",
	OpEqq:       "==",
	OpNeq:       "!=",
	OpNot:       "!",
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpAddAssign: "+=",
	OpSubAssign: "-=",
	OpMulAssign: "*=",
	OpDivAssign: "/=",
}

// String returns the operator as it is spelled in source.
func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorSpellings) {
		return "<unknown>"
	}
	return operatorSpellings[o]
}

// Token is a single lexeme. Only the payload field matching Kind is meaningful.
type Token struct {
	Kind Kind

	Keyword  Keyword
	Operator Operator
	Text     string
	Bool     bool
	Int      int32
	Char     rune

	Span Span
}

func (t Token) IsID() bool {
	return t.Kind == KindID
}

// IDName returns the identifier's text. Calling it on any other kind of token
// is a programming error and panics.
func (t Token) IDName() string {
	if t.Kind != KindID {
		panic("token is not an identifier")
	}
	return t.Text
}

func (t Token) String() string {
	switch t.Kind {
	case KindKeyword:
		return fmt.Sprintf("Keyword(%s)", t.Keyword)
	case KindOperator:
		return fmt.Sprintf("Operator(%s)", t.Operator)
	case KindID:
		return fmt.Sprintf("Id(%s)", t.Text)
	case KindBool:
		return fmt.Sprintf("Bool(%t)", t.Bool)
	case KindInt:
		return "Int(" + strconv.FormatInt(int64(t.Int), 10) + ")"
	case KindChar:
		return fmt.Sprintf("Char(%q)", t.Char)
	}

	return t.Kind.String()
}

type Position struct {
	// 1-based
	Line int

	// 0-based byte offset from the start of the line
	Col int
}

// Span is a half-open [Start, End) range on a single line.
type Span struct {
	Start, End Position
}

func (s Span) String() string {
	return fmt.Sprintf("line %d, columns %d - %d", s.Start.Line, s.Start.Col, s.End.Col)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Col - s.Start.Col
}
