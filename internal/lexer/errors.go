package lexer

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyChar         = errors.New("empty character literal")
	ErrCharNotASCII      = errors.New("character literal is not ASCII")
	ErrInvalidEscape     = errors.New("invalid escape sequence")
	ErrCharNotTerminated = errors.New("unterminated character literal")
	ErrCharExpected      = errors.New("expected a character after the opening quote")
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrIntOutOfRange     = errors.New("integer literal does not fit in 32 bits")

	// Raised by drivers after lexing, never by the lexer itself.
	ErrMainNotFound = errors.New("main function not found")
)

// LexerError attaches a source span to one of the errors above. Span is nil
// for errors that have no position, like ErrUnexpectedEOF.
type LexerError struct {
	Inner error
	Span  *Span
}

func (e *LexerError) Unwrap() error {
	return e.Inner
}

func (e *LexerError) Error() string {
	if e.Span == nil {
		return e.Inner.Error()
	}
	return fmt.Sprintf("%s at %s", e.Inner, e.Span)
}

func (e *LexerError) At() *Span {
	return e.Span
}

type InvalidEscapeError struct {
	Got rune
}

func (e *InvalidEscapeError) Error() string {
	return fmt.Sprintf("%s '\\%c'", ErrInvalidEscape, e.Got)
}

func (e *InvalidEscapeError) Is(target error) bool {
	return target == ErrInvalidEscape
}
