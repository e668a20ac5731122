package lexer

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

var escapeChars = []rune{'n', 'r', 't', '\\', '0', '\'', '"'}

var singleOperators = map[rune]Operator{
	'(': OpLeftParen,
	')': OpRightParen,
	'{': OpLeftBrace,
	'}': OpRightBrace,
	',': OpComma,
	';': OpSemicolon,
	':': OpColon,
	'.': OpDot,
}

type operatorPair struct {
	single, compound Operator
}

// Operators that turn into their compound form when followed by '='.
var compoundOperators = map[rune]operatorPair{
	'+': {OpAdd, OpAddAssign},
	'-': {OpSub, OpSubAssign},
	'*': {OpMul, OpMulAssign},
	'/': {OpDiv, OpDivAssign},
	'<': {OpLt, OpLe},
	'>': {OpGt, OpGe},
	'!': {OpNot, OpNeq},
	'=': {OpEq, OpEqq},
}

type stateFunc func() stateFunc

type Lexer struct {
	src []byte

	offset    int
	line      int
	lineStart int

	tokens []Token
	err    *LexerError
}

func New(src []byte) *Lexer {
	return &Lexer{
		src:    src,
		line:   1,
		tokens: make([]Token, 0, len(src)/2),
	}
}

// Lex scans src in full and returns its tokens, or the first error found.
func Lex(src []byte) ([]Token, error) {
	return New(src).Collect()
}

// Collect runs the lexer until the input is exhausted. On error no tokens are
// returned.
func (l *Lexer) Collect() ([]Token, error) {
	state := l.lexAny
	for state != nil {
		state = state()
	}

	if l.err != nil {
		return nil, l.err
	}

	return l.tokens, nil
}

func (l *Lexer) peek() (r rune, size int, eof bool) {
	if l.offset >= len(l.src) {
		return 0, 0, true
	}

	r, size = utf8.DecodeRune(l.src[l.offset:])
	return r, size, false
}

func (l *Lexer) take() (r rune, start int, eof bool) {
	r, size, eof := l.peek()
	if eof {
		return 0, l.offset, true
	}

	start = l.offset
	l.offset += size

	return r, start, false
}

func (l *Lexer) takeIf(exp rune) (taken bool) {
	r, _, eof := l.peek()
	if eof || r != exp {
		return false
	}

	l.take()
	return true
}

func (l *Lexer) takeWhile(fn func(rune) bool) {
	for {
		r, _, eof := l.peek()
		if eof || !fn(r) {
			return
		}

		l.take()
	}
}

func (l *Lexer) newLine(offset int) {
	l.line++
	l.lineStart = offset + 1
}

func (l *Lexer) col(offset int) int {
	return offset - l.lineStart
}

func (l *Lexer) span(start, length int) Span {
	return Span{
		Start: Position{Line: l.line, Col: l.col(start)},
		End:   Position{Line: l.line, Col: l.col(start + length)},
	}
}

func (l *Lexer) emit(tk Token, start, length int) {
	tk.Span = l.span(start, length)
	l.tokens = append(l.tokens, tk)
}

func (l *Lexer) lexError(err error, span *Span) stateFunc {
	l.err = &LexerError{
		Inner: err,
		Span:  span,
	}
	return nil
}

func (l *Lexer) lexErrorAt(err error, start, length int) stateFunc {
	span := l.span(start, length)
	return l.lexError(err, &span)
}

func (l *Lexer) lexAny() stateFunc {
	r, _, eof := l.peek()
	if eof {
		return nil
	}

	if op, ok := singleOperators[r]; ok {
		_, start, _ := l.take()
		l.emit(Token{Kind: KindOperator, Operator: op}, start, 1)
		return l.lexAny
	}

	if _, ok := compoundOperators[r]; ok {
		return l.lexOperator
	}

	switch {
	case r == ' ' || r == '\r' || r == '\t':
		l.take()
		return l.lexAny

	case r == '\n':
		_, start, _ := l.take()
		l.newLine(start)
		return l.lexAny

	case r == '\'':
		return l.lexChar

	case isASCIIDigit(r):
		return l.lexNumber

	case isASCIILetter(r):
		return l.lexIdentifier
	}

	return l.lexUnknown
}

func (l *Lexer) lexOperator() stateFunc {
	r, start, _ := l.take()
	pair := compoundOperators[r]

	if l.takeIf('=') {
		l.emit(Token{Kind: KindOperator, Operator: pair.compound}, start, 2)
	} else {
		l.emit(Token{Kind: KindOperator, Operator: pair.single}, start, 1)
	}

	return l.lexAny
}

func (l *Lexer) lexChar() stateFunc {
	_, quote, _ := l.take()

	r, size, eof := l.peek()
	if eof {
		return l.lexErrorAt(ErrCharExpected, quote+1, 1)
	}

	switch {
	case r == '\'':
		_, start, _ := l.take()
		return l.lexErrorAt(ErrEmptyChar, start, 1)

	case r == '\\':
		return l.lexEscape

	case r >= utf8.RuneSelf:
		return l.lexErrorAt(ErrCharNotASCII, l.offset, size)
	}

	_, start, _ := l.take()
	next := l.finishChar(r, start, size)

	// A raw newline is a valid value, but it still ends the line.
	if r == '\n' && l.err == nil {
		l.newLine(start)
	}

	return next
}

func (l *Lexer) lexEscape() stateFunc {
	_, start, _ := l.take()

	r, _, eof := l.take()
	if eof {
		return l.lexError(ErrUnexpectedEOF, nil)
	}

	value, ok := unescape(r)
	if !ok {
		return l.lexErrorAt(&InvalidEscapeError{Got: r}, start, l.offset-start)
	}

	return l.finishChar(value, start, l.offset-start)
}

func (l *Lexer) finishChar(value rune, start, length int) stateFunc {
	if !l.takeIf('\'') {
		return l.lexErrorAt(ErrCharNotTerminated, start, length)
	}

	l.emit(Token{Kind: KindChar, Char: value}, start, length)
	return l.lexAny
}

func (l *Lexer) lexNumber() stateFunc {
	start := l.offset

	l.takeWhile(isASCIIDigit)
	intEnd := l.offset

	// The fractional part is accepted but has no effect on the value.
	if l.takeIf('.') {
		l.takeWhile(isASCIIDigit)
	}

	n, err := strconv.ParseInt(string(l.src[start:intEnd]), 10, 32)
	if err != nil {
		return l.lexErrorAt(ErrIntOutOfRange, start, l.offset-start)
	}

	l.emit(Token{Kind: KindInt, Int: int32(n)}, start, l.offset-start)
	return l.lexAny
}

func (l *Lexer) lexIdentifier() stateFunc {
	start := l.offset

	l.takeWhile(isIdentifierRune)
	text := string(l.src[start:l.offset])

	tk, ok := lookupReserved(text)
	if !ok {
		tk = Token{Kind: KindID, Text: text}
	}

	l.emit(tk, start, len(text))
	return l.lexAny
}

func (l *Lexer) lexUnknown() stateFunc {
	_, start, _ := l.take()

	l.emit(Token{Kind: KindUnknown}, start, l.offset-start)
	return l.lexAny
}

func unescape(r rune) (rune, bool) {
	if !slices.Contains(escapeChars, r) {
		return 0, false
	}

	switch r {
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	}

	return r, true
}
