// Package entry locates the entry function in a lexed source file.
package entry

import (
	"github.com/pipe01/bearbones/internal/lexer"
)

const entryName = "main"

type finder struct {
	tokens []lexer.Token
	index  int
}

// Find returns the identifier token naming the entry function, declared as
// "<type> main (". When there is none it returns a LexerError wrapping
// lexer.ErrMainNotFound.
func Find(tokens []lexer.Token) (*lexer.Token, error) {
	f := finder{
		tokens: tokens,
	}

	if tk := f.find(); tk != nil {
		return tk, nil
	}

	return nil, &lexer.LexerError{Inner: lexer.ErrMainNotFound}
}

func (f *finder) take() (tk *lexer.Token) {
	if f.index >= len(f.tokens) {
		return nil
	}

	tk = &f.tokens[f.index]
	f.index++

	return tk
}

func (f *finder) peek() *lexer.Token {
	if f.index >= len(f.tokens) {
		return nil
	}

	return &f.tokens[f.index]
}

func (f *finder) rewind() {
	if f.index == 0 {
		panic("cannot rewind any further")
	}

	f.index--
}

func (f *finder) find() *lexer.Token {
	for {
		tk := f.take()
		if tk == nil {
			return nil
		}

		if !isReturnType(tk) {
			continue
		}

		name := f.take()
		if name == nil {
			return nil
		}
		if !name.IsID() || name.IDName() != entryName {
			// The name may itself start a declaration, e.g. "int int main(".
			f.rewind()
			continue
		}

		if next := f.peek(); next != nil && next.Kind == lexer.KindOperator && next.Operator == lexer.OpLeftParen {
			return name
		}
	}
}

func isReturnType(tk *lexer.Token) bool {
	if tk.Kind != lexer.KindKeyword {
		return false
	}

	switch tk.Keyword {
	case lexer.KwVoid, lexer.KwInt, lexer.KwBool, lexer.KwChar:
		return true
	}

	return false
}
