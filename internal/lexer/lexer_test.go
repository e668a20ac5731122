package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func kw(k Keyword) Token   { return Token{Kind: KindKeyword, Keyword: k} }
func op(o Operator) Token  { return Token{Kind: KindOperator, Operator: o} }
func id(text string) Token { return Token{Kind: KindID, Text: text} }
func num(n int32) Token    { return Token{Kind: KindInt, Int: n} }
func chr(c rune) Token     { return Token{Kind: KindChar, Char: c} }
func boolean(b bool) Token { return Token{Kind: KindBool, Bool: b} }

var unknown = Token{Kind: KindUnknown}

func withoutSpans(tks []Token) []Token {
	out := make([]Token, len(tks))
	for i, tk := range tks {
		tk.Span = Span{}
		out[i] = tk
	}
	return out
}

func span(line, start, end int) Span {
	return Span{
		Start: Position{Line: line, Col: start},
		End:   Position{Line: line, Col: end},
	}
}

func mustLex(t *testing.T, src string) []Token {
	t.Helper()

	tks, err := Lex([]byte(src))
	require.NoError(t, err)

	return tks
}

func TestLexer(t *testing.T) {
	type testCase struct {
		name string
		src  string
		want []Token
	}

	cases := []testCase{
		{
			name: "empty input",
			src:  "",
			want: []Token{},
		},
		{
			name: "whitespace only",
			src:  " \t\r\n\n  ",
			want: []Token{},
		},
		{
			name: "single semicolon",
			src:  ";",
			want: []Token{op(OpSemicolon)},
		},
		{
			name: "punctuation",
			src:  "( ) { } , ; : .",
			want: []Token{
				op(OpLeftParen), op(OpRightParen), op(OpLeftBrace), op(OpRightBrace),
				op(OpComma), op(OpSemicolon), op(OpColon), op(OpDot),
			},
		},
		{
			name: "adjacent punctuation",
			src:  "(){};",
			want: []Token{
				op(OpLeftParen), op(OpRightParen), op(OpLeftBrace), op(OpRightBrace), op(OpSemicolon),
			},
		},
		{
			name: "character literal",
			src:  "'a'",
			want: []Token{chr('a')},
		},
		{
			name: "escaped newline",
			src:  `'\n'`,
			want: []Token{chr('\n')},
		},
		{
			name: "escapes",
			src:  `'\r' '\t' '\\' '\0' '\'' '\"'`,
			want: []Token{chr('\r'), chr('\t'), chr('\\'), chr('0'), chr('\''), chr('"')},
		},
		{
			name: "false",
			src:  "false",
			want: []Token{boolean(false)},
		},
		{
			name: "true",
			src:  "true",
			want: []Token{boolean(true)},
		},
		{
			name: "function declaration",
			src: `
				int main() {
					return 0;
				}
			`,
			want: []Token{
				kw(KwInt), id("main"), op(OpLeftParen), op(OpRightParen), op(OpLeftBrace),
				kw(KwReturn), num(0), op(OpSemicolon),
				op(OpRightBrace),
			},
		},
		{
			name: "function declaration with arguments",
			src: `
				int main(int a, int b) {
					int c;
					c = a + b;
					return 0;
				}
			`,
			want: []Token{
				kw(KwInt), id("main"), op(OpLeftParen),
				kw(KwInt), id("a"), op(OpComma), kw(KwInt), id("b"),
				op(OpRightParen), op(OpLeftBrace),
				kw(KwInt), id("c"), op(OpSemicolon),
				id("c"), op(OpEq), id("a"), op(OpAdd), id("b"), op(OpSemicolon),
				kw(KwReturn), num(0), op(OpSemicolon),
				op(OpRightBrace),
			},
		},
		{
			name: "control flow",
			src:  "while (x != 10) { if (!done) continue; else break; }",
			want: []Token{
				kw(KwWhile), op(OpLeftParen), id("x"), op(OpNeq), num(10), op(OpRightParen), op(OpLeftBrace),
				kw(KwIf), op(OpLeftParen), op(OpNot), id("done"), op(OpRightParen), kw(KwContinue), op(OpSemicolon),
				kw(KwElse), kw(KwBreak), op(OpSemicolon),
				op(OpRightBrace),
			},
		},
		{
			name: "identifier with digits and underscores",
			src:  "foo_bar2 x1_",
			want: []Token{id("foo_bar2"), id("x1_")},
		},
		{
			name: "keyword prefix is an identifier",
			src:  "integer returns",
			want: []Token{id("integer"), id("returns")},
		},
		{
			name: "digits then letters",
			src:  "12abc",
			want: []Token{num(12), id("abc")},
		},
		{
			name: "fraction is discarded",
			src:  "12.75",
			want: []Token{num(12)},
		},
		{
			name: "trailing dot is part of the number",
			src:  "3.;",
			want: []Token{num(3), op(OpSemicolon)},
		},
		{
			name: "largest int",
			src:  "2147483647",
			want: []Token{num(2147483647)},
		},
		{
			name: "unknown characters",
			src:  "a @ b # _",
			want: []Token{id("a"), unknown, id("b"), unknown, unknown},
		},
		{
			name: "non-ASCII outside literal",
			src:  "é",
			want: []Token{unknown},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			tks := mustLex(t, c.src)
			require.Equal(t, c.want, withoutSpans(tks))
		})
	}
}

func TestCompoundOperators(t *testing.T) {
	cases := []struct {
		src  string
		want Operator
	}{
		{"=", OpEq},
		{"==", OpEqq},
		{"+", OpAdd},
		{"+=", OpAddAssign},
		{"-", OpSub},
		{"-=", OpSubAssign},
		{"*", OpMul},
		{"*=", OpMulAssign},
		{"/", OpDiv},
		{"/=", OpDivAssign},
		{"<", OpLt},
		{"<=", OpLe},
		{">", OpGt},
		{">=", OpGe},
		{"!", OpNot},
		{"!=", OpNeq},
	}

	for _, c := range cases {
		c := c

		t.Run(c.src, func(t *testing.T) {
			tks := mustLex(t, c.src)
			require.Equal(t, []Token{op(c.want)}, withoutSpans(tks))
			require.Equal(t, span(1, 0, len(c.src)), tks[0].Span)
			require.Equal(t, c.src, tks[0].Operator.String())
		})
	}
}

func TestOperatorLookaheadIsOneCharacter(t *testing.T) {
	tks := mustLex(t, "===")
	require.Equal(t, []Token{op(OpEqq), op(OpEq)}, withoutSpans(tks))
	require.Equal(t, span(1, 0, 2), tks[0].Span)
	require.Equal(t, span(1, 2, 3), tks[1].Span)

	tks = mustLex(t, "a=-1")
	require.Equal(t, []Token{id("a"), op(OpEq), op(OpSub), num(1)}, withoutSpans(tks))
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		wantErr  error
		wantSpan *Span
	}{
		{
			name:     "invalid escape",
			src:      `'\q'`,
			wantErr:  ErrInvalidEscape,
			wantSpan: &Span{Start: Position{1, 1}, End: Position{1, 3}},
		},
		{
			name:     "empty literal",
			src:      "''",
			wantErr:  ErrEmptyChar,
			wantSpan: &Span{Start: Position{1, 1}, End: Position{1, 2}},
		},
		{
			name:     "not terminated",
			src:      "'  '",
			wantErr:  ErrCharNotTerminated,
			wantSpan: &Span{Start: Position{1, 1}, End: Position{1, 2}},
		},
		{
			name:     "escape not terminated",
			src:      `'\nx'`,
			wantErr:  ErrCharNotTerminated,
			wantSpan: &Span{Start: Position{1, 1}, End: Position{1, 3}},
		},
		{
			name:     "quote at end of input",
			src:      "'",
			wantErr:  ErrCharExpected,
			wantSpan: &Span{Start: Position{1, 1}, End: Position{1, 2}},
		},
		{
			name:     "quote at end of longer input",
			src:      "x = '",
			wantErr:  ErrCharExpected,
			wantSpan: &Span{Start: Position{1, 5}, End: Position{1, 6}},
		},
		{
			name:    "end of input inside escape",
			src:     `'\`,
			wantErr: ErrUnexpectedEOF,
		},
		{
			name:     "non-ASCII literal",
			src:      "'é'",
			wantErr:  ErrCharNotASCII,
			wantSpan: &Span{Start: Position{1, 1}, End: Position{1, 3}},
		},
		{
			name:     "int overflow",
			src:      "x = 2147483648;",
			wantErr:  ErrIntOutOfRange,
			wantSpan: &Span{Start: Position{1, 4}, End: Position{1, 14}},
		},
		{
			name:     "error on later line",
			src:      "int c;\n  c = '';",
			wantErr:  ErrEmptyChar,
			wantSpan: &Span{Start: Position{2, 7}, End: Position{2, 8}},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			tks, err := Lex([]byte(c.src))
			require.Nil(t, tks, "no partial token list on error")
			require.ErrorIs(t, err, c.wantErr)

			var lexErr *LexerError
			require.True(t, errors.As(err, &lexErr))
			require.Equal(t, c.wantSpan, lexErr.At())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	_, err := Lex([]byte("''"))
	require.EqualError(t, err, "empty character literal at line 1, columns 1 - 2")

	_, err = Lex([]byte(`'\`))
	require.EqualError(t, err, "unexpected end of input")

	_, err = Lex([]byte(`'\q'`))
	require.EqualError(t, err, `invalid escape sequence '\q' at line 1, columns 1 - 3`)

	var escErr *InvalidEscapeError
	require.True(t, errors.As(err, &escErr))
	require.Equal(t, 'q', escErr.Got)
}

func TestSpans(t *testing.T) {
	tks := mustLex(t, "const x = 5;")

	want := []Span{
		span(1, 0, 5),
		span(1, 6, 7),
		span(1, 8, 9),
		span(1, 10, 11),
		span(1, 11, 12),
	}

	require.Len(t, tks, len(want))
	for i, tk := range tks {
		require.Equal(t, want[i], tk.Span, "token %d (%s)", i, tk)
	}

	for i := 1; i < len(tks); i++ {
		require.LessOrEqual(t, tks[i-1].Span.End.Col, tks[i].Span.Start.Col, "tokens must not overlap")
	}
}

func TestSpansAcrossLines(t *testing.T) {
	tks := mustLex(t, "a\n  bc\r\n\tx += 'y'")

	require.Equal(t, []Span{
		span(1, 0, 1),
		span(2, 2, 4),
		span(3, 1, 2),
		span(3, 3, 5),
		span(3, 7, 8),
	}, spans(tks))

	for _, tk := range tks {
		require.Greater(t, tk.Span.Len(), 0, "token %s", tk)
	}
}

func TestSpanOfEscapeAndNumber(t *testing.T) {
	tks := mustLex(t, `'\t' 12.50 '\''`)

	require.Equal(t, []Span{
		span(1, 1, 3),
		span(1, 5, 10),
		span(1, 12, 14),
	}, spans(tks))
}

func TestRawNewlineLiteral(t *testing.T) {
	tks := mustLex(t, "'\n' x")

	require.Equal(t, []Token{chr('\n'), id("x")}, withoutSpans(tks))
	require.Equal(t, span(1, 1, 2), tks[0].Span)
	require.Equal(t, span(2, 2, 3), tks[1].Span)
}

func TestUnknownSpansWholeCharacter(t *testing.T) {
	tks := mustLex(t, "é;")

	require.Equal(t, []Span{span(1, 0, 2), span(1, 2, 3)}, spans(tks))
}

func TestIdempotence(t *testing.T) {
	src := []byte("int main() {\n\tchar c = '\\n';\n\treturn c >= 3;\n}")

	first := mustLex(t, string(src))
	second := mustLex(t, string(src))

	require.True(t, slices.Equal(first, second))
}

func TestCollectTwice(t *testing.T) {
	l := New([]byte("a b"))

	first, err := l.Collect()
	require.NoError(t, err)

	second, err := l.Collect()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestReservedWords(t *testing.T) {
	for _, word := range Keywords() {
		word := word

		t.Run(word, func(t *testing.T) {
			tks := mustLex(t, word)
			require.Len(t, tks, 1)

			tk := tks[0]
			require.False(t, tk.IsID())

			switch word {
			case "true", "false":
				require.Equal(t, boolean(word == "true"), withoutSpans(tks)[0])
			default:
				require.Equal(t, KindKeyword, tk.Kind)
				require.Equal(t, word, tk.Keyword.String())
			}
		})
	}
}

func TestKeywordsSorted(t *testing.T) {
	words := Keywords()

	require.Len(t, words, 15)
	require.True(t, slices.IsSorted(words))
	require.Contains(t, words, "true")
	require.Contains(t, words, "continue")
}

func TestIDName(t *testing.T) {
	tks := mustLex(t, "main 0")

	require.True(t, tks[0].IsID())
	require.Equal(t, "main", tks[0].IDName())

	require.False(t, tks[1].IsID())
	require.Panics(t, func() { tks[1].IDName() })
}

func TestTokenString(t *testing.T) {
	cases := []struct {
		tk   Token
		want string
	}{
		{kw(KwReturn), "Keyword(return)"},
		{op(OpAddAssign), "Operator(+=)"},
		{id("main"), "Id(main)"},
		{boolean(true), "Bool(true)"},
		{num(-4), "Int(-4)"},
		{chr('\n'), `Char('\n')`},
		{unknown, "Unknown"},
		{Token{Kind: KindNewline}, "Newline"},
	}

	for _, c := range cases {
		if got := c.tk.String(); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}

func spans(tks []Token) []Span {
	out := make([]Span, len(tks))
	for i, tk := range tks {
		out[i] = tk.Span
	}
	return out
}
