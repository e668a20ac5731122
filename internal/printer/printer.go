// Package printer renders token streams and lexical errors for humans.
package printer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pipe01/bearbones/internal/lexer"
)

const tokenLocationWidth = 12

// Tokens writes one token per line as "line:start-end  Kind  payload".
func Tokens(w io.Writer, tks []lexer.Token) {
	ow := &outputWriter{
		w:      w,
		styles: PlainStyles(),
		gutter: tokenLocationWidth,
	}

	for _, tk := range tks {
		location := fmt.Sprintf("%d:%d-%d", tk.Span.Start.Line, tk.Span.Start.Col, tk.Span.End.Col)
		ow.WriteToken(location, tk.Kind.String(), payload(tk))
	}
}

func payload(tk lexer.Token) string {
	switch tk.Kind {
	case lexer.KindKeyword:
		return tk.Keyword.String()
	case lexer.KindOperator:
		return tk.Operator.String()
	case lexer.KindID:
		return tk.Text
	case lexer.KindBool:
		return fmt.Sprint(tk.Bool)
	case lexer.KindInt:
		return fmt.Sprint(tk.Int)
	case lexer.KindChar:
		return fmt.Sprintf("%q", tk.Char)
	}

	return ""
}

// Diagnostic writes err as an error report. When err carries a span, the
// offending line of src is quoted and underlined.
func Diagnostic(w io.Writer, fileName string, src []byte, err error, styles Styles) {
	var lexErr *lexer.LexerError
	if !errors.As(err, &lexErr) {
		ow := &outputWriter{w: w, styles: styles}
		ow.WriteHeader("error", err.Error())
		return
	}

	span := lexErr.At()
	if span == nil {
		ow := &outputWriter{w: w, styles: styles}
		ow.WriteHeader("error", lexErr.Inner.Error())
		ow.WriteLocation(fileName, "end of input")
		return
	}

	ow := &outputWriter{
		w:      w,
		styles: styles,
		gutter: len(fmt.Sprint(span.Start.Line)),
	}

	ow.WriteHeader("error", lexErr.Inner.Error())
	ow.WriteLocation(fileName, span.String())

	line, ok := sourceLine(src, span.Start.Line)
	if !ok {
		return
	}

	ow.WriteSourceLine(span.Start.Line, strings.TrimRight(line, "\r"))
	ow.WriteUnderline(underlinePrefix(line, span.Start.Col), span.Len())
}

func sourceLine(src []byte, line int) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(src))

	for n := 1; sc.Scan(); n++ {
		if n == line {
			return sc.Text(), true
		}
	}

	return "", false
}

// underlinePrefix keeps tabs so the carets line up with the quoted source.
func underlinePrefix(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}

	prefix := []byte(line[:col])
	for i, c := range prefix {
		if c != '\t' {
			prefix[i] = ' '
		}
	}

	return string(prefix)
}
