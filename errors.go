package main

import (
	"errors"
	"os"

	"github.com/pipe01/bearbones/internal/lexer"
	"github.com/pipe01/bearbones/internal/printer"
	"github.com/pipe01/bearbones/internal/workspace"
)

type SituatedErr interface {
	Unwrap() error
	At() *lexer.Span
}

var errLexFailed = errors.New("lexing failed")

// reportError prints err as a diagnostic for fname. Errors without a position
// in the file are returned unchanged so the caller can fail with them.
func reportError(ws *workspace.Workspace, fname string, err error) error {
	var poserr SituatedErr
	if !errors.As(err, &poserr) {
		return err
	}

	src, ok := ws.Source(fname)
	if !ok {
		src, _ = os.ReadFile(fname)
	}

	printer.Diagnostic(os.Stderr, fname, src, err, styles)
	return errLexFailed
}
