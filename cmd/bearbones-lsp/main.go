package main

import (
	goerrors "errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pipe01/bearbones/internal/lexer"
	"github.com/pipe01/bearbones/internal/workspace"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "bearbones"

var version string = "0.0.1"
var handler protocol.Handler

var documents = map[string]string{}

var log = commonlog.GetLogger("bearbones.lsp")

// Order matters, indexes are sent to the client.
var tokenTypes = []string{
	"keyword",
	"variable",
	"number",
	"string",
	"operator",
}

const (
	tokenTypeKeyword protocol.UInteger = iota
	tokenTypeVariable
	tokenTypeNumber
	tokenTypeString
	tokenTypeOperator
)

type SituatedErr interface {
	Unwrap() error
	At() *lexer.Span
}

func main() {
	// This increases logging verbosity (optional)
	commonlog.Configure(1, nil)

	protocol.SetTraceValue(protocol.TraceValueMessage)

	handler = protocol.Handler{
		Initialize:  initialize,
		Initialized: initialized,
		Shutdown:    shutdown,
		SetTrace:    setTrace,
		TextDocumentDidOpen: func(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
			documents[params.TextDocument.URI] = params.TextDocument.Text

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidChange: func(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
			for _, change := range params.ContentChanges {
				content, ok := documents[params.TextDocument.URI]
				if !ok {
					return nil
				}

				switch change := change.(type) {
				case protocol.TextDocumentContentChangeEventWhole:
					documents[params.TextDocument.URI] = change.Text

				case protocol.TextDocumentContentChangeEvent:
					startIndex, endIndex := change.Range.IndexesIn(content)
					documents[params.TextDocument.URI] = content[:startIndex] + change.Text + content[endIndex:]
				}
			}

			return handleDocument(context, params.TextDocument.URI)
		},
		TextDocumentDidClose: func(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
			delete(documents, params.TextDocument.URI)
			return nil
		},
		TextDocumentSemanticTokensFull: semanticTokensFull,
	}

	server := server.NewServer(&handler, lsName, false)

	server.RunStdio()
}

func documentPath(docURI string) (string, error) {
	url, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("parse document uri: %w", err)
	}
	if url.Scheme != "file" {
		return "", fmt.Errorf("invalid document uri scheme %q", url.Scheme)
	}

	return url.Path, nil
}

func handleDocument(context *glsp.Context, docURI string) error {
	filePath, err := documentPath(docURI)
	if err != nil {
		return err
	}

	contents, ok := documents[docURI]
	if !ok {
		return nil
	}

	ws := workspace.New(filepath.Dir(filePath))

	diag := []protocol.Diagnostic{}

	_, err = ws.LoadWithContents(filepath.Base(filePath), []byte(contents))
	if err != nil {
		log.Debugf("%s: %s", filePath, err)
		diag = append(diag, diagnostic(err, contents))
	}

	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diag,
	})

	return nil
}

// diagnostic converts err into an LSP diagnostic. Errors without a span, like
// an escape cut short by the end of the file, point at the end of contents.
func diagnostic(err error, contents string) protocol.Diagnostic {
	var poserr SituatedErr

	if !goerrors.As(err, &poserr) {
		return protocol.Diagnostic{
			Severity: ptr(protocol.DiagnosticSeverityError),
			Source:   ptr(lsName),
			Message:  err.Error(),
		}
	}

	d := protocol.Diagnostic{
		Severity: ptr(protocol.DiagnosticSeverityError),
		Source:   ptr(lsName),
		Message:  poserr.Unwrap().Error(),
	}

	if span := poserr.At(); span != nil {
		d.Range = protocol.Range{
			Start: pos(span.Start),
			End:   pos(span.End),
		}
	} else {
		end := endPosition(contents)
		d.Range = protocol.Range{
			Start: end,
			End:   end,
		}
	}

	return d
}

func initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := handler.CreateServerCapabilities()
	capabilities.SemanticTokensProvider = &protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     tokenTypes,
			TokenModifiers: []string{},
		},
		Range: false,
		Full:  true,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func semanticTokensFull(context *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	content, ok := documents[params.TextDocument.URI]
	if !ok {
		return nil, fmt.Errorf("document %q not found", params.TextDocument.URI)
	}

	tks, err := lexer.Lex([]byte(content))
	if err != nil {
		// The error is already published as a diagnostic.
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}

	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(tks),
	}, nil
}

// encodeSemanticTokens builds the relative 5-integer encoding LSP expects.
func encodeSemanticTokens(tks []lexer.Token) []protocol.UInteger {
	data := make([]protocol.UInteger, 0)

	var prevLine, prevCol int
	for _, tk := range tks {
		var tokenType protocol.UInteger

		switch tk.Kind {
		case lexer.KindKeyword, lexer.KindBool:
			tokenType = tokenTypeKeyword
		case lexer.KindID:
			tokenType = tokenTypeVariable
		case lexer.KindInt:
			tokenType = tokenTypeNumber
		case lexer.KindChar:
			tokenType = tokenTypeString
		case lexer.KindOperator:
			tokenType = tokenTypeOperator
		default:
			continue
		}

		line := tk.Span.Start.Line - 1
		col := tk.Span.Start.Col

		// A raw newline literal would produce a token crossing lines.
		if tk.Kind == lexer.KindChar && tk.Char == '\n' && tk.Span.Len() == 1 {
			continue
		}

		// Character tokens only span their value, include the quotes.
		length := tk.Span.Len()
		if tk.Kind == lexer.KindChar {
			col--
			length += 2
		}

		startDelta := col
		if line == prevLine {
			startDelta = col - prevCol
		}

		data = append(data,
			protocol.UInteger(line-prevLine),
			protocol.UInteger(startDelta),
			protocol.UInteger(length),
			tokenType,
			0,
		)

		prevLine, prevCol = line, col
	}

	return data
}

func endPosition(contents string) protocol.Position {
	line := strings.Count(contents, "\n")
	col := len(contents) - (strings.LastIndexByte(contents, '\n') + 1)

	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(col),
	}
}

func ptr[T any](v T) *T {
	return &v
}

func pos(p lexer.Position) protocol.Position {
	return protocol.Position{
		Line:      uint32(p.Line - 1),
		Character: uint32(p.Col),
	}
}
