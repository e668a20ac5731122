package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pipe01/bearbones/internal/lexer"
)

type file struct {
	source []byte
	tokens []lexer.Token
}

// Workspace is safe for concurrent use.
type Workspace struct {
	rootPath string

	mu         sync.Mutex
	lexedFiles map[string]*file
}

func New(rootPath string) *Workspace {
	return &Workspace{
		rootPath:   rootPath,
		lexedFiles: make(map[string]*file),
	}
}

// Load reads and lexes a file relative to the workspace root. Successful
// results are cached until Invalidate is called.
func (w *Workspace) Load(relPath string) ([]lexer.Token, error) {
	fullPath := w.fullPath(relPath)

	w.mu.Lock()
	f, ok := w.lexedFiles[fullPath]
	w.mu.Unlock()

	if ok {
		return f.tokens, nil
	}

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return w.LoadWithContents(relPath, bytes)
}

// LoadWithContents lexes contents as if it were the file at relPath,
// replacing any cached result for it.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) ([]lexer.Token, error) {
	fullPath := w.fullPath(relPath)

	tks, err := lexer.Lex(contents)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		delete(w.lexedFiles, fullPath)
		return nil, fmt.Errorf("lex file %q: %w", relPath, err)
	}

	w.lexedFiles[fullPath] = &file{
		source: contents,
		tokens: tks,
	}
	return tks, nil
}

// Source returns the contents last lexed successfully for relPath.
func (w *Workspace) Source(relPath string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, ok := w.lexedFiles[w.fullPath(relPath)]
	if !ok {
		return nil, false
	}
	return f.source, true
}

func (w *Workspace) Invalidate(relPath string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.lexedFiles, w.fullPath(relPath))
}

func (w *Workspace) fullPath(relPath string) string {
	if filepath.IsAbs(relPath) {
		return filepath.Clean(relPath)
	}
	return filepath.Join(w.rootPath, relPath)
}
