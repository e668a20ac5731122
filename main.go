package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pipe01/bearbones/internal/entry"
	"github.com/pipe01/bearbones/internal/printer"
	"github.com/pipe01/bearbones/internal/workspace"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	showTokens  = kingpin.Flag("tokens", "Print the token stream of each file").Short('t').Bool()
	requireMain = kingpin.Flag("require-main", "Fail if a file doesn't declare a main function").Bool()
	watch       = kingpin.Flag("watch", "Watch files for changes and lex them again").Short('w').Bool()
	verbose     = kingpin.Flag("verbose", "Increase logging verbosity, can be repeated").Short('v').Counter()
	color       = kingpin.Flag("color", "When to color diagnostics").Default("auto").Enum("auto", "always", "never")
	files       = kingpin.Arg("files", "List of files to lex").Required().ExistingFiles()

	log    = commonlog.GetLogger("bearbones.cli")
	styles printer.Styles
)

func main() {
	kingpin.Parse()

	commonlog.Configure(*verbose, nil)

	// Diagnostics go to stderr, so color support is detected there.
	renderer := lipgloss.NewRenderer(os.Stderr)

	switch *color {
	case "never":
		styles = printer.PlainStyles()
	case "always":
		renderer.SetColorProfile(termenv.ANSI256)
		styles = printer.DefaultStyles(renderer)
	default:
		styles = printer.DefaultStyles(renderer)
	}

	wd, _ := os.Getwd()
	ws := workspace.New(wd)

	if *watch {
		err := watchFiles(ws)
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	} else {
		err := lexAll(ws)
		if err != nil {
			kingpin.Fatalf("failed to lex files: %s", err)
		}
	}
}

func lexAll(ws *workspace.Workspace) error {
	for _, fname := range *files {
		err := lexFile(ws, fname)
		if err != nil {
			return err
		}
	}

	return nil
}

func lexFile(ws *workspace.Workspace, fname string) error {
	tks, err := ws.Load(fname)
	if err != nil {
		return reportError(ws, fname, err)
	}

	log.Debugf("lexed %q into %d tokens", fname, len(tks))

	if *requireMain {
		if _, err := entry.Find(tks); err != nil {
			return fmt.Errorf("%s: %w", fname, err)
		}
	}

	if *showTokens {
		if len(*files) > 1 {
			fmt.Printf("%s:\n", filepath.Base(fname))
		}
		printer.Tokens(os.Stdout, tks)
	}

	return nil
}

func watchFiles(ws *workspace.Workspace) error {
	watcher, err := NewWatcher(ws)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, f := range *files {
		if err := lexFile(ws, f); err != nil && !errors.Is(err, errLexFailed) {
			log.Errorf("%s", err)
		}

		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Noticef("watching files for changes...")

	<-ch
	return nil
}
