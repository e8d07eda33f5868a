package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/peterh/liner"

	"github.com/styrix560/Blis/pkg/blis"
)

const (
	historyFile = ".blis_history"
	promptMain  = "blis> "
	promptCont  = "....> "
)

const help = `Enter an expression to reduce it, or a definition

    let name body;

to use name in every later expression.

Commands:
    :defs    list the definitions
    :reset   forget all definitions
    :indent  toggle multi-line output
    :help    show this message
    :quit    leave (Ctrl+D works too)
`

func main() {
	if os.Getenv("BLIS_DEBUG") != "" {
		tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
		tracing.Select("blis").SetTraceLevel(tracing.LevelDebug)
	}

	opts, err := blis.OptionsFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(repl(newSession(opts)))
}

func repl(s *session) int {
	fmt.Println("Blis - Lambda Calculus Reducer. Type :help for help.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		input, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return 0
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		if strings.HasPrefix(input, ":") {
			if quit := command(s, input); quit {
				return 0
			}
			continue
		}

		if isDefinition(input) {
			names, err := s.define(input)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("defined %s\n", strings.Join(names, ", "))
			continue
		}

		out, err := s.eval(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		fmt.Println(out)
	}
}

// readInput reads one entry, continuing over several lines while a
// parenthesis is open. Ctrl+C drops the entry.
func readInput(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// command runs a ':' command and reports whether the session should end.
func command(s *session, input string) bool {
	switch strings.ToLower(input) {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(help)
	case ":defs":
		if len(s.defs) == 0 {
			fmt.Println("no definitions")
		} else {
			fmt.Print(s.listing())
		}
	case ":reset":
		s.reset()
		fmt.Println("definitions cleared")
	case ":indent":
		s.opts.Indent = !s.opts.Indent
		fmt.Printf("indented output: %v\n", s.opts.Indent)
	default:
		fmt.Printf("unknown command %s. Type :help for help.\n", input)
	}
	return false
}
