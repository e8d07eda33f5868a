package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/styrix560/Blis/pkg/blis"
)

const usage = `==================================
| Blis - Lambda Calculus Reducer |
==================================

Warning:
    This is a research project and not meant for general use.
    Therefore, the parser is not built very defensively and may produce false positives.
    Proceed at your own risk.

Usage:
    blis [Options or Args]

Args:
    "path/to/file" - open the file and reduce the contained lambda calculus expression

Options:
    --help         - show this message

Environment:
    BLIS_MAX_STEPS - rewrite budget for the whole program (default 10000)
    BLIS_ARG_STEPS - rewrite budget per substituted argument (default 10)
    BLIS_INDENT    - print the result over several lines
    BLIS_STATS     - print reduction statistics to stderr
    BLIS_DEBUG     - trace desugaring, parsing and reduction to stderr
`

func main() {
	if len(os.Args) < 2 || os.Args[1] == "--help" {
		fmt.Print(usage)
		return
	}

	if os.Getenv("BLIS_DEBUG") != "" {
		// All keys share the one tracer of the selector.
		tracing.SetTraceSelector(tracing.SelectorForAdapter(gologadapter.GetAdapter()))
		tracing.Select("blis").SetTraceLevel(tracing.LevelDebug)
	}

	opts, err := blis.OptionsFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	input, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading file. Please check your path and try again")
		os.Exit(1)
	}

	res, err := blis.Run(string(input), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(res.Format(opts.Indent))

	if os.Getenv("BLIS_STATS") != "" {
		res.WriteStats(os.Stderr)
	}
}
