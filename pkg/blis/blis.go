// Package blis runs a Blis program end to end: desugar, parse, reduce.
package blis

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/styrix560/Blis/pkg/compiler"
	"github.com/styrix560/Blis/pkg/lambda"
	"github.com/styrix560/Blis/pkg/reduce"
)

// Options control a run.
type Options struct {
	MaxSteps      int  // Rewrites allowed for the whole program
	ArgumentSteps int  // Rewrites allowed per parameter before substitution
	Indent        bool // Render the result over several lines
}

func DefaultOptions() Options {
	return Options{
		MaxSteps:      reduce.DefaultMaxSteps,
		ArgumentSteps: reduce.DefaultArgumentSteps,
	}
}

// OptionsFromEnv starts from DefaultOptions and applies BLIS_MAX_STEPS,
// BLIS_ARG_STEPS and BLIS_INDENT when they are set.
func OptionsFromEnv() (Options, error) {
	opts := DefaultOptions()
	if err := envInt("BLIS_MAX_STEPS", &opts.MaxSteps); err != nil {
		return opts, err
	}
	if err := envInt("BLIS_ARG_STEPS", &opts.ArgumentSteps); err != nil {
		return opts, err
	}
	if s := os.Getenv("BLIS_INDENT"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return opts, fmt.Errorf("BLIS_INDENT: %w", err)
		}
		opts.Indent = b
	}
	return opts, nil
}

func envInt(key string, dst *int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return fmt.Errorf("%s: must not be negative, got %d", key, n)
	}
	*dst = n
	return nil
}

// Result is the normal form of a program.
type Result struct {
	Term    lambda.Term
	Names   lambda.Names
	Stats   reduce.Stats
	Elapsed time.Duration
}

// Format renders the normal form with its source names.
func (r *Result) Format(indent bool) string {
	if indent {
		return lambda.FormatIndented(r.Term, r.Names)
	}
	return lambda.Format(r.Term, r.Names)
}

// Run desugars, parses and normalizes source. Errors carry the stage that
// failed and wrap the typed errors of packages lambda and reduce.
func Run(source string, opts Options) (*Result, error) {
	text, err := compiler.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	term, names, err := lambda.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	r := reduce.NewReducer()
	r.SetArgumentBudget(opts.ArgumentSteps)
	r.SetNames(names)
	start := time.Now()
	res, err := r.Normalize(term, opts.MaxSteps)
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	return &Result{
		Term:    res,
		Names:   r.Names(),
		Stats:   r.GetStats(),
		Elapsed: elapsed,
	}, nil
}

// WriteStats writes the reduction statistics of r to w.
func (r *Result) WriteStats(w io.Writer) {
	seconds := r.Elapsed.Seconds()
	line := func(label string, n uint64) {
		fmt.Fprintf(w, "  %-26s %6d", label+":", n)
		if seconds > 0 {
			fmt.Fprintf(w, " (%.2f ops/sec)", float64(n)/seconds)
		}
		fmt.Fprintf(w, "\n")
	}

	fmt.Fprintf(w, "\nStats:\n")
	fmt.Fprintf(w, "Time: %v\n", r.Elapsed)
	fmt.Fprintf(w, "Total Reductions: %d", r.Stats.TotalReductions)
	if seconds > 0 {
		fmt.Fprintf(w, " (%.2f ops/sec)", float64(r.Stats.TotalReductions)/seconds)
	}
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "\nBreakdown:\n")
	line("Beta Reductions", r.Stats.BetaReductions)
	line("Argument Normalizations", r.Stats.ArgumentNormalizations)
	line("Variable Substitutions", r.Stats.VariableSubstitutions)
	line("Application Substitutions", r.Stats.ApplicationSubstitutions)
	if r.Stats.ArgumentBudgetExhausted > 0 {
		line("Argument Budget Exhausted", r.Stats.ArgumentBudgetExhausted)
	}
}
