package blis

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/styrix560/Blis/pkg/lambda"
	"github.com/styrix560/Blis/pkg/reduce"
)

const church = `
let zero f,x(x);
let succ n,f,x(
	f.(n.f.x)
);
`

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"simple reduction", "f(f.y).x(x)", "y"},
		{"not true", "true(not(not.true).b(b.f.t)).c(d(c))", "f"},
		{"church successor", church + "succ.(succ.zero)", "f(x(f.(f.(x))))"},
		{
			"church addition",
			church + `
			let add m,n(f,x((m.f).(n.f.x)));
			let three succ.(succ.(succ.zero));
			let two succ.(succ.zero);
			add.three.two`,
			"f(x(f.(f.(f.(f.(f.(x)))))))",
		},
		{"free variable", "hi", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.source, DefaultOptions())
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if got := res.Format(false); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	omega := `
	let f x(x.x);
	let omega f.f
	omega
	`
	_, err := Run(omega, DefaultOptions())
	var se *lambda.SyntaxError
	if !errors.As(err, &se) || !strings.HasPrefix(err.Error(), "compile:") {
		t.Errorf("malformed let: expected compile SyntaxError, got %v", err)
	}

	_, err = Run("a(a(a))", DefaultOptions())
	var be *lambda.BindingError
	if !errors.As(err, &be) || !strings.HasPrefix(err.Error(), "parse:") {
		t.Errorf("duplicate binding: expected parse BindingError, got %v", err)
	}

	opts := DefaultOptions()
	opts.MaxSteps = 50
	_, err = Run("let f x(x.x); f.f", opts)
	var de *reduce.DivergenceError
	if !errors.As(err, &de) || !strings.HasPrefix(err.Error(), "reduce:") {
		t.Errorf("self-application: expected reduce DivergenceError, got %v", err)
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("BLIS_MAX_STEPS", "42")
	t.Setenv("BLIS_ARG_STEPS", "3")
	t.Setenv("BLIS_INDENT", "1")
	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("OptionsFromEnv failed: %v", err)
	}
	want := Options{MaxSteps: 42, ArgumentSteps: 3, Indent: true}
	if opts != want {
		t.Errorf("expected %+v, got %+v", want, opts)
	}

	t.Setenv("BLIS_MAX_STEPS", "lots")
	if _, err := OptionsFromEnv(); err == nil {
		t.Error("expected error for malformed BLIS_MAX_STEPS")
	}
	t.Setenv("BLIS_MAX_STEPS", "-1")
	if _, err := OptionsFromEnv(); err == nil {
		t.Error("expected error for negative BLIS_MAX_STEPS")
	}
}

func TestResultFormatAndStats(t *testing.T) {
	res, err := Run("a(a).5", DefaultOptions())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := res.Format(true); got != "5" {
		t.Errorf("expected 5, got %q", got)
	}
	var buf bytes.Buffer
	res.WriteStats(&buf)
	if !strings.Contains(buf.String(), "Total Reductions: 1") {
		t.Errorf("missing total in stats output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "Beta Reductions:") {
		t.Errorf("missing breakdown in stats output:\n%s", buf.String())
	}
}
