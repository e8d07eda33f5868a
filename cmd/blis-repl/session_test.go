package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/styrix560/Blis/pkg/blis"
)

func TestSessionDefinitions(t *testing.T) {
	s := newSession(blis.DefaultOptions())
	for _, line := range []string{
		"let zero f,x(x);",
		"let succ n,f,x(f.(n.f.x));",
	} {
		if _, err := s.define(line); err != nil {
			t.Fatalf("define(%q) failed: %v", line, err)
		}
	}
	out, err := s.eval("succ.(succ.zero)")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if out != "f(x(f.(f.(x))))" {
		t.Errorf("expected f(x(f.(f.(x)))), got %s", out)
	}
	if got := s.names(); !reflect.DeepEqual(got, []string{"zero", "succ"}) {
		t.Errorf("unexpected names %v", got)
	}
}

func TestSessionRedefinition(t *testing.T) {
	s := newSession(blis.DefaultOptions())
	if _, err := s.define("let v a(a).x;"); err != nil {
		t.Fatalf("define failed: %v", err)
	}
	if _, err := s.define("let v a(a).y;"); err != nil {
		t.Fatalf("redefine failed: %v", err)
	}
	if len(s.defs) != 1 {
		t.Fatalf("expected one definition, got %d", len(s.defs))
	}
	out, err := s.eval("v")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if out != "y" {
		t.Errorf("expected y, got %s", out)
	}
}

func TestSessionRejectsBadDefinitions(t *testing.T) {
	s := newSession(blis.DefaultOptions())
	for _, line := range []string{
		"let f x(x.x)",
		"let f g.x;",
		"let f x(x); f",
	} {
		if _, err := s.define(line); err == nil {
			t.Errorf("define(%q): expected error", line)
		}
	}
	if len(s.defs) != 0 {
		t.Errorf("rejected definitions were kept: %v", s.names())
	}
}

func TestSessionCompleteAndReset(t *testing.T) {
	s := newSession(blis.DefaultOptions())
	if _, err := s.define("let succ n(n); let second a(a);"); err != nil {
		t.Fatalf("define failed: %v", err)
	}
	got := s.complete("add.(su")
	if !reflect.DeepEqual(got, []string{"add.(succ"}) {
		t.Errorf("unexpected completions %v", got)
	}
	if !strings.Contains(s.listing(), "let second a(a);") {
		t.Errorf("listing misses definition:\n%s", s.listing())
	}
	s.reset()
	if len(s.complete("s")) != 0 {
		t.Error("completions left after reset")
	}
}

func TestIncomplete(t *testing.T) {
	if !incomplete("f(x") || incomplete("f(x)") || incomplete("x") {
		t.Error("incomplete misjudged parenthesis balance")
	}
	if !isDefinition("  let x y;") || isDefinition("letter") {
		t.Error("isDefinition misjudged the let keyword")
	}
}
