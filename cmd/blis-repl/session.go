package main

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/styrix560/Blis/pkg/blis"
	"github.com/styrix560/Blis/pkg/compiler"
	"github.com/styrix560/Blis/pkg/lambda"
)

// session remembers the let definitions entered so far and evaluates
// expressions underneath them.
type session struct {
	defs []compiler.Definition
	opts blis.Options
}

func newSession(opts blis.Options) *session {
	return &session{opts: opts}
}

func (s *session) source(expr string) string {
	lines := lo.Map(s.defs, func(d compiler.Definition, _ int) string {
		return "let " + d.Name + " " + d.Body + ";"
	})
	return strings.Join(append(lines, expr), "\n")
}

// define validates the let definitions of line and remembers them. A
// definition of a known name replaces the old one in place.
func (s *session) define(line string) ([]string, error) {
	defs, rest, err := compiler.SplitDefinitions(line)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("not a definition: %s", strings.TrimSpace(line))
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("unexpected text after definition: %s", strings.TrimSpace(rest))
	}

	next := append([]compiler.Definition(nil), s.defs...)
	for _, d := range defs {
		_, i, found := lo.FindIndexOf(next, func(old compiler.Definition) bool { return old.Name == d.Name })
		if found {
			next[i] = d
		} else {
			next = append(next, d)
		}
	}

	// Every definition must parse underneath the ones before it.
	last := defs[len(defs)-1].Name
	candidate := &session{defs: next}
	text, err := compiler.Compile(candidate.source(last))
	if err != nil {
		return nil, err
	}
	if _, _, err := lambda.Parse(text); err != nil {
		return nil, err
	}
	s.defs = next
	return lo.Map(defs, func(d compiler.Definition, _ int) string { return d.Name }), nil
}

func (s *session) eval(expr string) (string, error) {
	res, err := blis.Run(s.source(expr), s.opts)
	if err != nil {
		return "", err
	}
	return res.Format(s.opts.Indent), nil
}

func (s *session) names() []string {
	return lo.Map(s.defs, func(d compiler.Definition, _ int) string { return d.Name })
}

func (s *session) listing() string {
	var sb strings.Builder
	for _, d := range s.defs {
		fmt.Fprintf(&sb, "let %s %s;\n", d.Name, d.Body)
	}
	return sb.String()
}

func (s *session) reset() {
	s.defs = nil
}

// complete offers the remembered names that start with the last word of
// line.
func (s *session) complete(line string) []string {
	start := strings.LastIndexAny(line, "().,; \t") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}
	matches := lo.Filter(s.names(), func(name string, _ int) bool {
		return strings.HasPrefix(name, word)
	})
	return lo.Map(matches, func(name string, _ int) string { return prefix + name })
}

// isDefinition reports whether line starts with the let keyword.
func isDefinition(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && fields[0] == "let"
}

// incomplete reports whether text still has a '(' waiting to be closed.
func incomplete(text string) bool {
	return strings.Count(text, "(") > strings.Count(text, ")")
}
