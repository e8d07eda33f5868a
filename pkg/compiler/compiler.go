/*
Package compiler desugars Blis source into the core notation the parser
reads.

Two forms are rewritten. A program may start with definitions

	let name body;

which wrap the rest of the program as name(rest).(body), and a definition
may take several parameters at once, n,f,x(body), which expands to
n(f(x(body))).

Desugaring is traced with key 'blis.compiler'.
*/
package compiler

import (
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/tracing"

	"github.com/styrix560/Blis/pkg/lambda"
)

// tracer traces with key 'blis.compiler'.
func tracer() tracing.Trace {
	return tracing.Select("blis.compiler")
}

// Definition is one leading let of a program.
type Definition struct {
	Name string
	Body string
}

// Compile rewrites the let definitions and comma parameter lists of text.
// The result has no whitespace.
func Compile(text string) (string, error) {
	defs, rest, err := SplitDefinitions(text)
	if err != nil {
		return "", err
	}
	out := Wrap(defs, rest)
	out, err = ExpandParameters(lambda.RemoveWhitespace(out))
	if err != nil {
		return "", err
	}
	tracer().Debugf("compiled %d definitions: %s", len(defs), out)
	return out, nil
}

// SplitDefinitions peels the leading let definitions off text and returns
// them in source order together with the remaining expression.
func SplitDefinitions(text string) ([]Definition, string, error) {
	var defs []Definition
	for {
		trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
		if !isLet(trimmed) {
			return defs, text, nil
		}
		end := strings.IndexByte(trimmed, ';')
		if end < 0 {
			return nil, "", &lambda.SyntaxError{
				Msg:  "malformed let: expected ';' after definition",
				Text: firstLine(trimmed),
			}
		}
		fields := strings.Fields(trimmed[:end])
		if len(fields) < 3 {
			return nil, "", &lambda.SyntaxError{
				Msg:  "malformed let: expected 'let <name> <body>;'",
				Text: trimmed[:end+1],
			}
		}
		defs = append(defs, Definition{
			Name: fields[1],
			Body: strings.Join(fields[2:], ""),
		})
		text = trimmed[end+1:]
	}
}

func isLet(text string) bool {
	if !strings.HasPrefix(text, "let") || len(text) == 3 {
		return false
	}
	return unicode.IsSpace(rune(text[3]))
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

// Wrap binds defs around expr, the first definition outermost. Bodies are
// parenthesised so that an application stays a single argument.
func Wrap(defs []Definition, expr string) string {
	out := expr
	for i := len(defs) - 1; i >= 0; i-- {
		out = defs[i].Name + "(" + out + ").(" + defs[i].Body + ")"
	}
	return out
}

// ExpandParameters turns every parameter list n1,...,nk(body) of text into
// nested definitions n1(...nk(body)...). Text must not contain whitespace.
func ExpandParameters(text string) (string, error) {
	for {
		comma := strings.IndexByte(text, ',')
		if comma < 0 {
			return text, nil
		}
		start := strings.LastIndexAny(text[:comma], "().") + 1
		open := strings.IndexAny(text[comma:], "().")
		if open < 0 || text[comma+open] != '(' {
			return "", &lambda.SyntaxError{
				Msg:  "parameter list must be followed by '('",
				Text: text[start:],
			}
		}
		open += comma
		params := strings.Split(text[start:open], ",")
		for _, p := range params {
			if p == "" {
				return "", &lambda.SyntaxError{Msg: "empty parameter", Text: text[start:open]}
			}
		}
		end, err := lambda.FindBlockEnd(text[open:])
		if err != nil {
			return "", err
		}
		end += open

		var sb strings.Builder
		sb.WriteString(text[:start])
		for _, p := range params {
			sb.WriteString(p)
			sb.WriteByte('(')
		}
		sb.WriteString(text[open+1 : end])
		sb.WriteString(strings.Repeat(")", len(params)))
		sb.WriteString(text[end+1:])
		text = sb.String()
	}
}
