package lambda

import "fmt"

// SyntaxError reports malformed source text: unbalanced parentheses,
// empty expressions, a malformed let or a call of an unknown name.
type SyntaxError struct {
	Msg        string
	Text       string
	Suggestion string
}

func (e *SyntaxError) Error() string {
	msg := "syntax error: " + e.Msg
	if e.Text != "" {
		msg += fmt.Sprintf(" in %q", e.Text)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// BindingError reports a binding whose name is already visible in the
// current scope.
type BindingError struct {
	Name string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("binding error: that name is already defined: %s", e.Name)
}

func syntaxErrorf(text string, format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Text: text}
}
