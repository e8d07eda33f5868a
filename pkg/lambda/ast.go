package lambda

import (
	"fmt"
	"strings"
)

// Term represents a lambda calculus term.
// Variables are identified by the binder identity assigned at parse time,
// never by name.
type Term interface {
	String() string
}

// Var represents a variable usage.
type Var struct {
	ID int
}

func (v Var) String() string {
	return fmt.Sprintf("%d", v.ID)
}

// Abs represents an abstraction (lambda).
// A non-nil Param makes the abstraction a redex.
type Abs struct {
	ID    int
	Body  Term
	Param Term
}

func (a Abs) String() string {
	if a.Param == nil {
		return fmt.Sprintf("%d(%s)", a.ID, a.Body)
	}
	return fmt.Sprintf("%d(%s).(%s)", a.ID, a.Body, a.Param)
}

// App represents a name applied to arguments whose binder has not been
// resolved to an abstraction yet.
type App struct {
	ID   int
	Args []Term
}

func (a App) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d", a.ID)
	for _, arg := range a.Args {
		fmt.Fprintf(&sb, ".(%s)", arg)
	}
	return sb.String()
}

// Equal reports whether two terms are structurally identical.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case Var:
		y, ok := b.(Var)
		return ok && x.ID == y.ID
	case Abs:
		y, ok := b.(Abs)
		return ok && x.ID == y.ID && Equal(x.Body, y.Body) && Equal(x.Param, y.Param)
	case App:
		y, ok := b.(App)
		if !ok || x.ID != y.ID || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Binders lists the identity of every abstraction in t, in pre-order.
func Binders(t Term) []int {
	var ids []int
	var walk func(Term)
	walk = func(t Term) {
		switch v := t.(type) {
		case Abs:
			ids = append(ids, v.ID)
			walk(v.Body)
			if v.Param != nil {
				walk(v.Param)
			}
		case App:
			for _, arg := range v.Args {
				walk(arg)
			}
		}
	}
	walk(t)
	return ids
}
