package lambda

import (
	"strings"

	"github.com/samber/lo"
)

// Format renders t on one line using the source names:
// name(body).param for abstractions and name.(arg).(arg) for applications.
func Format(t Term, names Names) string {
	switch v := t.(type) {
	case Var:
		return names.Lookup(v.ID)
	case Abs:
		s := names.Lookup(v.ID) + "(" + Format(v.Body, names) + ")"
		if v.Param != nil {
			s += "." + Format(v.Param, names)
		}
		return s
	case App:
		args := lo.Map(v.Args, func(arg Term, _ int) string {
			return ".(" + Format(arg, names) + ")"
		})
		return names.Lookup(v.ID) + strings.Join(args, "")
	default:
		return "<nil>"
	}
}

// FormatIndented renders t over several lines, indenting one space per
// nesting level.
func FormatIndented(t Term, names Names) string {
	var sb strings.Builder
	formatIndented(&sb, t, names, 0, true)
	return sb.String()
}

func formatIndented(sb *strings.Builder, t Term, names Names, depth int, onNewline bool) {
	indent := strings.Repeat(" ", depth)
	if onNewline {
		sb.WriteString(indent)
	}
	switch v := t.(type) {
	case Var:
		sb.WriteString(names.Lookup(v.ID))
	case Abs:
		sb.WriteString(names.Lookup(v.ID))
		sb.WriteString("(\n")
		formatIndented(sb, v.Body, names, depth+1, true)
		sb.WriteString("\n" + indent + ")")
		if v.Param != nil {
			sb.WriteString("\n" + indent + ".")
			formatIndented(sb, v.Param, names, depth+1, false)
		}
	case App:
		sb.WriteString(names.Lookup(v.ID))
		for _, arg := range v.Args {
			sb.WriteString("\n" + indent + ".(")
			formatIndented(sb, arg, names, depth+1, false)
			sb.WriteString(")")
		}
	default:
		sb.WriteString("<nil>")
	}
}
