package lambda

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type parseType int

const (
	parseVariable parseType = iota
	parseAbstraction
	parseApplication
)

func (t parseType) String() string {
	switch t {
	case parseVariable:
		return "Variable"
	case parseAbstraction:
		return "Abstraction"
	case parseApplication:
		return "Application"
	default:
		return "Unknown"
	}
}

// argQueue holds arguments handed down from an enclosing call site to the
// abstractions and applications inside the text being parsed.
type argQueue struct {
	args []Term
}

func (q *argQueue) pushFront(args ...Term) {
	if len(args) == 0 {
		return
	}
	q.args = append(append([]Term(nil), args...), q.args...)
}

func (q *argQueue) popFront() Term {
	if len(q.args) == 0 {
		return nil
	}
	arg := q.args[0]
	q.args = q.args[1:]
	return arg
}

func (q *argQueue) takeAll() []Term {
	args := q.args
	q.args = nil
	return args
}

type Parser struct {
	input  string
	binder *Binder
}

// NewParser prepares input for parsing. All whitespace is insignificant and
// removed up front.
func NewParser(input string) *Parser {
	return &Parser{
		input:  RemoveWhitespace(input),
		binder: NewBinder(),
	}
}

func (p *Parser) Parse() (Term, error) {
	if p.input == "" {
		return nil, syntaxErrorf("", "empty program")
	}
	return p.parse(p.input, &argQueue{})
}

// Names returns the identity table built so far.
func (p *Parser) Names() Names {
	return p.binder.Names()
}

// RemoveWhitespace drops every whitespace character from text.
func RemoveWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// FindBlockEnd returns the index of the ')' matching the first '(' in text.
func FindBlockEnd(text string) (int, error) {
	depth := 0
	for i, ch := range text {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return 0, syntaxErrorf(text, "unbalanced ')'")
			}
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, syntaxErrorf(text, "missing ')'")
}

func classify(text string) parseType {
	callStart := strings.IndexByte(text, '.')
	defStart := strings.IndexByte(text, '(')
	if callStart < 0 && defStart < 0 {
		return parseVariable
	}
	if defStart >= 0 && (callStart < 0 || defStart < callStart) {
		return parseAbstraction
	}
	return parseApplication
}

func checkName(name, text string) error {
	if name == "" {
		return syntaxErrorf(text, "missing name")
	}
	if strings.ContainsAny(name, "(),;") {
		return syntaxErrorf(text, "invalid name %q", name)
	}
	return nil
}

func (p *Parser) parse(text string, pending *argQueue) (Term, error) {
	if text == "" {
		return nil, syntaxErrorf(text, "empty expression")
	}
	if text[0] == '(' {
		end, err := FindBlockEnd(text)
		if err != nil {
			return nil, err
		}
		if end < len(text)-1 {
			args, err := p.parseArguments(text[end+1:])
			if err != nil {
				return nil, err
			}
			pending.pushFront(args...)
		}
		return p.parse(text[1:end], pending)
	}

	kind := classify(text)
	tracer().P("depth", p.binder.Depth()).Debugf("%s: %s", text, kind)

	switch kind {
	case parseVariable:
		return p.parseVariable(text, pending)
	case parseAbstraction:
		return p.parseAbstraction(text, pending)
	default:
		return p.parseApplication(text, pending)
	}
}

func (p *Parser) parseVariable(text string, pending *argQueue) (Term, error) {
	if err := checkName(text, text); err != nil {
		return nil, err
	}
	id, ok := p.binder.FindIndex(text)
	if !ok {
		id = p.binder.Free(text)
	}
	if args := pending.takeAll(); len(args) > 0 {
		return App{ID: id, Args: args}, nil
	}
	return Var{ID: id}, nil
}

func (p *Parser) parseAbstraction(text string, pending *argQueue) (Term, error) {
	nameEnd := strings.IndexByte(text, '(')
	name := text[:nameEnd]
	if err := checkName(name, text); err != nil {
		return nil, err
	}
	if p.binder.Visible(name) {
		return nil, &BindingError{Name: name}
	}

	bodyEnd, err := FindBlockEnd(text)
	if err != nil {
		return nil, err
	}

	// The parameter is resolved in the enclosing scope, before the new
	// binding becomes visible.
	var param Term
	if bodyEnd+1 < len(text) {
		args, err := p.parseArguments(text[bodyEnd+1:])
		if err != nil {
			return nil, err
		}
		param = args[0]
		pending.pushFront(args[1:]...)
	} else {
		param = pending.popFront()
	}

	id := p.binder.NewBinding(name)
	body, err := p.parse(text[nameEnd+1:bodyEnd], pending)
	p.binder.PopBinding()
	if err != nil {
		return nil, err
	}
	return Abs{ID: id, Body: body, Param: param}, nil
}

func (p *Parser) parseApplication(text string, pending *argQueue) (Term, error) {
	nameEnd := strings.IndexByte(text, '.')
	name := text[:nameEnd]
	if err := checkName(name, text); err != nil {
		return nil, err
	}
	args, err := p.parseArguments(text[nameEnd:])
	if err != nil {
		return nil, err
	}
	id, ok := p.binder.FindIndex(name)
	if !ok {
		e := syntaxErrorf(text, "unknown function name: %s", name)
		e.Suggestion = suggest(name, p.binder.VisibleNames())
		return nil, e
	}
	args = append(args, pending.takeAll()...)
	return App{ID: id, Args: args}, nil
}

// parseArguments splits ".a.(b.c).d(e)" into its argument spans. A span
// ends at the next '.' unless a '(' comes first, in which case it runs
// through the matching ')'.
func (p *Parser) parseArguments(text string) ([]Term, error) {
	var args []Term
	whole := text
	for text != "" {
		if text[0] != '.' {
			return nil, syntaxErrorf(text, "expected '.' before argument")
		}
		text = text[1:]
		if text == "" {
			return nil, syntaxErrorf(whole, "missing argument after '.'")
		}

		callEnd := strings.IndexByte(text, '.')
		blockStart := strings.IndexByte(text, '(')
		var argEnd int
		switch {
		case blockStart >= 0 && (callEnd < 0 || blockStart < callEnd):
			end, err := FindBlockEnd(text)
			if err != nil {
				return nil, err
			}
			argEnd = end + 1
		case callEnd >= 0:
			argEnd = callEnd
		default:
			argEnd = len(text)
		}

		arg, err := p.parse(text[:argEnd], &argQueue{})
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		text = text[argEnd:]
	}
	return args, nil
}

// suggest picks the visible name closest to an unknown one.
func suggest(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		// the unknown name may be a visible name with extra characters
		for i, c := range candidates {
			if d := fuzzy.RankMatchFold(c, name); d >= 0 {
				ranks = append(ranks, fuzzy.Rank{Source: c, Target: c, Distance: d, OriginalIndex: i})
			}
		}
	}
	if len(ranks) == 0 {
		return ""
	}
	sort.Stable(ranks)
	return ranks[0].Target
}

// Parse parses a desugared program. It returns the term together with the
// name of every identity it mentions.
func Parse(input string) (Term, Names, error) {
	p := NewParser(input)
	term, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	return term, p.Names(), nil
}
