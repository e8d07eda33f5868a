package reduce

import (
	"github.com/samber/lo"

	"github.com/styrix560/Blis/pkg/lambda"
)

const (
	// DefaultMaxSteps bounds a whole program run.
	DefaultMaxSteps = 10000
	// DefaultArgumentSteps bounds the eager normalization of a parameter
	// before it is substituted.
	DefaultArgumentSteps = 10
)

// Reducer rewrites terms toward normal form. The search is leftmost
// innermost-body-first: an abstraction simplifies its body before it fires,
// and an application only ever reduces its arguments.
//
// Binder identities stay unique across reduction: when a parameter is
// spliced into more than one place, every copy after the first gets fresh
// identities.
//
// A Reducer is not safe for concurrent use.
type Reducer struct {
	argSteps int
	next     int          // Next unused identity
	names    lambda.Names // Source names, extended for fresh identities

	// Stats
	ops        uint64 // Total reductions
	statBeta   uint64
	statArgs   uint64
	statArgsEx uint64
	statVarSub uint64
	statAppSub uint64

	traceBuf []TraceEvent
	traceCap uint64
	traceIdx uint64
	traceOn  bool
}

// Stats holds reduction statistics.
type Stats struct {
	TotalReductions          uint64
	BetaReductions           uint64
	ArgumentNormalizations   uint64
	ArgumentBudgetExhausted  uint64
	VariableSubstitutions    uint64
	ApplicationSubstitutions uint64
}

func NewReducer() *Reducer {
	return &Reducer{argSteps: DefaultArgumentSteps}
}

// SetArgumentBudget sets how many rewrites a parameter may take before it
// is substituted as it stands.
func (r *Reducer) SetArgumentBudget(steps int) {
	if steps < 0 {
		steps = 0
	}
	r.argSteps = steps
}

// SetNames hands the reducer the identity table of the parsed program.
// Fresh identities are appended to it under the name of the binder they
// copy.
func (r *Reducer) SetNames(names lambda.Names) {
	r.names = append(lambda.Names(nil), names...)
	if len(r.names) > r.next {
		r.next = len(r.names)
	}
}

// Names returns a copy of the identity table, including every identity
// allocated during reduction.
func (r *Reducer) Names() lambda.Names {
	return append(lambda.Names(nil), r.names...)
}

func (r *Reducer) GetStats() Stats {
	return Stats{
		TotalReductions:          r.ops,
		BetaReductions:           r.statBeta,
		ArgumentNormalizations:   r.statArgs,
		ArgumentBudgetExhausted:  r.statArgsEx,
		VariableSubstitutions:    r.statVarSub,
		ApplicationSubstitutions: r.statAppSub,
	}
}

// Normalize rewrites t until no step applies. It gives up with a
// *DivergenceError once maxSteps rewrites have not been enough.
func (r *Reducer) Normalize(t lambda.Term, maxSteps int) (lambda.Term, error) {
	r.reserve(t)
	res, steps, done := r.run(t, maxSteps)
	if !done {
		tracer().Errorf("no normal form after %d steps", steps)
		return nil, &DivergenceError{Steps: steps, Term: res}
	}
	tracer().Infof("normal form after %d steps", steps)
	return res, nil
}

// run is the Reducing -> Stuck | Exhausted state machine. It reports the
// last term, the number of rewrites done and whether the term got stuck.
func (r *Reducer) run(t lambda.Term, maxSteps int) (lambda.Term, int, bool) {
	for steps := 0; ; steps++ {
		if !reducible(t) {
			return t, steps, true
		}
		if steps >= maxSteps {
			return t, steps, false
		}
		t, _ = r.step(t)
		r.ops++
		tracer().Debugf("step %d: %s", steps+1, t)
	}
}

// reducible reports whether Step would rewrite t.
func reducible(t lambda.Term) bool {
	switch v := t.(type) {
	case lambda.Abs:
		return v.Param != nil || reducible(v.Body)
	case lambda.App:
		for _, arg := range v.Args {
			if reducible(arg) {
				return true
			}
		}
	}
	return false
}

// Step performs one rewrite. It returns the rewritten term and true, or t
// itself and false when t is in normal form.
func (r *Reducer) Step(t lambda.Term) (lambda.Term, bool) {
	r.reserve(t)
	return r.step(t)
}

func (r *Reducer) step(t lambda.Term) (lambda.Term, bool) {
	switch v := t.(type) {
	case lambda.Abs:
		if body, ok := r.step(v.Body); ok {
			return lambda.Abs{ID: v.ID, Body: body, Param: v.Param}, true
		}
		if v.Param == nil {
			return v, false
		}
		return r.beta(v), true

	case lambda.App:
		// The first argument that can reduce takes the step.
		for i, arg := range v.Args {
			next, ok := r.step(arg)
			if !ok {
				continue
			}
			args := append([]lambda.Term(nil), v.Args...)
			args[i] = next
			return lambda.App{ID: v.ID, Args: args}, true
		}
		return v, false

	default:
		return t, false
	}
}

// beta fires the redex a: the parameter is normalized first, under the
// argument budget, and then replaces every use of a's binder in the body.
func (r *Reducer) beta(a lambda.Abs) lambda.Term {
	r.statBeta++
	r.recordTrace(RuleBeta, a.ID)

	r.statArgs++
	param, steps, done := r.run(a.Param, r.argSteps)
	if !done {
		r.statArgsEx++
		r.recordTrace(RuleArgumentExhausted, a.ID)
		tracer().Debugf("parameter of %d still reducible after %d steps", a.ID, steps)
	}
	return r.substitute(a.Body, a.ID, &splice{value: param})
}

// splice hands out the value being substituted. The first use gets the
// value itself; later uses get copies with fresh binder identities.
type splice struct {
	value lambda.Term
	used  bool
}

func (r *Reducer) take(s *splice) lambda.Term {
	if !s.used {
		s.used = true
		return s.value
	}
	return r.freshen(s.value)
}

// substitute replaces binder id by the spliced value throughout t.
func (r *Reducer) substitute(t lambda.Term, id int, s *splice) lambda.Term {
	switch v := t.(type) {
	case lambda.Var:
		if v.ID != id {
			return v
		}
		r.statVarSub++
		r.recordTrace(RuleSubstituteVar, id)
		return r.take(s)

	case lambda.Abs:
		var param lambda.Term
		if v.Param != nil {
			param = r.substitute(v.Param, id, s)
		}
		if v.ID == id {
			// id is rebound here; the body refers to the inner binder.
			return lambda.Abs{ID: v.ID, Body: v.Body, Param: param}
		}
		return lambda.Abs{ID: v.ID, Body: r.substitute(v.Body, id, s), Param: param}

	case lambda.App:
		if v.ID != id {
			return lambda.App{ID: v.ID, Args: r.substituteArgs(v.Args, id, s)}
		}
		r.statAppSub++
		r.recordTrace(RuleSubstituteApp, id)
		value := r.take(s)
		return insertArguments(value, r.substituteArgs(v.Args, id, s))

	default:
		return t
	}
}

func (r *Reducer) substituteArgs(args []lambda.Term, id int, s *splice) []lambda.Term {
	return lo.Map(args, func(arg lambda.Term, _ int) lambda.Term {
		return r.substitute(arg, id, s)
	})
}

// freshen copies t, giving every abstraction in it a new identity.
// Variables bound outside t keep theirs.
func (r *Reducer) freshen(t lambda.Term) lambda.Term {
	renamed := make(map[int]int)
	var walk func(lambda.Term) lambda.Term
	walk = func(t lambda.Term) lambda.Term {
		switch v := t.(type) {
		case lambda.Var:
			if id, ok := renamed[v.ID]; ok {
				return lambda.Var{ID: id}
			}
			return v
		case lambda.Abs:
			var param lambda.Term
			if v.Param != nil {
				param = walk(v.Param)
			}
			id := r.fresh(v.ID)
			renamed[v.ID] = id
			return lambda.Abs{ID: id, Body: walk(v.Body), Param: param}
		case lambda.App:
			id := v.ID
			if n, ok := renamed[id]; ok {
				id = n
			}
			return lambda.App{ID: id, Args: lo.Map(v.Args, func(arg lambda.Term, _ int) lambda.Term {
				return walk(arg)
			})}
		default:
			return t
		}
	}
	return walk(t)
}

// fresh allocates an identity that shares the source name of old.
func (r *Reducer) fresh(old int) int {
	id := r.next
	r.next++
	if r.names != nil {
		for len(r.names) < id {
			r.names = append(r.names, r.names.Lookup(-1))
		}
		r.names = append(r.names, r.names.Lookup(old))
	}
	return id
}

// reserve moves the identity counter past every identity used in t.
func (r *Reducer) reserve(t lambda.Term) {
	if n := maxID(t) + 1; n > r.next {
		r.next = n
	}
}

func maxID(t lambda.Term) int {
	switch v := t.(type) {
	case lambda.Var:
		return v.ID
	case lambda.Abs:
		m := max(v.ID, maxID(v.Body))
		if v.Param != nil {
			m = max(m, maxID(v.Param))
		}
		return m
	case lambda.App:
		m := v.ID
		for _, arg := range v.Args {
			m = max(m, maxID(arg))
		}
		return m
	default:
		return -1
	}
}

// insertArguments applies t to args. Arguments fill the open parameter
// slots of nested abstractions in order; whatever is left is appended to
// the application at the bottom, or turns a variable into one.
func insertArguments(t lambda.Term, args []lambda.Term) lambda.Term {
	if len(args) == 0 {
		return t
	}
	switch v := t.(type) {
	case lambda.Var:
		return lambda.App{ID: v.ID, Args: args}
	case lambda.Abs:
		if v.Param == nil {
			return lambda.Abs{ID: v.ID, Body: insertArguments(v.Body, args[1:]), Param: args[0]}
		}
		return lambda.Abs{ID: v.ID, Body: insertArguments(v.Body, args), Param: v.Param}
	case lambda.App:
		merged := make([]lambda.Term, 0, len(v.Args)+len(args))
		merged = append(merged, v.Args...)
		merged = append(merged, args...)
		return lambda.App{ID: v.ID, Args: merged}
	default:
		return t
	}
}

// Normalize reduces t with a fresh Reducer using the default argument
// budget.
func Normalize(t lambda.Term, maxSteps int) (lambda.Term, error) {
	return NewReducer().Normalize(t, maxSteps)
}
