package reduce

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleBeta
	RuleArgumentExhausted
	RuleSubstituteVar
	RuleSubstituteApp
)

func (k RuleKind) String() string {
	switch k {
	case RuleBeta:
		return "beta"
	case RuleArgumentExhausted:
		return "argument-exhausted"
	case RuleSubstituteVar:
		return "substitute-var"
	case RuleSubstituteApp:
		return "substitute-app"
	default:
		return "unknown"
	}
}

type TraceEvent struct {
	Step   uint64
	Rule   RuleKind
	Binder int
}

// EnableTrace records the first capacity rule applications.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = make([]TraceEvent, capacity)
	r.traceCap = uint64(capacity)
	r.traceIdx = 0
	r.traceOn = true
}

func (r *Reducer) DisableTrace() {
	r.traceOn = false
}

func (r *Reducer) TraceSnapshot() []TraceEvent {
	if !r.traceOn {
		return nil
	}
	count := r.traceIdx
	if count > r.traceCap {
		count = r.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, r.traceBuf[:count])
	return res
}

func (r *Reducer) recordTrace(rule RuleKind, binder int) {
	if !r.traceOn || r.traceCap == 0 {
		return
	}
	idx := r.traceIdx
	r.traceIdx++
	if idx >= r.traceCap {
		return
	}
	r.traceBuf[idx] = TraceEvent{Step: idx, Rule: rule, Binder: binder}
}
