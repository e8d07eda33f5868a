/*
Package lambda parses the dot/paren notation of the untyped lambda calculus
into terms whose variables carry binder identities.

Definitions are written name(body) and may be applied right away with a
trailing .argument; a bound name is applied with name.arg1.arg2. Every binding
occurrence receives its own identity, even when two binders share a name, so
substitution never has to rename anything.

	a(a).b      the identity applied to the free variable b
	f(f.y).x(x) f is bound to x(x) and applied to y

Parsing is traced with key 'blis.lambda'.
*/
package lambda

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blis.lambda'.
func tracer() tracing.Trace {
	return tracing.Select("blis.lambda")
}
