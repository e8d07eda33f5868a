/*
Package reduce normalizes lambda terms by repeated substitution.

Every binder carries a unique identity, so substitution replaces identities
directly and never renames. A parameter is normalized eagerly, within a
small budget of its own, before it replaces its variable.

Reduction is traced with key 'blis.reduce'.
*/
package reduce

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blis.reduce'.
func tracer() tracing.Trace {
	return tracing.Select("blis.reduce")
}
