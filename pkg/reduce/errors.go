package reduce

import (
	"fmt"

	"github.com/styrix560/Blis/pkg/lambda"
)

// DivergenceError is returned when a term is still reducible after the
// step budget ran out. Term holds the last term reached.
type DivergenceError struct {
	Steps int
	Term  lambda.Term
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("reduction did not terminate after %d steps", e.Steps)
}
