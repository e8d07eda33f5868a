package gentests

import (
	_ "embed"
	"testing"

	"github.com/styrix560/Blis/cmd/gentests/helper"
)

//go:embed input.blis
var input string

//go:embed output.txt
var output string

func Test_003_free_variable_Reduction(t *testing.T) {
	helper.CheckReduction(t, "003_free_variable", input, output)
}
