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

func Test_002_simple_reduction_Reduction(t *testing.T) {
	helper.CheckReduction(t, "002_simple_reduction", input, output)
}
