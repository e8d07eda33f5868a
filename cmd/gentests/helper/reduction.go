package helper

import (
	"errors"
	"strings"
	"testing"

	"github.com/styrix560/Blis/pkg/blis"
	"github.com/styrix560/Blis/pkg/lambda"
	"github.com/styrix560/Blis/pkg/reduce"
)

// CheckReduction runs inputStr and compares the flat rendering of its normal
// form with outputStr. An expected output of "error: syntax", "error:
// binding" or "error: divergence" asks for that failure instead.
func CheckReduction(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	expected := strings.TrimSpace(outputStr)

	res, err := blis.Run(inputStr, blis.DefaultOptions())
	if kind, ok := strings.CutPrefix(expected, "error:"); ok {
		kind = strings.TrimSpace(kind)
		if err == nil {
			t.Fatalf("%s: expected %s error, got %s", testName, kind, res.Format(false))
		}
		if !errorKind(err, kind) {
			t.Fatalf("%s: expected %s error, got %v", testName, kind, err)
		}
		t.Logf("%s: %v", testName, err)
		return
	}
	if err != nil {
		t.Fatalf("%s: %v", testName, err)
	}

	if actual := res.Format(false); actual != expected {
		t.Errorf("Mismatch in %s:\nInput: %s\nExpected: %s\nActual:   %s", testName, inputStr, expected, actual)
	}
	t.Logf("%s: %d reductions in %v", testName, res.Stats.TotalReductions, res.Elapsed)
}

func errorKind(err error, kind string) bool {
	switch kind {
	case "syntax":
		var se *lambda.SyntaxError
		return errors.As(err, &se)
	case "binding":
		var be *lambda.BindingError
		return errors.As(err, &be)
	case "divergence":
		var de *reduce.DivergenceError
		return errors.As(err, &de)
	default:
		return false
	}
}
