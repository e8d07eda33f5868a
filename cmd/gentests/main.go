package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/styrix560/Blis/pkg/compiler"
	"github.com/styrix560/Blis/pkg/lambda"
)

type TestCase struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

type caseFile struct {
	Cases []TestCase `yaml:"cases"`
}

const testTemplate = `package gentests

import (
	_ "embed"
	"testing"

	"github.com/styrix560/Blis/cmd/gentests/helper"
)

//go:embed input.blis
var input string

//go:embed output.txt
var output string

func Test_%s_Reduction(t *testing.T) {
	helper.CheckReduction(t, "%s", input, output)
}
`

func main() {
	casesPath := "cmd/gentests/cases.yaml"
	if len(os.Args) > 1 {
		casesPath = os.Args[1]
	}
	data, err := os.ReadFile(casesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading cases: %v\n", err)
		os.Exit(1)
	}
	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding %s: %v\n", casesPath, err)
		os.Exit(1)
	}

	baseDir := "cmd/gentests/generated"
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", baseDir, err)
		os.Exit(1)
	}

	generated := 0
	for _, tc := range cf.Cases {
		// Programs expected to fail are written as they are.
		if !strings.HasPrefix(tc.Output, "error:") {
			text, err := compiler.Compile(tc.Input)
			if err == nil {
				_, _, err = lambda.Parse(text)
			}
			if err != nil {
				fmt.Printf("Error parsing input for %s: %v\n", tc.Name, err)
				continue
			}
		}

		if err := writeCase(filepath.Join(baseDir, tc.Name), tc); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", tc.Name, err)
			os.Exit(1)
		}
		generated++
	}

	fmt.Printf("Generated %d tests\n", generated)
}

// writeCase writes the fixtures and the embedding test of tc into dir.
func writeCase(dir string, tc TestCase) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	files := []struct {
		name    string
		content string
	}{
		{"input.blis", strings.TrimSpace(tc.Input) + "\n"},
		{"output.txt", strings.TrimSpace(tc.Output) + "\n"},
		{"reduction_test.go", fmt.Sprintf(testTemplate, tc.Name, tc.Name)},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f.name), []byte(f.content), 0644); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}
