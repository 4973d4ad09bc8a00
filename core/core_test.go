package core

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type programFixture struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Input  []string `yaml:"input"`
	Output []string `yaml:"output"`
	Error  string   `yaml:"error"`
}

func loadFixtures(t *testing.T, path string) []programFixture {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixtures: %v", err)
	}

	var fixtures []programFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		t.Fatalf("decode fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatalf("no fixtures in %s", path)
	}
	return fixtures
}

func TestProgramFixtures(t *testing.T) {
	for _, fx := range loadFixtures(t, "testdata/programs.yaml") {
		fx := fx
		t.Run(fx.Name, func(t *testing.T) {
			output, err := Output(fx.Source, fx.Input...)

			if fx.Error == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Fatalf("expected error containing %q, got none", fx.Error)
				}
				if !strings.Contains(err.Error(), fx.Error) {
					t.Fatalf("expected error containing %q, got %q", fx.Error, err.Error())
				}
			}

			if fx.Output == nil && fx.Error != "" {
				return
			}
			if len(output) != len(fx.Output) {
				t.Fatalf("expected output %q, got %q", fx.Output, output)
			}
			for i := range output {
				if output[i] != fx.Output[i] {
					t.Fatalf("line %d: expected %q, got %q", i+1, fx.Output[i], output[i])
				}
			}
		})
	}
}

func TestExecuteLeavesEnvironment(t *testing.T) {
	var out bytes.Buffer
	interp, err := Execute("x = 5", &out, nil)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}

	vars := interp.Variables()
	if len(vars) != 1 || vars["x"] != IntValue(5) {
		t.Fatalf("expected {x: 5}, got %v", vars)
	}
}

func TestExecuteErrorKinds(t *testing.T) {
	_, err := Execute(`print "open`, nil, nil)
	var lexErr *LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected lexical error, got %T: %v", err, err)
	}
	if lexErr.Line != 1 || lexErr.Col != 7 {
		t.Fatalf("expected error at [1:7], got %s", lexErr.position)
	}

	_, err = Execute("print print", nil, nil)
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected runtime error, got %T: %v", err, err)
	}
	if rtErr.Col != 7 {
		t.Fatalf("expected error at column 7, got %s", rtErr.position)
	}
}

func TestOutputKeepsEmptyLines(t *testing.T) {
	output, err := Output("print \"\"\nprint 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output) != 2 || output[0] != "" || output[1] != "1" {
		t.Fatalf("unexpected output %q", output)
	}
}
