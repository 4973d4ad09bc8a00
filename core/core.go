package core

import (
	"bytes"
	"io"
	"strings"
)

func Tokenize(source string) ([]Token, error) {
	tokenizer := NewTokenizer(source)
	return tokenizer.Tokenize()
}

// Interpret tokenizes source and runs it against the interpreter's current
// environment. Lexical errors abort before anything executes.
func (interp *Interpreter) Interpret(source string) error {
	tokens, err := Tokenize(source)
	if err != nil {
		return err
	}

	return interp.Run(tokens)
}

// Execute runs source in a fresh environment, streaming printed output to
// out and reading input lines from in.
func Execute(source string, out io.Writer, in LineSource) (*Interpreter, error) {
	interp := NewInterpreter(out, in)
	return interp, interp.Interpret(source)
}

// Output runs source with the given input lines and returns what it
// printed, split into lines. Output produced before an error is returned
// alongside it.
func Output(source string, input ...string) ([]string, error) {
	var buf bytes.Buffer
	_, err := Execute(source, &buf, NewStaticSource(input...))

	if buf.Len() == 0 {
		return []string{}, err
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"), err
}
