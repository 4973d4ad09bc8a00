package core

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

type LexicalError struct {
	Reason string
	// Char is the offending character, zero for errors that are not about
	// a single character.
	Char rune
	position
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("Lexical error %s: %s", e.position, e.Reason)
}

type RuntimeError struct {
	Reason string
	position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime error %s: %s", e.position, e.Reason)
}

// Environment maps variable names to their current values. Reading an
// unbound name yields IntValue(0).
type Environment map[string]Value

func (e Environment) Get(name string) Value {
	if v, ok := e[name]; ok {
		return v
	}
	return IntValue(0)
}

func (e Environment) Set(name string, v Value) {
	e[name] = v
}

// Names returns the bound names in sorted order.
func (e Environment) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LineSource supplies one line of interactive input per input statement.
// ReadLine returns io.EOF once no more input is available.
type LineSource interface {
	ReadLine() (string, error)
}

type ReaderSource struct {
	scanner *bufio.Scanner
}

func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{scanner: bufio.NewScanner(r)}
}

func (s *ReaderSource) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(s.scanner.Text(), "\r"), nil
}

// StaticSource replays a fixed list of lines.
type StaticSource struct {
	lines []string
}

func NewStaticSource(lines ...string) *StaticSource {
	return &StaticSource{lines: lines}
}

func (s *StaticSource) ReadLine() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}
