package main

import (
	"bytes"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"

	"github.com/ajkachnic/felix/core"
)

type lineEditor interface {
	readLine(prompt string) (string, error)
}

// terminal is both the output sink and the input source of a running
// program. Output is passed through a line at a time; a trailing partial
// line (an input prompt) is held back and handed to the line editor as its
// prompt, so redrawing the edited line does not erase it.
type terminal struct {
	out     io.Writer
	editor  lineEditor
	pending []byte
}

func newTerminal(out io.Writer, editor lineEditor) *terminal {
	return &terminal{out: out, editor: editor}
}

func (t *terminal) Write(p []byte) (int, error) {
	t.pending = append(t.pending, p...)

	idx := bytes.LastIndexByte(t.pending, '\n')
	if idx < 0 {
		return len(p), nil
	}

	if _, err := t.out.Write(t.pending[:idx+1]); err != nil {
		return 0, err
	}
	t.pending = append([]byte(nil), t.pending[idx+1:]...)

	return len(p), nil
}

func (t *terminal) ReadLine() (string, error) {
	prompt := string(t.pending)
	t.pending = nil
	return t.editor.readLine(prompt)
}

// Flush writes any held back partial line.
func (t *terminal) Flush() error {
	if len(t.pending) == 0 {
		return nil
	}
	_, err := t.out.Write(t.pending)
	t.pending = nil
	return err
}

// plainEditor reads from a non-interactive stream, echoing the prompt.
type plainEditor struct {
	out    io.Writer
	source *core.ReaderSource
}

func (e *plainEditor) readLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := io.WriteString(e.out, prompt); err != nil {
			return "", err
		}
	}
	return e.source.ReadLine()
}

type readlineEditor struct {
	rl *readline.Instance
}

func (e *readlineEditor) readLine(prompt string) (string, error) {
	e.rl.SetPrompt(prompt)

	line, err := e.rl.Readline()
	if err == readline.ErrInterrupt {
		return "", io.EOF
	}
	return line, err
}

// openTerminal picks a line editor for program input: readline when both
// ends are a terminal, a plain line reader otherwise.
func openTerminal(stdin *os.File, stdout *os.File) (*terminal, func(), error) {
	if isatty.IsTerminal(stdin.Fd()) && isatty.IsTerminal(stdout.Fd()) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt: "",
			Stdin:  stdin,
			Stdout: stdout,
		})
		if err != nil {
			return nil, nil, err
		}

		return newTerminal(stdout, &readlineEditor{rl: rl}), func() { rl.Close() }, nil
	}

	editor := &plainEditor{out: stdout, source: core.NewReaderSource(stdin)}
	return newTerminal(stdout, editor), func() {}, nil
}
