package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/reeflective/readline"

	"github.com/ajkachnic/felix/core"
)

const replPrompt = "> "

// replSession drives the shell. While an input statement is waiting for a
// line the prompt is the program's own and highlighting is switched off.
type replSession struct {
	shell   *readline.Shell
	prompt  string
	reading bool
}

func newReplSession() *replSession {
	s := &replSession{shell: readline.NewShell(), prompt: replPrompt}
	s.shell.Prompt.Primary(func() string { return s.prompt })
	s.shell.SyntaxHighlighter = s.highlight
	return s
}

func (s *replSession) readLine(prompt string) (string, error) {
	s.prompt, s.reading = prompt, true
	defer func() {
		s.prompt, s.reading = replPrompt, false
	}()

	return s.shell.Readline()
}

func (s *replSession) highlight(line []rune) string {
	if s.reading {
		return string(line)
	}
	return highlight(line)
}

func repl() {
	session := newReplSession()
	term := newTerminal(os.Stdout, session)
	interp := core.NewInterpreter(term, term)

	fmt.Printf("felix %s (:vars lists variables, :quit exits)\n", version)

	for {
		text, err := session.shell.Readline()

		if err == io.EOF {
			break
		} else if err != nil {
			fmt.Println(err)
			break
		}

		switch strings.TrimSpace(text) {
		case "":
			continue
		case ":quit":
			return
		case ":vars":
			printVariables(os.Stdout, interp.Variables())
			continue
		}

		err = interp.Interpret(text)
		term.Flush()
		if err != nil {
			reportError(os.Stdout, err)
		}
	}
}

func printVariables(w io.Writer, vars core.Environment) {
	for _, name := range vars.Names() {
		value := vars[name]
		if s, ok := value.(core.StringValue); ok {
			fmt.Fprintf(w, "%s = %s\n", name, color.GreenString("%q", string(s)))
		} else {
			fmt.Fprintf(w, "%s = %s\n", name, color.MagentaString("%s", value))
		}
	}
}

// highlight colors a line using the Felix tokenizer. Text after a lexical
// error is left as typed.
func highlight(line []rune) string {
	tokens, _ := core.Tokenize(string(line))

	builder := strings.Builder{}

	i := 0
	for _, token := range tokens {
		if token.Kind == core.EOF {
			break
		}
		if token.Pos.Offset > i {
			builder.WriteString(string(line[i:token.Pos.Offset]))
		}

		end := token.Pos.Offset + token.Length
		text := string(line[token.Pos.Offset:end])

		switch {
		case token.Kind == core.STRING_LITERAL:
			builder.WriteString(color.GreenString("%s", text))
		case token.Kind == core.NUMBER_LITERAL:
			builder.WriteString(color.MagentaString("%s", text))
		case token.Kind.IsKeyword():
			builder.WriteString(color.CyanString("%s", text))
		default:
			builder.WriteString(text)
		}

		i = end
	}

	if i < len(line) {
		builder.WriteString(string(line[i:]))
	}

	return builder.String()
}
