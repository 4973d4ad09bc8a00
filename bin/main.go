package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/ajkachnic/felix/core"
)

const version = "0.1.0"

const helpMessage = `felix is a tiny scripting language.

Usage:
  felix [flags] <file.fx>
  felix                     start a REPL
`

const (
	exitOK = iota
	exitProgramError
	exitUsageError
)

var debugTokens = flag.Bool("tokens", false, "print the token stream before running")
var checkOnly = flag.Bool("check", false, "only tokenize the file and report lexical errors")
var noColor = flag.Bool("no-color", false, "disable colored output")
var showVersion = flag.Bool("version", false, "print the version and exit")

type options struct {
	tokens bool
	check  bool
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), helpMessage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	if *showVersion {
		fmt.Println("felix", version)
		return
	}

	args := flag.Args()

	if len(args) == 0 {
		repl()
	} else {
		os.Exit(runFile(args[0], options{tokens: *debugTokens, check: *checkOnly}))
	}
}

func runFile(path string, opts options) int {
	content, err := os.ReadFile(path)
	if err != nil {
		reportError(os.Stderr, err)
		return exitUsageError
	}

	term, closeTerm, err := openTerminal(os.Stdin, os.Stdout)
	if err != nil {
		reportError(os.Stderr, err)
		return exitUsageError
	}
	defer closeTerm()

	return run(string(content), term, os.Stdout, os.Stderr, opts)
}

func run(source string, term *terminal, stdout io.Writer, stderr io.Writer, opts options) int {
	tokens, err := core.Tokenize(source)
	if err != nil {
		reportError(stderr, err)
		return exitProgramError
	}

	if opts.tokens {
		dumpTokens(stdout, tokens)
	}

	if opts.check {
		return exitOK
	}

	interp := core.NewInterpreter(term, term)
	err = interp.Run(tokens)

	if flushErr := term.Flush(); err == nil {
		err = flushErr
	}

	if err != nil {
		reportError(stderr, err)
		return exitProgramError
	}

	return exitOK
}

func reportError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "Error: %s\n", err)
}

func dumpTokens(w io.Writer, tokens []core.Token) {
	faint := color.New(color.Faint)
	for _, token := range tokens {
		faint.Fprintf(w, "%-8s ", token.Pos)
		fmt.Fprintln(w, token)
	}
}
