package core

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxRepeatLength caps the size of a string built with the * operator.
const maxRepeatLength = 1 << 30

// Interpreter executes a token stream directly, without building a syntax
// tree. The cursor is the only control-flow state: statements advance it,
// and while loops rewind it to the loop keyword.
//
// Blocks are not nested. An if, elif, else or while body runs up to the
// next control keyword, and only print and assignment statements are
// executed inside it.
type Interpreter struct {
	tokens []Token
	cursor int

	env Environment
	out io.Writer
	in  LineSource
}

func NewInterpreter(out io.Writer, in LineSource) *Interpreter {
	if out == nil {
		out = io.Discard
	}
	if in == nil {
		in = NewStaticSource()
	}

	return &Interpreter{
		env: Environment{},
		out: out,
		in:  in,
	}
}

// Lookup returns the value bound to name, if any.
func (interp *Interpreter) Lookup(name string) (Value, bool) {
	v, ok := interp.env[name]
	return v, ok
}

// Variables returns a copy of the environment.
func (interp *Interpreter) Variables() Environment {
	vars := make(Environment, len(interp.env))
	for k, v := range interp.env {
		vars[k] = v
	}
	return vars
}

// Run executes tokens from the first one until EOF. The environment is kept
// between calls, so a REPL can feed one line at a time.
func (interp *Interpreter) Run(tokens []Token) error {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		return &RuntimeError{Reason: "token stream is not terminated by end of input"}
	}

	interp.tokens = tokens
	interp.cursor = 0

	for interp.current().Kind != EOF {
		if err := interp.executeStatement(); err != nil {
			return err
		}
	}

	return nil
}

func (interp *Interpreter) current() Token {
	return interp.tokens[interp.cursor]
}

func (interp *Interpreter) peek(n int) Token {
	if interp.cursor+n >= len(interp.tokens) {
		return interp.tokens[len(interp.tokens)-1]
	}
	return interp.tokens[interp.cursor+n]
}

func (interp *Interpreter) advance() {
	if interp.current().Kind != EOF {
		interp.cursor++
	}
}

func (interp *Interpreter) isAssignment() bool {
	return interp.current().Kind == IDENTIFIER && interp.peek(1).Kind == SET
}

func (interp *Interpreter) executeStatement() error {
	switch interp.current().Kind {
	case PRINT_KEYWORD:
		return interp.executePrint()
	case INPUT_KEYWORD:
		return interp.executeInput()
	case IF_KEYWORD, ELIF_KEYWORD:
		return interp.executeIf()
	case ELSE_KEYWORD:
		interp.advance()
		return interp.executeSpan(isElseBoundary)
	case WHILE_KEYWORD:
		return interp.executeWhile()
	case IDENTIFIER:
		if interp.isAssignment() {
			return interp.executeAssignment()
		}
	}

	interp.advance()
	return nil
}

func (interp *Interpreter) executeAssignment() error {
	name := interp.current().Payload
	interp.cursor += 2

	value, err := interp.evaluateMath()
	if err != nil {
		return err
	}

	interp.env.Set(name, value)
	return nil
}

func (interp *Interpreter) executePrint() error {
	interp.advance()

	value, err := interp.evaluateMath()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(interp.out, value.String()); err != nil {
		return fmt.Errorf("print: %w", err)
	}
	return nil
}

func (interp *Interpreter) executeInput() error {
	keyword := interp.current()
	interp.advance()

	if prompt := interp.current(); prompt.Kind == STRING_LITERAL {
		if _, err := io.WriteString(interp.out, prompt.Payload); err != nil {
			return fmt.Errorf("input: %w", err)
		}
		interp.advance()
	}

	line, err := interp.in.ReadLine()
	if errors.Is(err, io.EOF) {
		return &RuntimeError{Reason: "input: no input available", position: keyword.Pos}
	} else if err != nil {
		return &RuntimeError{Reason: fmt.Sprintf("input: %s", err), position: keyword.Pos}
	}

	if target := interp.current(); target.Kind == IDENTIFIER {
		interp.env.Set(target.Payload, StringValue(line))
		interp.advance()
	}

	return nil
}

func (interp *Interpreter) executeIf() error {
	interp.advance()

	condition, err := interp.evaluateCondition()
	if err != nil {
		return err
	}

	if !condition {
		interp.skipTo(isBranchBoundary)
		return nil
	}

	if err := interp.executeSpan(isBranchBoundary); err != nil {
		return err
	}

	// the chain is resolved, drop the remaining elif/else bodies
	for kind := interp.current().Kind; kind == ELIF_KEYWORD || kind == ELSE_KEYWORD; kind = interp.current().Kind {
		interp.advance()
		interp.skipTo(isBranchBoundary)
	}

	return nil
}

func (interp *Interpreter) executeWhile() error {
	start := interp.cursor

	for {
		interp.cursor = start + 1

		condition, err := interp.evaluateCondition()
		if err != nil {
			return err
		}

		if !condition {
			interp.skipTo(isLoopBoundary)
			return nil
		}

		if err := interp.executeSpan(isLoopBoundary); err != nil {
			return err
		}
	}
}

func isBranchBoundary(k TokenKind) bool {
	return k == IF_KEYWORD || k == ELIF_KEYWORD || k == ELSE_KEYWORD || k == WHILE_KEYWORD || k == EOF
}

func isElseBoundary(k TokenKind) bool {
	return k == IF_KEYWORD || k == WHILE_KEYWORD || k == EOF
}

func isLoopBoundary(k TokenKind) bool {
	return k == IF_KEYWORD || k == WHILE_KEYWORD || k == EOF
}

func (interp *Interpreter) skipTo(boundary func(TokenKind) bool) {
	for !boundary(interp.current().Kind) {
		interp.cursor++
	}
}

// executeSpan runs the flat body of a control structure. Anything other
// than print or an assignment is stepped over.
func (interp *Interpreter) executeSpan(boundary func(TokenKind) bool) error {
	for !boundary(interp.current().Kind) {
		var err error

		switch {
		case interp.current().Kind == PRINT_KEYWORD:
			err = interp.executePrint()
		case interp.isAssignment():
			err = interp.executeAssignment()
		default:
			interp.cursor++
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (interp *Interpreter) evaluateExpression() (Value, error) {
	tok := interp.current()

	switch tok.Kind {
	case NUMBER_LITERAL:
		interp.advance()
		return IntValue(tok.Number), nil
	case IDENTIFIER:
		interp.advance()
		return interp.env.Get(tok.Payload), nil
	case STRING_LITERAL:
		interp.advance()
		return StringValue(tok.Payload), nil
	}

	return nil, &RuntimeError{
		Reason:   fmt.Sprintf("unexpected token %s", tok),
		position: tok.Pos,
	}
}

// evaluateMath folds + - * / strictly left to right: 2 + 3 * 4 is 20.
func (interp *Interpreter) evaluateMath() (Value, error) {
	left, err := interp.evaluateExpression()
	if err != nil {
		return nil, err
	}

	for interp.current().Kind.isArithmetic() {
		op := interp.current()
		interp.advance()

		right, err := interp.evaluateExpression()
		if err != nil {
			return nil, err
		}

		if left, err = executeBinary(op, left, right); err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (interp *Interpreter) evaluateCondition() (bool, error) {
	if interp.current().Kind == NOT {
		interp.advance()

		result, err := interp.evaluateCondition()
		return !result, err
	}

	left, err := interp.evaluateMath()
	if err != nil {
		return false, err
	}

	op := interp.current()
	switch op.Kind {
	case AND, OR:
		interp.advance()

		right, err := interp.evaluateCondition()
		if err != nil {
			return false, err
		}

		if op.Kind == AND {
			return left.Truthy() && right, nil
		}
		return left.Truthy() || right, nil
	case GREATER, LESS:
		interp.advance()

		right, err := interp.evaluateMath()
		if err != nil {
			return false, err
		}

		return executeComparison(op, left, right)
	}

	return left.Truthy(), nil
}

func unsupportedOperands(op Token, a Value, b Value) error {
	return &RuntimeError{
		Reason:   fmt.Sprintf("unsupported operand types for %s: %s and %s", op.Payload, typeName(a), typeName(b)),
		position: op.Pos,
	}
}

func executeBinary(op Token, a Value, b Value) (Value, error) {
	switch a := a.(type) {
	case StringValue:
		switch b := b.(type) {
		case StringValue:
			if op.Kind == PLUS {
				return a + b, nil
			}
		case IntValue:
			if op.Kind == TIMES {
				return repeat(op, a, b)
			}
		}
	case IntValue:
		switch b := b.(type) {
		case IntValue:
			return executeBinaryInt(op, a, b)
		case FloatValue:
			return executeBinaryFloat(op, FloatValue(a), b)
		case StringValue:
			if op.Kind == TIMES {
				return repeat(op, b, a)
			}
		}
	case FloatValue:
		switch b := b.(type) {
		case IntValue:
			return executeBinaryFloat(op, a, FloatValue(b))
		case FloatValue:
			return executeBinaryFloat(op, a, b)
		}
	}

	return nil, unsupportedOperands(op, a, b)
}

func executeBinaryInt(op Token, a IntValue, b IntValue) (Value, error) {
	switch op.Kind {
	case PLUS:
		return a + b, nil
	case MINUS:
		return a - b, nil
	case TIMES:
		return a * b, nil
	case DIVIDE:
		if b == 0 {
			return nil, &RuntimeError{Reason: "division by zero", position: op.Pos}
		}
		return FloatValue(float64(a) / float64(b)), nil
	}

	return nil, fmt.Errorf("invariant: invalid arithmetic operator %s", op)
}

func executeBinaryFloat(op Token, a FloatValue, b FloatValue) (Value, error) {
	switch op.Kind {
	case PLUS:
		return a + b, nil
	case MINUS:
		return a - b, nil
	case TIMES:
		return a * b, nil
	case DIVIDE:
		if b == 0 {
			return nil, &RuntimeError{Reason: "division by zero", position: op.Pos}
		}
		return a / b, nil
	}

	return nil, fmt.Errorf("invariant: invalid arithmetic operator %s", op)
}

func repeat(op Token, s StringValue, n IntValue) (Value, error) {
	if n <= 0 || len(s) == 0 {
		return StringValue(""), nil
	}
	if int64(n) > int64(maxRepeatLength/len(s)) {
		return nil, &RuntimeError{Reason: "string repetition too large", position: op.Pos}
	}
	return StringValue(strings.Repeat(string(s), int(n))), nil
}

func executeComparison(op Token, a Value, b Value) (bool, error) {
	if a, ok := a.(StringValue); ok {
		if b, ok := b.(StringValue); ok {
			if op.Kind == GREATER {
				return a > b, nil
			}
			return a < b, nil
		}
		return false, unsupportedOperands(op, a, b)
	}

	if a, ok := a.(IntValue); ok {
		if b, ok := b.(IntValue); ok {
			if op.Kind == GREATER {
				return a > b, nil
			}
			return a < b, nil
		}
	}

	x, okA := toFloat(a)
	y, okB := toFloat(b)
	if !okA || !okB {
		return false, unsupportedOperands(op, a, b)
	}

	if op.Kind == GREATER {
		return x > y, nil
	}
	return x < y, nil
}
