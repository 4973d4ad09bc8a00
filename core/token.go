package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type TokenKind int

const (
	UNKNOWN TokenKind = iota

	// binary operators
	PLUS
	MINUS
	TIMES
	DIVIDE
	SET // =
	GREATER
	LESS
	AND
	OR

	// unary operators
	NOT

	// keywords
	PRINT_KEYWORD
	INPUT_KEYWORD
	IF_KEYWORD
	ELIF_KEYWORD
	ELSE_KEYWORD
	WHILE_KEYWORD

	// literals
	IDENTIFIER
	STRING_LITERAL
	NUMBER_LITERAL

	EOF
)

var keywords = map[string]TokenKind{
	"print": PRINT_KEYWORD,
	"input": INPUT_KEYWORD,
	"if":    IF_KEYWORD,
	"elif":  ELIF_KEYWORD,
	"else":  ELSE_KEYWORD,
	"while": WHILE_KEYWORD,
	"and":   AND,
	"or":    OR,
	"not":   NOT,
}

// IsKeyword reports whether the kind is produced by a reserved word.
func (k TokenKind) IsKeyword() bool {
	switch k {
	case PRINT_KEYWORD, INPUT_KEYWORD, IF_KEYWORD, ELIF_KEYWORD, ELSE_KEYWORD, WHILE_KEYWORD, AND, OR, NOT:
		return true
	}
	return false
}

func (k TokenKind) isArithmetic() bool {
	return k == PLUS || k == MINUS || k == TIMES || k == DIVIDE
}

type position struct {
	Line   int
	Col    int
	Offset int
}

func (p position) String() string {
	return fmt.Sprintf("[%d:%d]", p.Line, p.Col)
}

type Token struct {
	Kind    TokenKind
	Pos     position
	Payload string
	Number  int64
	Length  int
}

func (t Token) String() string {
	switch t.Kind {
	case IDENTIFIER:
		return fmt.Sprintf("var(%s)", t.Payload)
	case STRING_LITERAL:
		return fmt.Sprintf("string(%s)", t.Payload)
	case NUMBER_LITERAL:
		return fmt.Sprintf("number(%d)", t.Number)
	case EOF:
		return "<end of input>"
	case UNKNOWN:
		return "<unknown>"
	default:
		return t.Payload
	}
}

// Text renders the token back to source form.
func (t Token) Text() string {
	switch t.Kind {
	case STRING_LITERAL:
		return `"` + t.Payload + `"`
	case NUMBER_LITERAL:
		return strconv.FormatInt(t.Number, 10)
	case EOF:
		return ""
	default:
		return t.Payload
	}
}

type tokenizer struct {
	source []rune
	index  int
	line   int
	col    int
}

func NewTokenizer(source string) tokenizer {
	return tokenizer{
		source: []rune(source),
		index:  0,
		line:   1,
		col:    0,
	}
}

func (t *tokenizer) isEOF() bool {
	return t.index >= len(t.source)
}

func (t *tokenizer) next() rune {
	char := t.source[t.index]
	t.index++

	if char == '\n' {
		t.line++
		t.col = 0
	} else {
		t.col++
	}

	return char
}

func (t *tokenizer) peek() rune {
	return t.source[t.index]
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (t *tokenizer) readIdentifier() string {
	ident := []rune{}
	for !t.isEOF() {
		ch := t.peek()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' {
			ident = append(ident, t.next())
		} else {
			break
		}
	}

	return string(ident)
}

func (t *tokenizer) readNumber() string {
	literal := []rune{}
	for !t.isEOF() && isDigit(t.peek()) {
		literal = append(literal, t.next())
	}

	return string(literal)
}

func (t *tokenizer) skipWhitespace() {
	for !t.isEOF() && unicode.IsSpace(t.peek()) {
		t.next()
	}
}

// pos is the position of the rune most recently consumed by next.
func (t *tokenizer) pos() position {
	offset := t.index
	if offset > 0 {
		offset -= 1
	}
	return position{
		Line:   t.line,
		Col:    t.col,
		Offset: offset,
	}
}

func operator(kind TokenKind, ch rune, pos position) Token {
	return Token{Kind: kind, Pos: pos, Payload: string(ch), Length: 1}
}

func (t *tokenizer) nextToken() (Token, error) {
	ch := t.next()
	pos := t.pos()

	switch ch {
	case '+':
		return operator(PLUS, ch, pos), nil
	case '-':
		return operator(MINUS, ch, pos), nil
	case '*':
		return operator(TIMES, ch, pos), nil
	case '/':
		return operator(DIVIDE, ch, pos), nil
	case '=':
		return operator(SET, ch, pos), nil
	case '>':
		return operator(GREATER, ch, pos), nil
	case '<':
		return operator(LESS, ch, pos), nil
	case '"':
		length := 1
		builder := strings.Builder{}
		for !t.isEOF() && t.peek() != '"' {
			builder.WriteRune(t.next())
			length++
		}

		if t.isEOF() {
			return Token{}, &LexicalError{Reason: "unterminated string", position: pos}
		}

		t.next()
		return Token{
			Kind:    STRING_LITERAL,
			Pos:     pos,
			Payload: builder.String(),
			Length:  length + 1,
		}, nil
	}

	if isDigit(ch) {
		payload := string(ch) + t.readNumber()
		n, err := strconv.ParseInt(payload, 10, 64)
		if err != nil {
			return Token{}, &LexicalError{Reason: fmt.Sprintf("number literal out of range: %s", payload), position: pos}
		}
		return Token{Kind: NUMBER_LITERAL, Pos: pos, Payload: payload, Number: n, Length: len(payload)}, nil
	}

	if unicode.IsLetter(ch) {
		payload := string(ch) + t.readIdentifier()
		kind, ok := keywords[payload]
		if !ok {
			kind = IDENTIFIER
		}
		return Token{Kind: kind, Pos: pos, Payload: payload, Length: len([]rune(payload))}, nil
	}

	return Token{}, &LexicalError{
		Reason:   fmt.Sprintf("invalid character %q", ch),
		Char:     ch,
		position: pos,
	}
}

// Tokenize scans the whole source. On failure it returns the tokens read
// before the offending character along with a *LexicalError; a successful
// result always ends with a single EOF token.
func (t *tokenizer) Tokenize() ([]Token, error) {
	tokens := []Token{}

	for {
		t.skipWhitespace()
		if t.isEOF() {
			break
		}

		next, err := t.nextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, next)
	}

	return append(tokens, Token{
		Kind:   EOF,
		Pos:    position{Line: t.line, Col: t.col + 1, Offset: t.index},
		Length: 0,
	}), nil
}
