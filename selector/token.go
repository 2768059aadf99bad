package selector

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType identifies a lexical token of the query language.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenPipe
	TokenAt
	TokenHash
	TokenIdent
	TokenString // backtick-quoted literal
	TokenNumber // optional leading -, then digits
	TokenOpenParen
	TokenCloseParen
	TokenComma
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenPipe:
		return "`|`"
	case TokenAt:
		return "`@`"
	case TokenHash:
		return "`#`"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenOpenParen:
		return "`(`"
	case TokenCloseParen:
		return "`)`"
	case TokenComma:
		return "`,`"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is one lexical token with its position in the source.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

// describe renders a token for error messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenNumber:
		return fmt.Sprintf("`%s`", t.Value)
	case TokenString:
		return fmt.Sprintf("`%s`", "`"+t.Value+"`")
	default:
		return t.Type.String()
	}
}

// tokenizer scans query source into tokens, tracking line and column for
// error reporting.
type tokenizer struct {
	input  []rune
	pos    int
	line   int
	column int
}

func newTokenizer(input string) *tokenizer {
	return &tokenizer{input: []rune(input), line: 1, column: 1}
}

func (t *tokenizer) peek() rune {
	if t.pos >= len(t.input) {
		return -1
	}
	return t.input[t.pos]
}

func (t *tokenizer) advance() rune {
	r := t.peek()
	if r == -1 {
		return r
	}
	t.pos++
	if r == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return r
}

func (t *tokenizer) skipWhitespace() {
	for unicode.IsSpace(t.peek()) {
		t.advance()
	}
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// next scans the next token. Lexical errors (stray characters, unterminated
// strings) surface as GrammarError.
func (t *tokenizer) next() (Token, error) {
	t.skipWhitespace()

	line, column := t.line, t.column
	r := t.peek()

	switch {
	case r == -1:
		return Token{Type: TokenEOF, Line: line, Column: column}, nil
	case r == '|':
		t.advance()
		return Token{Type: TokenPipe, Value: "|", Line: line, Column: column}, nil
	case r == '@':
		t.advance()
		return Token{Type: TokenAt, Value: "@", Line: line, Column: column}, nil
	case r == '#':
		t.advance()
		return Token{Type: TokenHash, Value: "#", Line: line, Column: column}, nil
	case r == '(':
		t.advance()
		return Token{Type: TokenOpenParen, Value: "(", Line: line, Column: column}, nil
	case r == ')':
		t.advance()
		return Token{Type: TokenCloseParen, Value: ")", Line: line, Column: column}, nil
	case r == ',':
		t.advance()
		return Token{Type: TokenComma, Value: ",", Line: line, Column: column}, nil
	case r == '`':
		return t.scanString(line, column)
	case r == '-' || unicode.IsDigit(r):
		return t.scanNumber(line, column)
	case unicode.IsLetter(r):
		return t.scanIdent(line, column), nil
	default:
		return Token{}, grammarErr(line, column, fmt.Sprintf("`%c`", r), "expression")
	}
}

// scanString scans a backtick-quoted literal. The content between the
// backticks is taken verbatim; there are no escapes.
func (t *tokenizer) scanString(line, column int) (Token, error) {
	t.advance() // opening backtick
	var sb strings.Builder
	for {
		r := t.peek()
		if r == -1 {
			return Token{}, grammarErr(t.line, t.column, "end of input", "closing backtick")
		}
		t.advance()
		if r == '`' {
			return Token{Type: TokenString, Value: sb.String(), Line: line, Column: column}, nil
		}
		sb.WriteRune(r)
	}
}

// scanNumber scans an integer with an optional leading minus sign. The
// grammar guarantees at least one digit.
func (t *tokenizer) scanNumber(line, column int) (Token, error) {
	var sb strings.Builder
	if t.peek() == '-' {
		sb.WriteRune(t.advance())
	}
	if !unicode.IsDigit(t.peek()) {
		found := "end of input"
		if t.peek() != -1 {
			found = fmt.Sprintf("`%c`", t.peek())
		}
		return Token{}, grammarErr(t.line, t.column, found, "digit")
	}
	for unicode.IsDigit(t.peek()) {
		sb.WriteRune(t.advance())
	}
	return Token{Type: TokenNumber, Value: sb.String(), Line: line, Column: column}, nil
}

func (t *tokenizer) scanIdent(line, column int) Token {
	var sb strings.Builder
	for isIdentRune(t.peek()) {
		sb.WriteRune(t.advance())
	}
	return Token{Type: TokenIdent, Value: sb.String(), Line: line, Column: column}
}
