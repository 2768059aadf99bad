package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Keyword sets reported in errors when an unknown expression name is found.
var (
	atKeywords   = []string{"`flat`", "`path`", "`attr`", "`id`", "`class`", "`child`"}
	hashKeywords = []string{"`text`", "`trim`", "`trimPrefix`", "`trimSuffix`", "`extractAttr`"}
)

// Parse compiles query source text into the ordered selector pipeline. The
// query is a |-separated sequence of expressions; each expression is a
// keyword call with backtick-quoted string or bare numeric arguments:
//
//	@path(`/body//div/a`) | @attr(`href`) | #text() | #trim()
//
// Compilation fails with a *GrammarError when the input does not match the
// grammar.
func Parse(input string) ([]Selector, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}

	var selectors []Selector
	for {
		s, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, s)

		switch p.cur.Type {
		case TokenPipe:
			if err := p.next(); err != nil {
				return nil, err
			}
		case TokenEOF:
			return selectors, nil
		default:
			return nil, grammarErr(p.cur.Line, p.cur.Column, p.cur.describe(), "`|`", "end of input")
		}
	}
}

type parser struct {
	toks *tokenizer
	cur  Token
}

func newParser(input string) (*parser, error) {
	p := &parser{toks: newTokenizer(input)}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) next() error {
	tok, err := p.toks.next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// expect consumes the current token when it has the wanted type and fails
// with the expected-token set otherwise.
func (p *parser) expect(want TokenType) (Token, error) {
	tok := p.cur
	if tok.Type != want {
		return Token{}, grammarErr(tok.Line, tok.Column, tok.describe(), want.String())
	}
	if err := p.next(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

func (p *parser) parseExpr() (Selector, error) {
	switch p.cur.Type {
	case TokenAt:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parseAtExpr()
	case TokenHash:
		if err := p.next(); err != nil {
			return nil, err
		}
		return p.parseHashExpr()
	default:
		return nil, grammarErr(p.cur.Line, p.cur.Column, p.cur.describe(), "`@`", "`#`")
	}
}

func (p *parser) parseAtExpr() (Selector, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	switch name.Value {
	case "flat":
		if err := p.parseNoArgs(); err != nil {
			return nil, err
		}
		return NewFlatSelector(), nil
	case "path":
		return p.parsePathExpr()
	case "attr":
		return p.parseAttrExpr()
	case "id":
		value, caseSensitive, err := p.parseValueWithCaseFlag()
		if err != nil {
			return nil, err
		}
		return NewIDSelector(value, caseSensitive), nil
	case "class":
		value, caseSensitive, err := p.parseValueWithCaseFlag()
		if err != nil {
			return nil, err
		}
		return NewClassSelector(value, caseSensitive), nil
	case "child":
		return p.parseChildExpr()
	default:
		return nil, grammarErr(name.Line, name.Column, name.describe(), atKeywords...)
	}
}

func (p *parser) parseHashExpr() (Selector, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	switch name.Value {
	case "text":
		if err := p.parseNoArgs(); err != nil {
			return nil, err
		}
		return NewTextSelector(), nil
	case "trim":
		if err := p.parseNoArgs(); err != nil {
			return nil, err
		}
		return NewTrimSelector(), nil
	case "trimPrefix":
		arg, err := p.parseOneString()
		if err != nil {
			return nil, err
		}
		return NewTrimPrefixSelector(arg), nil
	case "trimSuffix":
		arg, err := p.parseOneString()
		if err != nil {
			return nil, err
		}
		return NewTrimSuffixSelector(arg), nil
	case "extractAttr":
		arg, err := p.parseOneString()
		if err != nil {
			return nil, err
		}
		return NewExtractAttrSelector(arg), nil
	default:
		return nil, grammarErr(name.Line, name.Column, name.describe(), hashKeywords...)
	}
}

// parseNoArgs consumes "()".
func (p *parser) parseNoArgs() error {
	if _, err := p.expect(TokenOpenParen); err != nil {
		return err
	}
	_, err := p.expect(TokenCloseParen)
	return err
}

// parseOneString consumes "(`...`)" and returns the string content.
func (p *parser) parseOneString() (string, error) {
	if _, err := p.expect(TokenOpenParen); err != nil {
		return "", err
	}
	arg, err := p.expect(TokenString)
	if err != nil {
		return "", err
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return "", err
	}
	return arg.Value, nil
}

// parsePathExpr compiles @path(`/a//b`): the quoted path splits into
// (single | travel, tag) steps.
func (p *parser) parsePathExpr() (Selector, error) {
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	raw, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	steps, err := parsePathSteps(raw)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}
	return NewPathSelector(steps), nil
}

// parsePathSteps scans the content of a quoted path. Positions in errors
// refer to the string token that holds the path.
func parsePathSteps(raw Token) ([]PathStep, error) {
	s := raw.Value
	if !strings.HasPrefix(s, "/") {
		return nil, grammarErr(raw.Line, raw.Column, raw.describe(), "`/`", "`//`")
	}

	var steps []PathStep
	for len(s) > 0 {
		kind := PathSingle
		if strings.HasPrefix(s, "//") {
			kind = PathTravel
			s = s[2:]
		} else {
			s = s[1:]
		}

		end := strings.IndexByte(s, '/')
		if end == -1 {
			end = len(s)
		}
		tag := s[:end]
		if tag == "" {
			return nil, grammarErr(raw.Line, raw.Column, raw.describe(), "tag name")
		}
		steps = append(steps, PathStep{Kind: kind, Tag: tag})
		s = s[end:]
	}
	return steps, nil
}

// parseAttrExpr compiles @attr(`name`) and @attr(`name`, `value`).
func (p *parser) parseAttrExpr() (Selector, error) {
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	name, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}

	if p.cur.Type == TokenComma {
		if err := p.next(); err != nil {
			return nil, err
		}
		value, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenCloseParen); err != nil {
			return nil, err
		}
		return NewAttrValueSelector(name.Value, value.Value), nil
	}

	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}
	return NewAttrSelector(name.Value), nil
}

// parseValueWithCaseFlag compiles the shared argument shape of @id and
// @class: a quoted value plus an optional 0/1 case-sensitivity flag,
// defaulting to case-sensitive.
func (p *parser) parseValueWithCaseFlag() (value string, caseSensitive bool, err error) {
	if _, err = p.expect(TokenOpenParen); err != nil {
		return "", false, err
	}
	arg, err := p.expect(TokenString)
	if err != nil {
		return "", false, err
	}

	caseSensitive = true
	if p.cur.Type == TokenComma {
		if err = p.next(); err != nil {
			return "", false, err
		}
		flag, err := p.expect(TokenNumber)
		if err != nil {
			return "", false, err
		}
		switch flag.Value {
		case "0":
			caseSensitive = false
		case "1":
			caseSensitive = true
		default:
			return "", false, grammarErr(flag.Line, flag.Column, flag.describe(), "`0`", "`1`")
		}
	}

	if _, err = p.expect(TokenCloseParen); err != nil {
		return "", false, err
	}
	return arg.Value, caseSensitive, nil
}

// parseChildExpr compiles @child(N). A leading minus counts from the end:
// @child(-2) selects the second-from-last child, and @child(-0) is the same
// as @child(0).
func (p *parser) parseChildExpr() (Selector, error) {
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	num, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}

	negative := strings.HasPrefix(num.Value, "-")
	n, convErr := strconv.Atoi(strings.TrimPrefix(num.Value, "-"))
	if convErr != nil {
		// The tokenizer guarantees digits; this is unreachable under the
		// grammar.
		return nil, grammarErr(num.Line, num.Column, num.describe(), "number")
	}

	if negative && n > 0 {
		return NewNthChildSelector(n-1, true), nil
	}
	return NewNthChildSelector(n, false), nil
}

// MustParse is Parse for tests and static queries; it panics on a grammar
// error.
func MustParse(input string) []Selector {
	selectors, err := Parse(input)
	if err != nil {
		panic(fmt.Sprintf("selector: %v", err))
	}
	return selectors
}
