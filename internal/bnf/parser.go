package bnf

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var bnfLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Assign", Pattern: `::=`},
	{Name: "Rule", Pattern: `<[^<>\n]*>`},
	{Name: "String", Pattern: `"[^"\n]*"|'[^'\n]*'`},
	{Name: "Range", Pattern: `\[[^\]\n]+\]`},
	{Name: "Quantifier", Pattern: `[?*+]`},
	{Name: "Pipe", Pattern: `\|`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "EOL", Pattern: `\n`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

// unwrap drops the surrounding quotes or brackets so the tree only carries
// the payload.
func unwrap(tok lexer.Token) (lexer.Token, error) {
	tok.Value = tok.Value[1 : len(tok.Value)-1]
	return tok, nil
}

func ruleName(tok lexer.Token) (lexer.Token, error) {
	tok.Value = strings.TrimSpace(tok.Value[1 : len(tok.Value)-1])
	return tok, nil
}

var parser = participle.MustBuild[Grammar](
	participle.Lexer(bnfLexer),
	participle.Elide("Whitespace"),
	participle.Map(unwrap, "String", "Range"),
	participle.Map(ruleName, "Rule"),
	participle.UseLookahead(2),
)

// UnexpectedTokenError is returned when the grammar source does not follow
// the grammar description syntax.
type UnexpectedTokenError struct {
	Pos lexer.Position
	Msg string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("%s: unexpected token: %s", e.Pos, e.Msg)
}

// MaxNesting bounds how deeply groups may be nested. Parsing and compiling
// recurse once per group level.
const MaxNesting = 1000

// NestingError is returned for a group opened more than MaxNesting levels
// deep.
type NestingError struct {
	Pos   lexer.Position
	Limit int
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("%s: groups nested deeper than %d", e.Pos, e.Limit)
}

// Parse parses grammar source text into a syntax tree.
func Parse(source string) (*Grammar, error) {
	return parseNamed("grammar", source)
}

// ParseFile reads and parses the grammar stored at path.
func ParseFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseNamed(path, string(data))
}

func MustParse(source string) *Grammar {
	g, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return g
}

func parseNamed(name, source string) (*Grammar, error) {
	if err := checkNesting(name, source); err != nil {
		return nil, err
	}
	g, err := parser.ParseString(name, source)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &UnexpectedTokenError{Pos: perr.Position(), Msg: perr.Message()}
		}
		return nil, err
	}
	return g, nil
}

// checkNesting scans the token stream for group depth before the recursive
// parser sees it. Lexing errors are left for the parser to report.
func checkNesting(name, source string) error {
	lex, err := bnfLexer.LexString(name, source)
	if err != nil {
		return nil
	}
	symbols := bnfLexer.Symbols()
	open, closing := symbols["LParen"], symbols["RParen"]

	depth := 0
	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return nil
		}
		switch tok.Type {
		case open:
			depth++
			if depth > MaxNesting {
				return &NestingError{Pos: tok.Pos, Limit: MaxNesting}
			}
		case closing:
			depth--
		}
	}
}
