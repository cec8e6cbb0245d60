package bnf

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Grammar is the syntax tree of one grammar source: a list of rule
// declarations in source order.
type Grammar struct {
	Declarations []*Declaration `parser:"EOL* @@+"`
}

// Declaration is `<name> ::= body`.
type Declaration struct {
	Pos  lexer.Position
	Name string       `parser:"@Rule Assign"`
	Body *Alternation `parser:"@@ EOL*"`
}

type Alternation struct {
	Alternatives []*Sequence `parser:"@@ ( Pipe @@ )*"`
}

type Sequence struct {
	Terms []*Term `parser:"@@+"`
}

// Term is a factor with an optional quantifier ("?", "*" or "+").
type Term struct {
	Factor     *Factor `parser:"@@"`
	Quantifier string  `parser:"@Quantifier?"`
}

// Factor is a tagged variant: exactly one field is set.
type Factor struct {
	Literal *string      `parser:"  @String"`
	Rule    *string      `parser:"| @Rule"`
	Range   *string      `parser:"| @Range"`
	Group   *Alternation `parser:"| LParen @@ RParen"`
}

const (
	Optional   = "?"
	ZeroOrMore = "*"
	OneOrMore  = "+"
)

// Rules returns the declared rule names in source order.
func (g *Grammar) Rules() []string {
	names := make([]string, 0, len(g.Declarations))
	for _, d := range g.Declarations {
		names = append(names, d.Name)
	}
	return names
}

func (g *Grammar) String() string {
	lines := make([]string, 0, len(g.Declarations))
	for _, d := range g.Declarations {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

func (d *Declaration) String() string {
	return "<" + d.Name + "> ::= " + d.Body.String()
}

func (a *Alternation) String() string {
	parts := make([]string, 0, len(a.Alternatives))
	for _, s := range a.Alternatives {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " | ")
}

func (s *Sequence) String() string {
	parts := make([]string, 0, len(s.Terms))
	for _, t := range s.Terms {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}

func (t *Term) String() string {
	return t.Factor.String() + t.Quantifier
}

func (f *Factor) String() string {
	switch {
	case f.Literal != nil:
		if strings.Contains(*f.Literal, `"`) {
			return "'" + *f.Literal + "'"
		}
		return `"` + *f.Literal + `"`
	case f.Rule != nil:
		return "<" + *f.Rule + ">"
	case f.Range != nil:
		return "[" + *f.Range + "]"
	case f.Group != nil:
		return "(" + f.Group.String() + ")"
	}
	return ""
}
