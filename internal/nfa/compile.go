package nfa

import (
	"fmt"
	"log/slog"

	"bnfplay/internal/bnf"
)

// Compiler turns grammar syntax trees into programs.
type Compiler struct {
	log *slog.Logger
}

func NewCompiler(log *slog.Logger) *Compiler {
	if log == nil {
		log = slog.Default()
	}
	return &Compiler{log: log}
}

// Compile runs both passes over g with a fresh graph and symbol table.
func (c *Compiler) Compile(g *bnf.Grammar) (*Program, error) {
	table := NewSymbolTable(NewGraph())
	Resolve(g, table)
	p, err := Build(g, table)
	if err != nil {
		return nil, err
	}
	c.log.Debug("grammar compiled", "rules", len(g.Declarations), "symbols", table.Len(), "states", table.graph.Len())
	return p, nil
}

// Compile is shorthand for NewCompiler(nil).Compile(g).
func Compile(g *bnf.Grammar) (*Program, error) {
	return NewCompiler(nil).Compile(g)
}

// CompileString parses and compiles grammar source.
func CompileString(source string) (*Program, error) {
	g, err := bnf.Parse(source)
	if err != nil {
		return nil, err
	}
	return Compile(g)
}

func MustCompile(source string) *Program {
	p, err := CompileString(source)
	if err != nil {
		panic(err)
	}
	return p
}

// Build emits the transition graph for g into table's graph. Every rule name
// referenced by g must already be registered, normally by Resolve.
func Build(g *bnf.Grammar, table *SymbolTable) (*Program, error) {
	b := &builder{graph: table.graph, symbols: table}
	root := b.graph.newSimple("program")
	for _, d := range g.Declarations {
		if _, err := b.declaration(root, d); err != nil {
			return nil, err
		}
	}
	end, err := table.Require(EndSymbol)
	if err != nil {
		return nil, err
	}
	return &Program{graph: b.graph, start: root, end: end.State}, nil
}

type builder struct {
	graph     *Graph
	symbols   *SymbolTable
	junctions int
}

func (b *builder) junction() StateID {
	id := b.graph.newSimple(fmt.Sprintf("ε-%d", b.junctions))
	b.junctions++
	return id
}

func (b *builder) declaration(parent StateID, d *bnf.Declaration) (StateID, error) {
	rule, err := b.symbols.Require(d.Name)
	if err != nil {
		return 0, err
	}
	b.graph.link(parent, rule.State)
	exit, err := b.alternation(rule.State, d.Body)
	if err != nil {
		return 0, fmt.Errorf("rule <%s>: %w", d.Name, err)
	}
	end, err := b.symbols.Require(EndSymbol)
	if err != nil {
		return 0, err
	}
	b.graph.link(exit, end.State)
	return exit, nil
}

// alternation compiles every alternative from parent and joins their exits
// in one convergence junction.
func (b *builder) alternation(parent StateID, a *bnf.Alternation) (StateID, error) {
	exits := make([]StateID, 0, len(a.Alternatives))
	for _, seq := range a.Alternatives {
		exit, err := b.sequence(parent, seq)
		if err != nil {
			return 0, err
		}
		exits = append(exits, exit)
	}
	join := b.junction()
	for _, exit := range exits {
		b.graph.link(exit, join)
	}
	return join, nil
}

func (b *builder) sequence(parent StateID, s *bnf.Sequence) (StateID, error) {
	next := parent
	for _, t := range s.Terms {
		exit, err := b.term(next, t)
		if err != nil {
			return 0, err
		}
		next = exit
	}
	return next, nil
}

// term compiles the factor behind a fresh entry junction and, for a
// quantified factor, adds the exit junction with its skip and loop edges.
func (b *builder) term(parent StateID, t *bnf.Term) (StateID, error) {
	entry := b.junction()
	b.graph.link(parent, entry)
	exit, err := b.factor(entry, t.Factor)
	if err != nil {
		return 0, err
	}
	if t.Quantifier == "" {
		return exit, nil
	}

	next := b.junction()
	switch t.Quantifier {
	case bnf.OneOrMore:
		b.graph.link(exit, next)
		b.graph.link(next, entry)
	case bnf.ZeroOrMore:
		b.graph.link(parent, next)
		b.graph.link(exit, next)
		b.graph.link(next, entry)
	case bnf.Optional:
		b.graph.link(parent, next)
		b.graph.link(exit, next)
	default:
		return 0, fmt.Errorf("unknown quantifier %q", t.Quantifier)
	}
	return next, nil
}

func (b *builder) factor(parent StateID, f *bnf.Factor) (StateID, error) {
	var id StateID
	switch {
	case f.Literal != nil:
		id = b.graph.newLiteral(*f.Literal)
	case f.Range != nil:
		id = b.graph.newRange(*f.Range)
	case f.Rule != nil:
		rule, err := b.symbols.Require(*f.Rule)
		if err != nil {
			return 0, err
		}
		// Link to the shared rule state through a wrapper instead of
		// expanding the rule again.
		id = b.graph.newDeclaration(*f.Rule, rule.State)
	case f.Group != nil:
		return b.alternation(parent, f.Group)
	default:
		return 0, fmt.Errorf("empty factor")
	}
	b.graph.link(parent, id)
	return id, nil
}
