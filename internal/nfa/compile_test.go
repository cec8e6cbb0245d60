package nfa

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnfplay/internal/bnf"
)

const exprGrammar = `<int> ::= [0-9]+
<factor> ::= <int> | "(" <expr> ")"
<term> ::= <factor> (("*" | "/" ) <factor>)*
<expr> ::= <term> (("+" | "-") <term>)*
`

const varListGrammar = `<var_name> ::= ([a-z] | [A-Z] | "_" | [0-9])+
<var_list> ::= <var_name> "," <var_list> | <var_name>
`

func TestSymbolTableSeedsEnd(t *testing.T) {
	g := NewGraph()
	table := NewSymbolTable(g)

	require.Equal(t, 1, table.Len())
	end, ok := table.Lookup(EndSymbol)
	require.True(t, ok)
	assert.Equal(t, EndSymbol, g.State(end.State).Name)
	assert.Equal(t, Simple, g.State(end.State).Kind)
	assert.Empty(t, g.State(end.State).Transitions)
}

func TestSymbolTableInsertReplaces(t *testing.T) {
	g := NewGraph()
	table := NewSymbolTable(g)

	first := g.newSimple("a")
	second := g.newSimple("a")
	table.Insert(Symbol{Name: "a", State: first})
	table.Insert(Symbol{Name: "a", State: second})

	s, ok := table.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, second, s.State)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, "[END a]", table.String())
}

func TestSymbolTableRequire(t *testing.T) {
	table := NewSymbolTable(NewGraph())

	_, err := table.Require("missing")
	var undefined *UndefinedSymbolError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "missing", undefined.Name)
	assert.EqualError(t, err, "undefined symbol <missing>")

	_, ok := table.Lookup("missing")
	assert.False(t, ok)
}

func TestResolveRegistersEveryRule(t *testing.T) {
	g := bnf.MustParse(exprGrammar)
	table := NewSymbolTable(NewGraph())
	Resolve(g, table)

	require.Equal(t, len(g.Declarations)+1, table.Len())
	for _, name := range g.Rules() {
		s, ok := table.Lookup(name)
		require.True(t, ok, name)
		st := table.Graph().State(s.State)
		assert.Equal(t, name, st.Name)
		assert.Equal(t, Simple, st.Kind)
		assert.Empty(t, st.Transitions, "resolve must not wire bodies")
	}
	assert.Equal(t, table.Len(), table.Graph().Len())
}

func TestBuildWithoutResolve(t *testing.T) {
	g := bnf.MustParse(exprGrammar)
	_, err := Build(g, NewSymbolTable(NewGraph()))

	var undefined *UndefinedSymbolError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "int", undefined.Name)
}

func TestCompileUndefinedReference(t *testing.T) {
	p, err := CompileString("<a> ::= \"x\" <b>\n")
	require.Nil(t, p)

	var undefined *UndefinedSymbolError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, "b", undefined.Name)
	assert.Contains(t, err.Error(), "rule <a>")
}

func TestCompileParseError(t *testing.T) {
	_, err := CompileString("<a> \"x\"")
	var unexpected *bnf.UnexpectedTokenError
	require.ErrorAs(t, err, &unexpected)
}

// TestCompileZeroOrMoreWiring pins the exact layout produced for a single
// starred range.
func TestCompileZeroOrMoreWiring(t *testing.T) {
	p := MustCompile("<r> ::= [0-9]*")
	g := p.Graph()

	type state struct {
		Name        string
		Kind        Kind
		Transitions []StateID
	}
	var got []state
	for i := 0; i < g.Len(); i++ {
		s := g.State(StateID(i))
		got = append(got, state{s.Name, s.Kind, s.Transitions})
	}
	want := []state{
		{"END", Simple, nil},
		{"r", Simple, []StateID{3, 5}},
		{"program", Simple, []StateID{1}},
		{"ε-0", Simple, []StateID{4}},
		{"range<0-9>", Range, []StateID{5}},
		{"ε-1", Simple, []StateID{3, 6}},
		{"ε-2", Simple, []StateID{0}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("graph mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StateID(2), p.Start())
	assert.Equal(t, StateID(0), p.End())
}

func TestCompileQuantifierEdges(t *testing.T) {
	cases := map[string]struct {
		loop, skip bool
	}{
		"+": {loop: true},
		"*": {loop: true, skip: true},
		"?": {skip: true},
	}
	for q, tt := range cases {
		t.Run(q, func(t *testing.T) {
			p := MustCompile(`<r> ::= "a"` + q)
			g := p.Graph()
			rule, err := p.DeclarationState("r")
			require.NoError(t, err)

			entry := g.State(rule).Transitions[0]
			leaf := g.State(entry).Transitions[0]
			require.Equal(t, Literal, g.State(leaf).Kind)
			exit := g.State(leaf).Transitions[0]

			assert.Equal(t, tt.loop, contains(g.State(exit).Transitions, entry), "loop edge")
			assert.Equal(t, tt.skip, contains(g.State(rule).Transitions, exit), "skip edge")
		})
	}
}

func TestCompileRecursiveRuleSharesState(t *testing.T) {
	p := MustCompile(varListGrammar)
	g := p.Graph()

	rules := map[string]int{}
	wrappers := map[string]int{}
	for i := 0; i < g.Len(); i++ {
		s := g.State(StateID(i))
		switch {
		case s.Kind == Declaration:
			wrappers[s.Name]++
			assert.Equal(t, s.Name, g.State(s.Ref).Name)
		case s.Kind == Simple && (s.Name == "var_name" || s.Name == "var_list"):
			rules[s.Name]++
		}
	}
	assert.Equal(t, map[string]int{"var_name": 1, "var_list": 1}, rules)
	assert.Equal(t, map[string]int{"var_name": 2, "var_list": 1}, wrappers)
}

func TestCompileIsDeterministic(t *testing.T) {
	a := MustCompile(exprGrammar)
	b := MustCompile(exprGrammar)
	if diff := cmp.Diff(a.Export(), b.Export()); diff != "" {
		t.Errorf("export differs between compilations (-a +b):\n%s", diff)
	}
}

func TestCompilerUsesFreshGraph(t *testing.T) {
	g := bnf.MustParse(exprGrammar)
	c := NewCompiler(nil)
	a, err := c.Compile(g)
	require.NoError(t, err)
	b, err := c.Compile(g)
	require.NoError(t, err)
	assert.NotSame(t, a.Graph(), b.Graph())
	assert.Equal(t, a.Graph().Len(), b.Graph().Len())
}

// A redeclared rule keeps the last registered state, and both bodies are
// wired from it, so they behave like alternatives.
func TestDuplicateDeclarationSharesState(t *testing.T) {
	p := MustCompile("<r> ::= \"a\"\n<r> ::= \"b\"\n")
	assert.Equal(t, []string{"r"}, p.Rules())
	assert.Len(t, p.State(p.Start()).Transitions, 2)
	assert.True(t, p.Match("a"))
	assert.True(t, p.Match("b"))
}

func TestProgramRules(t *testing.T) {
	p := MustCompile(exprGrammar)
	assert.Equal(t, []string{"int", "factor", "term", "expr"}, p.Rules())
}

func TestSubProgram(t *testing.T) {
	p := MustCompile(exprGrammar)

	sub, err := p.SubProgram("term")
	require.NoError(t, err)
	assert.Equal(t, "term", sub.State(sub.Start()).Name)
	assert.Equal(t, p.End(), sub.End())
	assert.Same(t, p.Graph(), sub.Graph())

	_, err = p.SubProgram("nope")
	var notFound *RuleNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.Name)

	// Only direct children of the start state qualify.
	_, err = sub.SubProgram("int")
	require.ErrorAs(t, err, &notFound)
}

func contains(ids []StateID, id StateID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
