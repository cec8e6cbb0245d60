package nfa

import "bnfplay/internal/bnf"

// Resolve registers a fresh entry state for every declared rule so that
// forward and recursive references can be wired by Build. Rule bodies are not
// visited.
func Resolve(g *bnf.Grammar, table *SymbolTable) {
	for _, d := range g.Declarations {
		table.Insert(Symbol{Name: d.Name, State: table.graph.newSimple(d.Name)})
	}
}
