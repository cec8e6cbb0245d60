package nfa

import (
	"fmt"
	"sort"
)

// EndSymbol names the built-in terminal sentinel every rule links to.
const EndSymbol = "END"

type Symbol struct {
	Name  string
	State StateID
}

// SymbolTable maps rule names to their shared entry states. It lives for
// exactly one compilation.
type SymbolTable struct {
	graph   *Graph
	symbols map[string]Symbol
}

func NewSymbolTable(g *Graph) *SymbolTable {
	t := &SymbolTable{graph: g, symbols: make(map[string]Symbol)}
	t.Insert(Symbol{Name: EndSymbol, State: g.newSimple(EndSymbol)})
	return t
}

func (t *SymbolTable) Graph() *Graph { return t.graph }

// Insert adds or replaces the symbol with the same name.
func (t *SymbolTable) Insert(s Symbol) {
	t.symbols[s.Name] = s
}

func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Require is Lookup that fails with an *UndefinedSymbolError.
func (t *SymbolTable) Require(name string) (Symbol, error) {
	s, ok := t.symbols[name]
	if !ok {
		return Symbol{}, &UndefinedSymbolError{Name: name}
	}
	return s, nil
}

func (t *SymbolTable) Len() int { return len(t.symbols) }

func (t *SymbolTable) String() string {
	names := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprint(names)
}
