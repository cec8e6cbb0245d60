package nfa

import "fmt"

// StateID addresses a state inside its Graph.
type StateID int

type Kind int

const (
	Simple      Kind = iota // junction, no matcher
	Declaration             // back-reference to a shared rule state
	Literal
	Range
)

func (k Kind) String() string {
	switch k {
	case Simple:
		return "simple"
	case Declaration:
		return "declaration"
	case Literal:
		return "literal"
	case Range:
		return "range"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// State is one node of the automaton. Transitions are kept in insertion
// order, which is the traversal priority.
type State struct {
	ID          StateID
	Kind        Kind
	Name        string
	Ref         StateID // for Declaration states only
	Matcher     Matcher
	Transitions []StateID
}

// Graph is an arena owning every state of one compiled grammar. It may
// contain cycles.
type Graph struct {
	states []State
}

func NewGraph() *Graph { return &Graph{} }

func (g *Graph) add(s State) StateID {
	s.ID = StateID(len(g.states))
	g.states = append(g.states, s)
	return s.ID
}

func (g *Graph) newSimple(name string) StateID {
	return g.add(State{Kind: Simple, Name: name})
}

func (g *Graph) newDeclaration(name string, ref StateID) StateID {
	return g.add(State{Kind: Declaration, Name: name, Ref: ref})
}

func (g *Graph) newLiteral(text string) StateID {
	return g.add(State{Kind: Literal, Name: "text<" + text + ">", Matcher: LiteralMatcher{Text: text}})
}

func (g *Graph) newRange(text string) StateID {
	return g.add(State{Kind: Range, Name: "range<" + text + ">", Matcher: NewRangeMatcher(text)})
}

func (g *Graph) link(from, to StateID) {
	g.states[from].Transitions = append(g.states[from].Transitions, to)
}

// State returns the state with the given id. The returned value must not be
// modified.
func (g *Graph) State(id StateID) *State { return &g.states[id] }

func (g *Graph) Len() int { return len(g.states) }
