package nfa

// Program marks an entry state and the shared terminal sentinel of a
// compiled graph. Sub-programs share the graph of the program they came from.
type Program struct {
	graph *Graph
	start StateID
	end   StateID
}

func (p *Program) Start() StateID { return p.start }
func (p *Program) End() StateID   { return p.end }
func (p *Program) Graph() *Graph  { return p.graph }

func (p *Program) State(id StateID) *State { return p.graph.State(id) }

// Rules returns the names of the start state's direct children, which for a
// full program are the top-level rules in declaration order.
func (p *Program) Rules() []string {
	var names []string
	seen := map[StateID]bool{}
	for _, id := range p.graph.State(p.start).Transitions {
		if seen[id] {
			continue
		}
		seen[id] = true
		names = append(names, p.graph.State(id).Name)
	}
	return names
}

// DeclarationState returns the entry state of the named top-level rule.
func (p *Program) DeclarationState(name string) (StateID, error) {
	for _, id := range p.graph.State(p.start).Transitions {
		if p.graph.State(id).Name == name {
			return id, nil
		}
	}
	return 0, &RuleNotFoundError{Name: name}
}

// SubProgram returns a program rooted at the named top-level rule, sharing
// the same terminal sentinel, so a single rule can be tested in isolation.
func (p *Program) SubProgram(name string) (*Program, error) {
	id, err := p.DeclarationState(name)
	if err != nil {
		return nil, err
	}
	return &Program{graph: p.graph, start: id, end: p.end}, nil
}
