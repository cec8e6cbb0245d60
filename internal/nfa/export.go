package nfa

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"bnfplay/internal/dot"
)

// Export clones the graph reachable from the start state into generic
// labeled nodes, breadth first, for visualization. Only transitions are
// followed; back-reference states appear as leaves labeled with the rule
// name. Node ids follow BFS order and child lists contain no duplicates.
func (p *Program) Export() []dot.Node {
	ids := map[StateID]int{p.start: 0}
	nodes := []dot.Node{p.exportNode(p.start, 0)}

	queue := linkedlistqueue.New()
	queue.Enqueue(p.start)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		current := v.(StateID)
		from := ids[current]
		for _, next := range p.graph.State(current).Transitions {
			to, ok := ids[next]
			if !ok {
				to = len(nodes)
				ids[next] = to
				nodes = append(nodes, p.exportNode(next, to))
				queue.Enqueue(next)
			}
			nodes[from].AddChild(to)
		}
	}
	return nodes
}

func (p *Program) exportNode(id StateID, nodeID int) dot.Node {
	n := dot.Node{ID: nodeID, Label: p.graph.State(id).Name}
	if id == p.end {
		n.Shape = dot.ShapeTerminal
	}
	return n
}
