package nfa

import "fmt"

// Path records one successful leaf match: input[Start:End] was consumed by
// State.
type Path struct {
	Start, End int
	State      StateID
	Matcher    Matcher
}

func (p Path) String() string {
	return fmt.Sprintf("%d..%d %v", p.Start, p.End, p.Matcher)
}

// Text returns the slice of input covered by p.
func (p Path) Text(input string) string { return input[p.Start:p.End] }

// Match reports whether a single greedy depth-first walk from the start state
// consumes the whole text. Reaching the END sentinel is not required; only
// the consumed length is compared.
func (p *Program) Match(text string) bool {
	w := newWalker(p.graph, text, false)
	return w.walk(p.start, 0) == len(text)
}

// Search walks each direct child of the start state from offset 0 and returns
// every leaf match in traversal order. The walks share one visited set.
func (p *Program) Search(text string) []Path {
	w := newWalker(p.graph, text, true)
	for _, child := range p.graph.State(p.start).Transitions {
		if w.visited[child] {
			continue
		}
		w.visited[child] = true
		w.walk(child, 0)
	}
	return w.paths
}

// Covers reports whether the last path of a search ends at the end of text.
func Covers(paths []Path, text string) bool {
	if len(paths) == 0 {
		return text == ""
	}
	return paths[len(paths)-1].End == len(text)
}

// walker holds the per-call traversal state, so one Program can serve any
// number of concurrent Match and Search calls.
type walker struct {
	graph   *Graph
	input   string
	visited map[StateID]bool
	paths   []Path
	record  bool
}

func newWalker(g *Graph, input string, record bool) *walker {
	return &walker{graph: g, input: input, visited: make(map[StateID]bool), record: record}
}

// frame is one pending state of the depth-first walk. next is the index of
// the next transition to try, or -1 while a back-reference has not been
// followed yet.
type frame struct {
	id       StateID
	pos      int
	consumed int
	next     int
}

// walk returns the number of bytes consumed along one depth-first path from
// id starting at pos. It does not backtrack: a branch that consumes nothing
// simply adds nothing. A successful leaf match clears the visited set so
// quantifier loops can be re-entered at the new offset.
//
// Every child starts at its parent's offset plus what the parent has consumed
// so far, and adds its own consumption back to the parent when it is done.
// Frames live on a heap-allocated stack, so input length does not bound the
// goroutine stack.
func (w *walker) walk(id StateID, pos int) int {
	stack := []frame{w.enter(id, pos)}
	for {
		top := &stack[len(stack)-1]
		s := w.graph.State(top.id)

		child, ok := StateID(0), false
		if top.next < 0 {
			top.next = 0
			child, ok = s.Ref, true
		}
		for !ok && top.next < len(s.Transitions) {
			next := s.Transitions[top.next]
			top.next++
			if w.visited[next] {
				continue
			}
			w.visited[next] = true
			child, ok = next, true
		}

		if ok {
			f := w.enter(child, top.pos+top.consumed)
			stack = append(stack, f)
			continue
		}

		consumed := top.consumed
		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return consumed
		}
		stack[len(stack)-1].consumed += consumed
	}
}

// enter skips blanks and runs the leaf matcher of id at pos.
func (w *walker) enter(id StateID, pos int) frame {
	s := w.graph.State(id)
	f := frame{id: id, pos: pos, consumed: skipBlank(w.input, pos)}

	if s.Matcher != nil {
		at := pos + f.consumed
		if k := s.Matcher.Match(at, w.input); k > 0 {
			if w.record {
				w.paths = append(w.paths, Path{Start: at, End: at + k, State: id, Matcher: s.Matcher})
			}
			clear(w.visited)
			f.consumed += k
		}
	}

	if s.Kind == Declaration {
		f.next = -1
	}
	return f
}

func skipBlank(input string, pos int) int {
	i := pos
	for i < len(input) && (input[i] == ' ' || input[i] == '\t' || input[i] == '\n') {
		i++
	}
	return i - pos
}
