package codegen

// scopeNode is one entry in the scope arena: a name→stack-mark mapping
// plus an index to its parent, or -1 at the root. An arena holding
// every scope in a slice, with scopes referring to parents by index,
// sidesteps ownership questions a pointer-chain would raise.
//
// pushes counts every slot pushed directly in this scope, independent
// of vars: redeclaring the same name (`let x := 1. let x := 2.` in one
// scope) still pushes two physical stack slots even though vars ends
// up with a single entry for "x", since bind overwrites rather than
// appends. popScope must retire pushes slots, not len(vars).
type scopeNode struct {
	parent int
	vars   map[string]int
	pushes int
}

// scopes is the arena-indexed scope chain. current always points at
// the innermost live scope; entering/leaving an `if` branch pushes and
// pops that cursor, never the underlying arena slice itself (a left
// scope's node lingers in the arena, unreachable, which is harmless:
// nothing walks the arena except via the parent-pointer chain from
// current).
type scopes struct {
	nodes   []scopeNode
	current int
}

func newScopes() *scopes {
	return &scopes{
		nodes:   []scopeNode{{parent: -1, vars: map[string]int{}}},
		current: 0,
	}
}

// enter pushes a fresh child scope and makes it current.
func (s *scopes) enter() {
	s.nodes = append(s.nodes, scopeNode{parent: s.current, vars: map[string]int{}})
	s.current = len(s.nodes) - 1
}

// leave discards the current scope, returning to its parent. Calling
// leave on the root scope is a programming error and panics.
func (s *scopes) leave() {
	parent := s.nodes[s.current].parent
	if parent < 0 {
		panic("codegen: leave called on the root scope")
	}
	s.current = parent
}

// bind records name as having been pushed at the given stack mark, in
// the current scope. Each call corresponds to exactly one physical
// stack slot, even when it overwrites an existing entry for the same
// name: pushes tracks that count separately from len(vars) so a
// redeclared name doesn't lose a slot when the scope exits.
func (s *scopes) bind(name string, mark int) {
	s.nodes[s.current].vars[name] = mark
	s.nodes[s.current].pushes++
}

// lookup walks the scope chain outward from current, returning the
// stack mark for name and whether it was found at all.
func (s *scopes) lookup(name string) (int, bool) {
	idx := s.current
	for idx >= 0 {
		if mark, ok := s.nodes[idx].vars[name]; ok {
			return mark, true
		}
		idx = s.nodes[idx].parent
	}
	return 0, false
}

// count reports how many slots were pushed directly in the current
// scope (not counting ancestors), the number a scope exit must pop.
// This is the number of bind calls, not the number of distinct names:
// a name rebound in the same scope still occupies a slot per bind.
func (s *scopes) count() int {
	return s.nodes[s.current].pushes
}
