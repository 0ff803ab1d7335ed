package ll

// NameAllocator hands out names for non-terminals introduced by grammar
// transformations. A fresh name is derived from a base name by appending
// primes until it collides neither with a symbol of the original grammar nor
// with a name allocated earlier:
//
//    E  →  E'  →  E''  → …
//
// Allocation is deterministic: the same sequence of requests on the same
// grammar yields the same names.
type NameAllocator struct {
	taken map[string]struct{}
}

// NewNameAllocator creates an allocator for g. All non-terminals and all
// symbols occuring in productions of g are considered taken.
func NewNameAllocator(g *Grammar) *NameAllocator {
	na := &NameAllocator{taken: make(map[string]struct{})}
	na.Reserve(Epsilon, EOF)
	for _, A := range g.NonTerminals() {
		na.Reserve(A)
	}
	g.EachProduction(func(lhs string, p Production) {
		na.Reserve(p...)
	})
	na.Reserve(g.terminals.Symbols()...)
	return na
}

// Reserve marks names as taken.
func (na *NameAllocator) Reserve(names ...string) {
	for _, name := range names {
		na.taken[name] = struct{}{}
	}
}

// Taken checks if a name has been reserved or allocated.
func (na *NameAllocator) Taken(name string) bool {
	_, ok := na.taken[name]
	return ok
}

// Fresh allocates a new name derived from base.
func (na *NameAllocator) Fresh(base string) string {
	name := base + "'"
	for na.Taken(name) {
		name += "'"
	}
	na.Reserve(name)
	return name
}
