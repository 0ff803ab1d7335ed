package ll

import (
	"sort"
)

// FirstSets maps grammar symbols to their FIRST-sets. FIRST-sets are
// computed once and are read-only afterwards; accessors return copies.
type FirstSets struct {
	sets map[string]*SymbolSet
}

func newFirstSets() *FirstSets {
	return &FirstSets{sets: make(map[string]*SymbolSet)}
}

// Of returns FIRST(sym). For symbols without a FIRST-set the result is
// the empty set.
func (fs *FirstSets) Of(sym string) *SymbolSet {
	return fs.of(sym).Copy()
}

func (fs *FirstSets) of(sym string) *SymbolSet {
	if fs == nil {
		return nil
	}
	return fs.sets[sym]
}

// Symbols returns all symbols with a FIRST-set, sorted.
func (fs *FirstSets) Symbols() []string {
	syms := make([]string, 0, len(fs.sets))
	for sym := range fs.sets {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}

// Equals compares two collections of FIRST-sets.
func (fs *FirstSets) Equals(other *FirstSets) bool {
	if len(fs.sets) != len(other.sets) {
		return false
	}
	for sym, S := range fs.sets {
		if !S.Equals(other.sets[sym]) {
			return false
		}
	}
	return true
}

// Sequence returns FIRST of a sequence of symbols, using nothing but the
// sets already present. A symbol without a FIRST-set is treated as a terminal.
// If every symbol of seq may derive epsilon, the result contains epsilon.
func (fs *FirstSets) Sequence(seq []string) *SymbolSet {
	result := NewSymbolSet()
	for _, sym := range seq {
		F, found := fs.sets[sym]
		if !found {
			result.Add(sym)
			return result
		}
		result.Union(F, Epsilon)
		if !F.Contains(Epsilon) {
			return result
		}
	}
	result.Add(Epsilon)
	return result
}

// FirstOfSequence computes FIRST(seq) for a sequence of grammar symbols.
// FIRST-sets of non-terminals are taken from cache, which may be incomplete
// during fixed-point iteration.
//
// An empty sequence derives epsilon. Symbols neither in terminals nor
// a non-terminal of g are treated as terminals.
func FirstOfSequence(seq []string, g *Grammar, terminals *SymbolSet, cache *FirstSets) *SymbolSet {
	result := NewSymbolSet()
	if len(seq) == 0 {
		result.Add(Epsilon)
		return result
	}
	for i, sym := range seq {
		switch {
		case terminals.Contains(sym):
			result.Add(sym)
			return result
		case sym == Epsilon:
			result.Add(Epsilon)
			return result
		case g.IsNonTerminal(sym):
			F := cache.of(sym)
			result.Union(F, Epsilon)
			if !F.Contains(Epsilon) {
				return result
			}
			if i == len(seq)-1 {
				result.Add(Epsilon)
			}
		default:
			tracer().Debugf("symbol %q is unknown, treating it as a terminal", sym)
			result.Add(sym)
			return result
		}
	}
	return result
}

// ComputeFirstSets computes FIRST(X) for every terminal, for epsilon and for
// every non-terminal in nonterminals.
//
// FIRST-sets of non-terminals start empty. Every pass computes FIRST of every
// production and adds it to the set of the production's left-hand side.
// Sets only grow and are bounded by the terminals plus epsilon, therefore
// iteration stops after a pass without any change.
func ComputeFirstSets(g *Grammar, nonterminals []string, terminals *SymbolSet) *FirstSets {
	fs := newFirstSets()
	for _, t := range terminals.Symbols() {
		fs.sets[t] = NewSymbolSet(t)
	}
	fs.sets[Epsilon] = NewSymbolSet(Epsilon)
	for _, A := range nonterminals {
		fs.sets[A] = NewSymbolSet()
	}
	for pass := 1; ; pass++ {
		more := false
		for _, A := range nonterminals {
			for _, p := range g.productions(A) {
				F := FirstOfSequence(p, g, terminals, fs)
				if fs.sets[A].Union(F) {
					more = true
				}
			}
		}
		tracer().Debugf("FIRST: pass %d, changed = %v", pass, more)
		if !more {
			break
		}
	}
	return fs
}
