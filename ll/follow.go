package ll

import (
	"sort"
)

// FollowSets maps non-terminals to their FOLLOW-sets. Like FIRST-sets, they
// are read-only after construction.
type FollowSets struct {
	sets map[string]*SymbolSet
}

// Of returns FOLLOW(A), or the empty set if A has none.
func (fl *FollowSets) Of(A string) *SymbolSet {
	return fl.of(A).Copy()
}

func (fl *FollowSets) of(A string) *SymbolSet {
	if fl == nil {
		return nil
	}
	return fl.sets[A]
}

// NonTerminals returns all non-terminals with a FOLLOW-set, sorted.
func (fl *FollowSets) NonTerminals() []string {
	nts := make([]string, 0, len(fl.sets))
	for A := range fl.sets {
		nts = append(nts, A)
	}
	sort.Strings(nts)
	return nts
}

// Equals compares two collections of FOLLOW-sets.
func (fl *FollowSets) Equals(other *FollowSets) bool {
	if len(fl.sets) != len(other.sets) {
		return false
	}
	for A, S := range fl.sets {
		if !S.Equals(other.sets[A]) {
			return false
		}
	}
	return true
}

// ComputeFollowSets computes FOLLOW(X) for every non-terminal X in nonterminals.
// FOLLOW(start) contains the end-of-input marker. For every production
// A → α X β with X a non-terminal
//
//  - FIRST(β) without epsilon is added to FOLLOW(X)
//  - if β may derive epsilon (or is empty), FOLLOW(A) is added to FOLLOW(X).
//
// FOLLOW(A) may itself depend on FOLLOW(X). Such mutual dependencies are
// resolved by repeating full passes over all productions until nothing
// changes, never by recursion.
func ComputeFollowSets(start string, g *Grammar, nonterminals []string, first *FirstSets) *FollowSets {
	fl := &FollowSets{sets: make(map[string]*SymbolSet)}
	for _, A := range nonterminals {
		fl.sets[A] = NewSymbolSet()
	}
	if _, ok := fl.sets[start]; !ok {
		fl.sets[start] = NewSymbolSet()
	}
	fl.sets[start].Add(EOF)
	for pass := 1; ; pass++ {
		more := false
		g.EachProduction(func(A string, p Production) {
			for i, X := range p {
				FX, isNT := fl.sets[X]
				if !isNT {
					continue
				}
				addFollowA := X != A
				if beta := p[i+1:]; len(beta) > 0 {
					Fbeta := first.Sequence(beta)
					if FX.Union(Fbeta, Epsilon) {
						more = true
					}
					addFollowA = addFollowA && Fbeta.Contains(Epsilon)
				}
				if addFollowA && FX.Union(fl.sets[A]) {
					more = true
				}
			}
		})
		tracer().Debugf("FOLLOW: pass %d, changed = %v", pass, more)
		if !more {
			break
		}
	}
	return fl
}
