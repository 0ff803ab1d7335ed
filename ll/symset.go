package ll

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/llkit"
)

// Reserved symbols.
const (
	Epsilon = llkit.Epsilon // the empty word
	EOF     = llkit.EOF     // end of input
)

// IsReserved is true for the epsilon and the end-of-input marker.
func IsReserved(sym string) bool {
	return sym == Epsilon || sym == EOF
}

// SymbolSet is a set of grammar symbols. Iteration order is lexicographic,
// which makes FIRST- and FOLLOW-sets print in a stable way.
//
// The zero value is not usable, create sets with NewSymbolSet. Read-only
// methods accept a nil receiver and treat it as the empty set.
type SymbolSet struct {
	set *treeset.Set
}

// NewSymbolSet creates a set containing syms.
func NewSymbolSet(syms ...string) *SymbolSet {
	S := &SymbolSet{set: treeset.NewWith(utils.StringComparator)}
	for _, sym := range syms {
		S.set.Add(sym)
	}
	return S
}

// Add adds a symbol and reports whether the set changed.
func (S *SymbolSet) Add(sym string) bool {
	if S.set.Contains(sym) {
		return false
	}
	S.set.Add(sym)
	return true
}

// Union adds every member of other, with the exception of symbols in except.
// It reports whether S changed.
func (S *SymbolSet) Union(other *SymbolSet, except ...string) bool {
	if other == nil {
		return false
	}
	changed := false
	for _, sym := range other.Symbols() {
		if contains(except, sym) {
			continue
		}
		if S.Add(sym) {
			changed = true
		}
	}
	return changed
}

// Contains checks for membership of sym.
func (S *SymbolSet) Contains(sym string) bool {
	if S == nil {
		return false
	}
	return S.set.Contains(sym)
}

// Size returns the number of members.
func (S *SymbolSet) Size() int {
	if S == nil {
		return 0
	}
	return S.set.Size()
}

// Empty is true for a set without members.
func (S *SymbolSet) Empty() bool {
	return S.Size() == 0
}

// Symbols returns the members in lexicographic order.
func (S *SymbolSet) Symbols() []string {
	if S == nil {
		return []string{}
	}
	syms := make([]string, 0, S.set.Size())
	it := S.set.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(string))
	}
	return syms
}

// Copy returns an independent copy of S.
func (S *SymbolSet) Copy() *SymbolSet {
	return NewSymbolSet(S.Symbols()...)
}

// Equals checks if two sets have the same members.
func (S *SymbolSet) Equals(other *SymbolSet) bool {
	if S.Size() != other.Size() {
		return false
	}
	for _, sym := range S.Symbols() {
		if !other.Contains(sym) {
			return false
		}
	}
	return true
}

func (S *SymbolSet) String() string {
	return "{" + strings.Join(S.Symbols(), ", ") + "}"
}

func contains(syms []string, sym string) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
