package ll

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi & Ullman,
// Section 4.3.3 (Elimination of Left Recursion) and 4.3.4 (Left Factoring).

// generated collects non-terminals introduced by a transformation, in the
// order of their creation.
type generated struct {
	names []string
	prods map[string][]Production
}

func newGenerated() *generated {
	return &generated{prods: make(map[string][]Production)}
}

func (gen *generated) add(A string, prods []Production) {
	gen.names = append(gen.names, A)
	gen.prods[A] = prods
}

func (gen *generated) appendTo(g *Grammar) {
	for _, A := range gen.names {
		g.SetProductions(A, gen.prods[A])
	}
}

// RemoveLeftRecursion eliminates immediate left recursion. For every
// non-terminal A with productions
//
//    A → A α1 | … | A αm | β1 | … | βn
//
// a fresh non-terminal A' is allocated and the productions are replaced by
//
//    A  → β1 A' | … | βn A'
//    A' → α1 A' | … | αm A' | #
//
// Non-terminals without left recursion are copied unchanged, new
// non-terminals are appended after all existing ones.
//
// Indirect left recursion (A → B …, B → A …) is not detected. If A has no
// alternative β, A is left without any productions; Validate will report
// such a grammar.
func RemoveLeftRecursion(g *Grammar) *Grammar {
	result := NewGrammar(g.Name, g.Start())
	result.DeclareTerminals(g.terminals.Symbols()...)
	names := NewNameAllocator(g)
	gen := newGenerated()
	for _, A := range g.NonTerminals() {
		var recursive, base []Production
		for _, p := range g.productions(A) {
			if lead, ok := p.Leading(); ok && lead == A {
				recursive = append(recursive, p[1:].copy())
			} else {
				base = append(base, p.copy())
			}
		}
		if len(recursive) == 0 {
			result.SetProductions(A, base)
			continue
		}
		A1 := names.Fresh(A)
		tracer().Debugf("removing left recursion from %s, introducing %s", A, A1)
		prods := make([]Production, 0, len(base))
		for _, beta := range base {
			prods = append(prods, concat(beta, A1))
		}
		if len(prods) == 0 {
			tracer().Errorf("non-terminal %s has no base case, left with no productions", A)
		}
		result.SetProductions(A, prods)
		tails := make([]Production, 0, len(recursive)+1)
		for _, alpha := range recursive {
			tails = append(tails, concat(alpha, A1))
		}
		tails = append(tails, Production{Epsilon})
		gen.add(A1, tails)
	}
	gen.appendTo(result)
	return result
}

// concat appends sym to p. Epsilon is the empty word, thus # A' is A'.
func concat(p Production, sym string) Production {
	if p.IsEpsilon() {
		return Production{sym}
	}
	return p.with(sym)
}

// ApplyLeftFactoring factors out common leading symbols. Productions of a
// non-terminal A are grouped by their first symbol; every group
//
//    A → a β1 | … | a βn      (n > 1)
//
// is replaced by a single production A → a A' with a fresh non-terminal
//
//    A' → β1 | … | βn
//
// A suffix βi may be empty; it is kept as an empty production.
// Groups are kept in order of their first occurrence. Epsilon productions
// (and empty productions) have no leading symbol and are never factored.
//
// Only a single symbol is factored out per call; the new non-terminals are
// not factored again.
func ApplyLeftFactoring(g *Grammar) *Grammar {
	result := NewGrammar(g.Name, g.Start())
	result.DeclareTerminals(g.terminals.Symbols()...)
	names := NewNameAllocator(g)
	gen := newGenerated()
	for _, A := range g.NonTerminals() {
		prods := make([]Production, 0, len(g.productions(A)))
		for _, grp := range groupByLeadingSymbol(g.productions(A)) {
			if grp.noLead || len(grp.prods) == 1 {
				prods = append(prods, grp.prods...)
				continue
			}
			A1 := names.Fresh(A)
			tracer().Debugf("factoring %d productions of %s on %q, introducing %s",
				len(grp.prods), A, grp.lead, A1)
			prods = append(prods, Production{grp.lead, A1})
			suffixes := make([]Production, len(grp.prods))
			for i, p := range grp.prods {
				suffixes[i] = p[1:].copy()
			}
			gen.add(A1, suffixes)
		}
		result.SetProductions(A, prods)
	}
	gen.appendTo(result)
	return result
}

type prodGroup struct {
	lead   string
	noLead bool
	prods  []Production
}

func groupByLeadingSymbol(prods []Production) []*prodGroup {
	var groups []*prodGroup
	index := make(map[string]*prodGroup)
	var none *prodGroup
	for _, p := range prods {
		lead, ok := p.Leading()
		if !ok || p.IsEpsilon() {
			if none == nil {
				none = &prodGroup{noLead: true}
				groups = append(groups, none)
			}
			none.prods = append(none.prods, p.copy())
			continue
		}
		grp, found := index[lead]
		if !found {
			grp = &prodGroup{lead: lead}
			index[lead] = grp
			groups = append(groups, grp)
		}
		grp.prods = append(grp.prods, p.copy())
	}
	return groups
}

// Normalize prepares a grammar for LL(1) analysis: it removes immediate left
// recursion and then applies left factoring.
func Normalize(g *Grammar) *Grammar {
	return ApplyLeftFactoring(RemoveLeftRecursion(g))
}
