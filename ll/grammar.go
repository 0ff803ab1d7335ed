package ll

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Production is the right-hand side of a grammar rule, i.e. an ordered
// sequence of symbols. The single-symbol sequence [#] denotes the epsilon
// production.
//
// Productions created by clients are never empty. Left factoring may produce
// an empty suffix, which is kept as an empty production and treated like
// epsilon by the analysis.
type Production []string

// IsEpsilon is true for the production [#].
func (p Production) IsEpsilon() bool {
	return len(p) == 1 && p[0] == Epsilon
}

// IsEmpty is true for a production without any symbols.
func (p Production) IsEmpty() bool {
	return len(p) == 0
}

// Leading returns the first symbol of p, if there is one.
func (p Production) Leading() (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	return p[0], true
}

// Equals compares two productions symbol by symbol.
func (p Production) Equals(other Production) bool {
	if len(p) != len(other) {
		return false
	}
	for i, sym := range p {
		if other[i] != sym {
			return false
		}
	}
	return true
}

func (p Production) String() string {
	return strings.Join(p, " ")
}

func (p Production) copy() Production {
	c := make(Production, len(p))
	copy(c, p)
	return c
}

// with returns a copy of p with sym appended.
func (p Production) with(sym string) Production {
	c := make(Production, len(p), len(p)+1)
	copy(c, p)
	return append(c, sym)
}

// Rule is a production together with its left-hand side. Rules are
// numbered in grammar order; the serial number identifies a rule within
// a parse table.
type Rule struct {
	Serial int
	LHS    string
	RHS    Production
}

func (r *Rule) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s -> %s", r.LHS, r.RHS))
}

// --- Grammar ---------------------------------------------------------------

// Grammar maps non-terminals to ordered lists of productions. Non-terminals
// are kept in insertion order, which makes every derived structure (FIRST-
// and FOLLOW-sets, parse tables, conflict reports) deterministic.
//
// Grammars are treated as values: transformations return new grammars and
// never modify their input.
type Grammar struct {
	Name      string
	start     string
	rules     *linkedhashmap.Map // non-terminal → []Production
	terminals *SymbolSet         // explicitly declared terminals
}

// NewGrammar creates an empty grammar. If start is empty, the first
// non-terminal added will become the start symbol.
func NewGrammar(name string, start string) *Grammar {
	return &Grammar{
		Name:      name,
		start:     start,
		rules:     linkedhashmap.New(),
		terminals: NewSymbolSet(),
	}
}

// Start returns the start symbol.
func (g *Grammar) Start() string {
	return g.start
}

// SetStart sets the start symbol.
func (g *Grammar) SetStart(start string) {
	g.start = start
}

// Add appends a production for lhs. An empty right-hand side is recorded as
// the epsilon production. Add returns g to allow chaining.
func (g *Grammar) Add(lhs string, rhs ...string) *Grammar {
	p := Production(rhs).copy()
	if len(p) == 0 {
		p = Production{Epsilon}
	}
	g.SetProductions(lhs, append(g.productions(lhs), p))
	return g
}

// SetProductions replaces all productions of lhs. Contrary to Add, an empty
// list of productions as well as empty productions are stored as given.
func (g *Grammar) SetProductions(lhs string, prods []Production) {
	if g.start == "" {
		g.start = lhs
	}
	c := make([]Production, len(prods))
	for i, p := range prods {
		c[i] = p.copy()
	}
	g.rules.Put(lhs, c)
}

// DeclareTerminals marks symbols as terminals.
func (g *Grammar) DeclareTerminals(syms ...string) {
	for _, sym := range syms {
		g.terminals.Add(sym)
	}
}

// IsNonTerminal is true if sym is a left-hand side of g.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, found := g.rules.Get(sym)
	return found
}

// NonTerminals returns all left-hand sides of g in insertion order.
func (g *Grammar) NonTerminals() []string {
	keys := g.rules.Keys()
	nts := make([]string, len(keys))
	for i, k := range keys {
		nts[i] = k.(string)
	}
	return nts
}

// Size returns the number of non-terminals.
func (g *Grammar) Size() int {
	return g.rules.Size()
}

// Productions returns a copy of the productions for lhs.
func (g *Grammar) Productions(lhs string) []Production {
	prods := g.productions(lhs)
	c := make([]Production, len(prods))
	for i, p := range prods {
		c[i] = p.copy()
	}
	return c
}

func (g *Grammar) productions(lhs string) []Production {
	if v, found := g.rules.Get(lhs); found {
		return v.([]Production)
	}
	return nil
}

// Terminals returns the terminals of g: all declared terminals, plus every
// symbol occuring in a right-hand side which is neither a non-terminal nor
// epsilon.
func (g *Grammar) Terminals() *SymbolSet {
	T := g.terminals.Copy()
	g.EachProduction(func(lhs string, p Production) {
		for _, sym := range p {
			if sym != Epsilon && !g.IsNonTerminal(sym) {
				T.Add(sym)
			}
		}
	})
	return T
}

// EachProduction calls f for every production, in grammar order.
func (g *Grammar) EachProduction(f func(lhs string, p Production)) {
	for _, A := range g.NonTerminals() {
		for _, p := range g.productions(A) {
			f(A, p)
		}
	}
}

// Rules returns all productions as numbered rules, in grammar order.
func (g *Grammar) Rules() []*Rule {
	rules := make([]*Rule, 0, g.Size()*2)
	g.EachProduction(func(lhs string, p Production) {
		rules = append(rules, &Rule{Serial: len(rules), LHS: lhs, RHS: p.copy()})
	})
	return rules
}

// Copy returns a deep copy of g.
func (g *Grammar) Copy() *Grammar {
	c := NewGrammar(g.Name, g.start)
	c.terminals = g.terminals.Copy()
	for _, A := range g.NonTerminals() {
		c.SetProductions(A, g.productions(A))
	}
	return c
}

// Equals checks if two grammars have the same start symbol and the same
// productions, in the same order.
func (g *Grammar) Equals(other *Grammar) bool {
	if g.start != other.start || g.Size() != other.Size() {
		return false
	}
	nts, otherNts := g.NonTerminals(), other.NonTerminals()
	for i, A := range nts {
		if otherNts[i] != A {
			return false
		}
		prods, otherProds := g.productions(A), other.productions(A)
		if len(prods) != len(otherProds) {
			return false
		}
		for j, p := range prods {
			if !p.Equals(otherProds[j]) {
				return false
			}
		}
	}
	return true
}

// Dump is a debugging helper, writing the rules of g to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s (start = %s) ------------------", g.Name, g.start)
	for _, r := range g.Rules() {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------")
}

func (g *Grammar) String() string {
	var b bytes.Buffer
	width := 0
	for _, A := range g.NonTerminals() {
		if len(A) > width {
			width = len(A)
		}
	}
	for _, A := range g.NonTerminals() {
		prods := g.productions(A)
		if len(prods) == 0 {
			b.WriteString(fmt.Sprintf("%-*s ->\n", width, A))
			continue
		}
		for i, p := range prods {
			if i == 0 {
				b.WriteString(fmt.Sprintf("%-*s -> %s\n", width, A, p))
			} else {
				b.WriteString(fmt.Sprintf("%-*s | %s\n", width, "", p))
			}
		}
	}
	return b.String()
}

// --- Fingerprint -----------------------------------------------------------

type fingerprintRule struct {
	LHS string
	RHS [][]string
}

type fingerprint struct {
	Start     string
	Rules     []fingerprintRule
	Terminals []string
}

// Fingerprint returns a hash over the content of g (start symbol, rules in
// order, declared terminals). Two grammars with equal fingerprints will
// produce identical analysis results. The grammar's name is not part of
// the fingerprint.
func (g *Grammar) Fingerprint() (string, error) {
	fp := fingerprint{
		Start:     g.start,
		Terminals: g.terminals.Symbols(),
	}
	for _, A := range g.NonTerminals() {
		r := fingerprintRule{LHS: A}
		for _, p := range g.productions(A) {
			r.RHS = append(r.RHS, []string(p))
		}
		fp.Rules = append(fp.Rules, r)
	}
	return structhash.Hash(fp, 1)
}

// --- Validation ------------------------------------------------------------

// GrammarErrors collects all problems found by Validate.
type GrammarErrors []error

func (errs GrammarErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the preconditions the analysis relies on:
// the start symbol has to be a non-terminal, reserved symbols may not be
// used as ordinary symbols, and every non-terminal needs at least one
// production. The latter is violated by removing left recursion from a
// non-terminal without a non-recursive alternative.
//
// Transformations and the analysis do not call Validate; they work on any
// grammar, but results for invalid grammars are of limited use.
func (g *Grammar) Validate() error {
	var errs GrammarErrors
	if g.Size() == 0 {
		return append(errs, fmt.Errorf("grammar %q has no rules", g.Name))
	}
	if !g.IsNonTerminal(g.start) {
		errs = append(errs, fmt.Errorf("start symbol %q is not a non-terminal", g.start))
	}
	for _, A := range g.NonTerminals() {
		if IsReserved(A) {
			errs = append(errs, fmt.Errorf("reserved symbol %q used as non-terminal", A))
		}
		if g.terminals.Contains(A) {
			errs = append(errs, fmt.Errorf("symbol %q declared as terminal and used as non-terminal", A))
		}
		prods := g.productions(A)
		if len(prods) == 0 {
			errs = append(errs, fmt.Errorf("non-terminal %q has no productions", A))
		}
		for _, p := range prods {
			for _, sym := range p {
				if sym == EOF {
					errs = append(errs, fmt.Errorf("end-of-input marker used in production %s -> %s", A, p))
				} else if sym == Epsilon && len(p) > 1 {
					errs = append(errs, fmt.Errorf("epsilon not standing alone in production %s -> %s", A, p))
				}
			}
		}
	}
	for _, t := range g.terminals.Symbols() {
		if IsReserved(t) {
			errs = append(errs, fmt.Errorf("reserved symbol %q declared as terminal", t))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
