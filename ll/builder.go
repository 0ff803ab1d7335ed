package ll

import (
	"fmt"
)

// GrammarBuilder is a builder type for grammars.
// Clients create a builder, add rules with LHS(…) and finally call
// Grammar() to receive the grammar.
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()   // S  ->  A a
//    b.LHS("A").T("b").End()          // A  ->  b
//    b.LHS("A").Epsilon()             // A  ->  #
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	g    *Grammar
	errs GrammarErrors
}

// RuleBuilder collects the right-hand side of a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs Production
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{g: NewGrammar(name, "")}
}

// Start sets the start symbol explicitly. Without a call to Start, the
// left-hand side of the first rule becomes the start symbol.
func (gb *GrammarBuilder) Start(s string) *GrammarBuilder {
	gb.g.SetStart(s)
	return gb
}

// LHS starts a new rule for non-terminal s.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	if IsReserved(s) {
		gb.errs = append(gb.errs, fmt.Errorf("reserved symbol %q used as left-hand side", s))
	}
	return &RuleBuilder{gb: gb, lhs: s}
}

// N appends a non-terminal to the right-hand side.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	if IsReserved(s) {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("reserved symbol %q used as non-terminal in rule for %s", s, rb.lhs))
	}
	rb.rhs = append(rb.rhs, s)
	return rb
}

// T appends a terminal to the right-hand side and declares it as a terminal.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	if IsReserved(s) {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("reserved symbol %q used as terminal in rule for %s", s, rb.lhs))
	}
	rb.gb.g.DeclareTerminals(s)
	rb.rhs = append(rb.rhs, s)
	return rb
}

// End closes the rule. A rule without any symbols is an epsilon rule.
func (rb *RuleBuilder) End() *Rule {
	rb.gb.g.Add(rb.lhs, rb.rhs...)
	prods := rb.gb.g.productions(rb.lhs)
	return &Rule{LHS: rb.lhs, RHS: prods[len(prods)-1].copy()}
}

// Epsilon closes the rule as an epsilon rule, i.e. A -> #.
// Symbols added to the rule before are an error.
func (rb *RuleBuilder) Epsilon() *Rule {
	if len(rb.rhs) > 0 {
		rb.gb.errs = append(rb.gb.errs, fmt.Errorf("epsilon rule for %s has symbols %v", rb.lhs, rb.rhs))
	}
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the grammar built so far. It reports every error
// encountered while building, as well as the result of validating the grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g := gb.g.Copy()
	var errs GrammarErrors
	errs = append(errs, gb.errs...)
	if err := g.Validate(); err != nil {
		errs = append(errs, err.(GrammarErrors)...)
	}
	if len(errs) > 0 {
		return g, errs
	}
	return g, nil
}
