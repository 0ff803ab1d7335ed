package ll

// Analysis bundles the results of the static analysis of a grammar:
// its terminals and non-terminals, FIRST- and FOLLOW-sets and the LL(1)
// parse table. Create one with Analyse.
//
// The analysis works on a snapshot of the grammar; later changes to the
// grammar are not reflected.
type Analysis struct {
	g            *Grammar
	terminals    *SymbolSet
	nonterminals []string
	first        *FirstSets
	follow       *FollowSets
	table        *ParseTable
}

// Analyse computes FIRST-sets, FOLLOW-sets and the parse table of g.
// Analyse does not transform g; clients will usually call Normalize first.
func Analyse(g *Grammar) *Analysis {
	ga := &Analysis{g: g.Copy()}
	ga.terminals = ga.g.Terminals()
	ga.nonterminals = ga.g.NonTerminals()
	ga.first = ComputeFirstSets(ga.g, ga.nonterminals, ga.terminals)
	ga.follow = ComputeFollowSets(ga.g.Start(), ga.g, ga.nonterminals, ga.first)
	ga.table, _ = BuildTable(ga.g, ga.first, ga.follow, ga.terminals, ga.nonterminals)
	return ga
}

// Grammar returns the analysed grammar.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

// Terminals returns the terminals of the grammar, sorted.
func (ga *Analysis) Terminals() []string {
	return ga.terminals.Symbols()
}

// NonTerminals returns the non-terminals of the grammar, in grammar order.
func (ga *Analysis) NonTerminals() []string {
	return append([]string(nil), ga.nonterminals...)
}

// First returns FIRST(sym).
func (ga *Analysis) First(sym string) *SymbolSet {
	return ga.first.Of(sym)
}

// Follow returns FOLLOW(A).
func (ga *Analysis) Follow(A string) *SymbolSet {
	return ga.follow.Of(A)
}

// FirstSets returns all FIRST-sets.
func (ga *Analysis) FirstSets() *FirstSets {
	return ga.first
}

// FollowSets returns all FOLLOW-sets.
func (ga *Analysis) FollowSets() *FollowSets {
	return ga.follow
}

// Table returns the parse table and whether the grammar is LL(1).
func (ga *Analysis) Table() (*ParseTable, bool) {
	return ga.table, ga.table.IsLL1()
}

// IsLL1 is true if the parse table is free of conflicts.
func (ga *Analysis) IsLL1() bool {
	return ga.table.IsLL1()
}

// Parser creates a parser for the grammar's start symbol.
func (ga *Analysis) Parser(opts ...Option) *Parser {
	return NewParser(ga.table, ga.g.Start(), opts...)
}
