/*
Package ll implements LL(1) grammar analysis and table driven parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Symbols are plain
strings; two of them are reserved: "#" denotes the empty word (epsilon) and
"$" denotes the end of input.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("E").N("E").T("+").N("T").End()  // E  ->  E + T
    b.LHS("E").N("T").End()                // E  ->  T
    b.LHS("T").T("id").End()               // T  ->  id
    b.LHS("T").T("(").N("E").T(")").End()  // T  ->  ( E )
    g, err := b.Grammar()

The first left-hand side introduced becomes the start symbol.
Whether a symbol is a terminal or a non-terminal is decided by context:
every symbol which appears as a left-hand side is a non-terminal, every
symbol declared with T() (or occuring in a right-hand side without being
a left-hand side) is a terminal.

Grammar Transformation

Predictive parsing cannot deal with left recursion and with alternatives
starting with the same symbol. Normalize rewrites a grammar into an equivalent
one, without touching the original:

    g2 := ll.Normalize(g)   // = ApplyLeftFactoring(RemoveLeftRecursion(g))
    g2.Dump()

    E  -> T E'
    T  -> id
    T  -> ( E )
    E' -> + T E'
    E' -> #

Only immediate left recursion is removed, and factoring looks at a single
leading symbol only.

Static Grammar Analysis

FIRST and FOLLOW sets are computed by fixed-point iteration. Clients
will usually use an Analysis, which computes everything in one go:

    ga := ll.Analyse(g2)
    fmt.Printf("FIRST(E) = %v", ga.First("E"))      // {(, id}
    fmt.Printf("FOLLOW(E') = %v", ga.Follow("E'"))  // {$, )}

Parser Construction

The parse table maps a pair (non-terminal, lookahead) to the productions
to predict. If any cell holds more than one candidate, the grammar is
not LL(1), and a parser will refuse to work with the table.

    table, isLL1 := ga.Table()
    p := ll.NewParser(table, "E")
    accept, err := p.Parse([]string{"id", "+", "id"})

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llkit.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llkit.ll")
}
