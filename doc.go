/*
Package llkit is a toolbox for LL(1) grammars.

llkit takes a context-free grammar, rewrites it into a form suitable for
predictive parsing, computes FIRST and FOLLOW sets and builds an LL(1)
parse table, which then drives a table-based recognizer. Package
structure is as follows:

■ ll: Package ll implements grammars, grammar transformations (removal of immediate
left recursion, left factoring), FIRST/FOLLOW analysis, parse table construction and
the table driven parser.

■ ll/scanner: Package scanner defines the tokenizer interface the parser consumes,
together with default implementations.

■ ll/grammarfile: Package grammarfile reads grammar definitions from JSON, YAML or EBNF files.

■ cmd/llkit: A command line tool to analyse grammars and to parse input interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package llkit
