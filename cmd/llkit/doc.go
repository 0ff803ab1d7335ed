/*
Command llkit analyses LL(1) grammars and parses input with them.

Grammars are read from JSON, YAML or EBNF files (see package grammarfile).
Before analysis, left recursion is removed and common prefixes are factored
out, unless flag --raw is given.

    llkit analyze expr.json                 # FIRST, FOLLOW, table, conflicts
    llkit table expr.json -o table.html     # export the parse table
    llkit parse expr.json id + id           # parse a sequence of terminals
    llkit parse expr.json -s input.txt      # tokenize and parse a file
    llkit repl expr.json                    # interactive parsing

Trace output is controlled with flag --trace or environment variable
LLKIT_TRACE. Environment variables may be set in a ".env" file in the
current directory, or in a file named by LLKIT_ENV_FILE.

The exit status is non-zero if the input is rejected or if the grammar is
not LL(1).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llkit.cli'
func tracer() tracing.Trace {
	return tracing.Select("llkit.cli")
}
