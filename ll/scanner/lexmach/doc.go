/*
Package lexmach provides a tokenizer built on lexmachine.

Package lexmach is an adapter for lexmachine (https://github.com/timtadh/lexmachine).
The adapter is configured with literals (fixed strings like "(" or "if") and with
named token patterns (regular expressions like "[a-z]+" for an identifier).
The resulting scanner implements the scanner.Tokenizer interface: every token
carries the name of the literal or pattern which matched as its kind.

Example:

    init := func(lexer *lexmachine.Lexer) {
        lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)  // skip whitespace
    }
    adapter, err := lexmach.NewLMAdapter(init,
        []string{"+", "*", "(", ")"},
        []lexmach.TokenDef{{Name: "id", Pattern: `[a-z]+`}})
    sc, err := adapter.Scanner("a + (b * c)")
    token := sc.NextToken()     // kind "id", lexeme "a"

For literals, lexmachine prefers the longest match; literals win over
patterns for matches of the same length.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
