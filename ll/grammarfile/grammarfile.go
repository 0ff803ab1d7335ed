/*
Package grammarfile reads grammar definitions from files.

Three formats are supported, selected by file extension:

JSON (".json") and YAML (".yaml", ".yml") files share a structure:

    {
      "name": "Expressions",
      "start": "E",
      "terminals": ["id"],
      "rules": [
        { "lhs": "E",  "rhs": [["T", "E'"]] },
        { "lhs": "E'", "rhs": [["+", "T", "E'"], ["#"]] },
        …
      ],
      "tokens": [ { "name": "id", "pattern": "[a-z]+" } ],
      "skip": [ "( |\t|\n|\r)+" ],
      "keep_comments": false,
      "unify_strings": false
    }

Symbols which are a left-hand side are non-terminals, all others are terminals.
An empty right-hand side is the epsilon production. Tokens and skip patterns
are optional; they configure a lexmachine tokenizer for the grammar.
Without tokens, input is split by a Go-like tokenizer. Flags keep_comments
and unify_strings configure it.

EBNF (".ebnf") files follow the notation of golang.org/x/exp/ebnf:

    Expr   = Term { ( "+" | "-" ) Term } .
    Term   = Factor [ "*" Factor ] .
    Factor = "(" Expr ")" | id .

Quoted tokens and undefined names are terminals. Productions with a
lower-case name are lexical productions; they are not part of the grammar,
their names are terminals. Groups, options and repetitions are replaced by
fresh non-terminals:

    ( α | β )  →  G  with G → α | β
    [ α ]      →  O  with O → α | #
    { α }      →  R  with R → α R | #

The first production is the start symbol unless the file says otherwise.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/llkit/ll"
	"github.com/npillmayer/llkit/ll/scanner"
	"github.com/npillmayer/llkit/ll/scanner/lexmach"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
)

// tracer traces with key 'llkit.grammarfile'.
func tracer() tracing.Trace {
	return tracing.Select("llkit.grammarfile")
}

// Spec is the content of a grammar file: the grammar and, optionally,
// definitions for a tokenizer.
type Spec struct {
	Grammar *ll.Grammar
	Tokens  []lexmach.TokenDef // token classes, in order of priority
	Skip    []string           // patterns for input to ignore

	// Options for the default Go tokenizer, used if Tokens is empty.
	KeepComments bool // comments are tokens of kind scanner.Comment
	UnifyStrings bool // raw strings and chars are tokens of kind scanner.String
}

// FileError is an error found in a grammar file.
type FileError struct {
	Filename string
	Line     int // 0 if unknown
	Err      error
}

func (e *FileError) Error() string {
	var b strings.Builder
	if e.Filename != "" {
		fmt.Fprintf(&b, "%s: ", e.Filename)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d: ", e.Line)
	}
	fmt.Fprintf(&b, "%v", e.Err)
	return b.String()
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Load reads a grammar file. The format is selected by the file extension.
// The grammar is validated; validation errors are reported as a *FileError
// wrapping ll.GrammarErrors.
func Load(path string) (*Spec, error) {
	var read func(string, io.Reader) (*Spec, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		read = ReadJSON
	case ".yaml", ".yml":
		read = ReadYAML
	case ".ebnf":
		read = func(name string, r io.Reader) (*Spec, error) {
			return ReadEBNF(name, r, "")
		}
	default:
		return nil, &FileError{Filename: path, Err: fmt.Errorf("unknown grammar file format %q", ext)}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	spec, err := read(path, f)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded grammar %s from %s", spec.Grammar.Name, path)
	return spec, nil
}

func validate(filename string, spec *Spec) (*Spec, error) {
	if err := spec.Grammar.Validate(); err != nil {
		return nil, &FileError{Filename: filename, Err: err}
	}
	return spec, nil
}

// Tokenizer creates a tokenizer for input. If the spec defines tokens, a
// lexmachine tokenizer is created, matching the grammar's terminals as
// literals and the token definitions as patterns. Whitespace is skipped
// unless skip patterns are given.
//
// Without token definitions the default Go tokenizer is used. Terminals of
// the grammar are recognized by their lexeme; other tokens are classified
// as scanner.Ident, scanner.Int, etc.
func (spec *Spec) Tokenizer(sourceID string, input string) (scanner.Tokenizer, error) {
	terminals := spec.Grammar.Terminals().Symbols()
	if len(spec.Tokens) == 0 {
		return scanner.GoTokenizer(sourceID, strings.NewReader(input),
			scanner.Terminals(terminals...),
			scanner.SkipComments(!spec.KeepComments),
			scanner.UnifyStrings(spec.UnifyStrings)), nil
	}
	named := make(map[string]bool, len(spec.Tokens))
	for _, def := range spec.Tokens {
		named[def.Name] = true
	}
	var literals []string
	for _, t := range terminals {
		if !named[t] {
			literals = append(literals, t)
		}
	}
	skip := spec.Skip
	if len(skip) == 0 {
		skip = []string{`( |\t|\n|\r)+`}
	}
	init := func(lexer *lexmachine.Lexer) {
		for _, pattern := range skip {
			lexer.Add([]byte(pattern), lexmach.Skip)
		}
	}
	adapter, err := lexmach.NewLMAdapter(init, literals, spec.Tokens)
	if err != nil {
		return nil, fmt.Errorf("cannot create tokenizer for grammar %s: %w", spec.Grammar.Name, err)
	}
	return adapter.Scanner(input)
}
