/*
Package scanner defines an interface for scanners to be used with parsers of package ll.

Parsers consume a sequence of tokens, each carrying the name of a terminal
(its kind), the lexeme and a position. Two default scanner implementations
are provided: (1) a thin wrapper over the Go std lib 'text/scanner', and
(2) an adapter for lexmachine, living in sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/npillmayer/llkit"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llkit.scanner")
}

// EOF is the kind of the token signalling the end of input.
const EOF = llkit.EOF

// Kinds of tokens produced by the default tokenizer for Go-like token classes.
// Single-character operators and delimiters have their lexeme as kind.
// Lexemes '$' and '#' are reserved; tokens for them are of kind Illegal.
const (
	Ident   = "ident"
	Int     = "int"
	Float   = "float"
	Char    = "char"
	String  = "string"
	Comment = "comment"
	Illegal = "illegal"
)

// Tokenizer is a scanner interface. After the input is exhausted, NextToken
// returns tokens of kind EOF with an empty lexeme (see IsEOF).
type Tokenizer interface {
	NextToken() llkit.Token
	SetErrorHandler(func(error))
}

// Classifier decides on the kind of a token, given the text/scanner token
// class and the lexeme.
type Classifier func(class rune, lexeme string) string

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune                // last token this scanner has produced
	Error        func(error)         // error handler
	unifyStrings bool                // convert single chars to strings
	terminals    map[string]struct{} // lexemes which are terminals on their own
	aliases      map[string]string   // token class → kind
	classify     Classifier
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		terminals: make(map[string]struct{}),
		aliases:   make(map[string]string),
	}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	t.classify = t.defaultClassifier
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() llkit.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return DefaultToken{
			kind: EOF,
			span: llkit.Span{uint64(t.Position.Offset), uint64(t.Position.Offset)},
			line: t.Position.Line,
			col:  t.Position.Column,
		}
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	lexeme := t.TokenText()
	kind := t.classify(t.lastToken, lexeme)
	if kind == llkit.EOF || kind == llkit.Epsilon {
		t.Error(fmt.Errorf("%s: reserved symbol %q in input", t.Position, lexeme))
		kind = Illegal
	}
	return DefaultToken{
		kind:   kind,
		lexeme: lexeme,
		Val:    tokenValue(t.lastToken, lexeme),
		span:   llkit.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		line:   t.Position.Line,
		col:    t.Position.Column,
	}
}

func (t *DefaultTokenizer) defaultClassifier(class rune, lexeme string) string {
	if _, ok := t.terminals[lexeme]; ok {
		return lexeme
	}
	var kind string
	switch class {
	case scanner.Ident:
		kind = Ident
	case scanner.Int:
		kind = Int
	case scanner.Float:
		kind = Float
	case scanner.Char:
		kind = Char
	case scanner.String, scanner.RawString:
		kind = String
	case scanner.Comment:
		kind = Comment
	default:
		return lexeme
	}
	if alias, ok := t.aliases[kind]; ok {
		return alias
	}
	return kind
}

// tokenValue converts literals: integers to int64, floats to float64 and
// strings and chars to their unquoted string.
func tokenValue(class rune, lexeme string) interface{} {
	switch class {
	case scanner.Int:
		if n, err := strconv.ParseInt(lexeme, 0, 64); err == nil {
			return n
		}
	case scanner.Float:
		if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
			return f
		}
	case scanner.String, scanner.RawString, scanner.Char:
		if s, err := strconv.Unquote(lexeme); err == nil {
			return s
		}
	}
	return nil
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   string
	lexeme string
	Val    interface{} // value of a literal, or nil
	span   llkit.Span
	line   int
	col    int
}

var _ llkit.Token = DefaultToken{}

// MakeDefaultToken creates a token.
func MakeDefaultToken(kind string, lexeme string, span llkit.Span, line, col int) DefaultToken {
	return DefaultToken{
		kind:   kind,
		lexeme: lexeme,
		span:   span,
		line:   line,
		col:    col,
	}
}

func (t DefaultToken) Kind() string {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() llkit.Span {
	return t.span
}

func (t DefaultToken) Line() int {
	return t.line
}

func (t DefaultToken) Column() int {
	return t.col
}

func (t DefaultToken) String() string {
	if t.kind == EOF {
		return "<eof>"
	}
	return fmt.Sprintf("%s(%q)@%d:%d", t.kind, t.lexeme, t.line, t.col)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Terminals lists lexemes which are terminals by themselves, e.g. keywords.
// Tokens with such a lexeme get the lexeme as their kind.
func Terminals(lexemes ...string) Option {
	return func(t *DefaultTokenizer) {
		for _, l := range lexemes {
			t.terminals[l] = struct{}{}
		}
	}
}

// Alias renames the kind of a token class, e.g. Alias(Ident, "id").
func Alias(class string, kind string) Option {
	return func(t *DefaultTokenizer) {
		t.aliases[class] = kind
	}
}

// Classify replaces the default classification of tokens.
func Classify(c Classifier) Option {
	return func(t *DefaultTokenizer) {
		if c != nil {
			t.classify = c
		}
	}
}

// --- Utilities -------------------------------------------------------------

// IsEOF is true for the token a tokenizer returns at the end of input. A
// token of kind EOF with a lexeme has been read from the input.
func IsEOF(tok llkit.Token) bool {
	return tok != nil && tok.Kind() == EOF && tok.Lexeme() == ""
}

// Drain reads tokens from a tokenizer until end of input. The EOF token is
// not part of the result.
func Drain(t Tokenizer) []llkit.Token {
	var tokens []llkit.Token
	for {
		tok := t.NextToken()
		if tok == nil || IsEOF(tok) {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Kinds extracts the kinds from a sequence of tokens.
func Kinds(tokens []llkit.Token) []string {
	kinds := make([]string, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind()
	}
	return kinds
}

