package lexmach

import (
	"strings"
	"unicode"

	"github.com/npillmayer/llkit"
	"github.com/npillmayer/llkit/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'llkit.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llkit.scanner")
}

// TokenDef names a regular expression for a token class.
type TokenDef struct {
	Name    string
	Pattern string
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	kinds []string // token id → kind
}

// NewLMAdapter creates a new lexmachine adapter. It receives an init function
// for additional patterns (e.g., to skip whitespace and comments), a list of
// literals ("[", ";", "if", …) and a list of named token patterns.
// init is called first, then literals and patterns are added in order.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, defs []TokenDef) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(Quote(lit)), MakeToken(adapter.kind(lit)))
	}
	for _, def := range defs {
		adapter.Lexer.Add([]byte(def.Pattern), MakeToken(adapter.kind(def.Name)))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

func (lm *LMAdapter) kind(name string) int {
	lm.kinds = append(lm.kinds, name)
	return len(lm.kinds) - 1
}

// Quote escapes every rune of a literal which is not a letter, a digit or an
// underscore, making it suitable as a lexmachine pattern.
func Quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{scanner: s, kinds: lm.kinds, Error: logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	kinds   []string
	Error   func(error)
	last    scanner.DefaultToken
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
// Input which cannot be matched is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() llkit.Token {
	if lms.scanner == nil {
		return lms.eof()
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
			if ui.FailTC <= ui.StartTC {
				lms.scanner.TC = ui.StartTC + 1
			}
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return lms.eof()
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	lms.last = scanner.MakeDefaultToken(
		lms.kinds[token.Type],
		string(token.Lexeme),
		llkit.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		token.StartLine,
		token.StartColumn,
	)
	return lms.last
}

func (lms *LMScanner) eof() llkit.Token {
	end := lms.last.Span().To()
	return scanner.MakeDefaultToken(scanner.EOF, "", llkit.Span{end, end}, lms.last.Line(), lms.last.Column())
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}
