package llkit

import "fmt"

// Reserved symbols. They may not be used as names of terminals or non-terminals.
const (
	Epsilon = "#" // the empty word
	EOF     = "$" // end of input; tokenizers report it as the kind of their final token
)

// --- A general purpose interface for tokens --------------------------------

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an identifier:
//
//    Kind    = "id"        // name of the terminal this token stands for
//    Lexeme  = "counter"   // lexeme how it appeared in the input stream
//    Span    = 67…74       // occured from byte position 67 in the input stream
//    Line    = 3           // 1-based line …
//    Column  = 12          // … and column of the first character
//
// Parsers only ever look at Kind(). The other fields are carried along
// for diagnostics.
type Token interface {
	Kind() string
	Lexeme() string
	Value() interface{}
	Span() Span
	Line() int
	Column() int
}

// Position returns a "line:column" string for a token, or "?" if t is nil.
func Position(t Token) string {
	if t == nil {
		return "?"
	}
	return fmt.Sprintf("%d:%d", t.Line(), t.Column())
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
