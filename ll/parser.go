package ll

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/llkit"
	"github.com/npillmayer/llkit/ll/scanner"
)

// ErrNotLL1 is reported by parsers constructed from a table with conflicts.
var ErrNotLL1 = errors.New("grammar is not LL(1)")

// RejectKind categorizes the reason a parser rejected its input.
type RejectKind int

// Categories of parse rejections.
const (
	NotLL1             RejectKind = iota + 1 // table has conflicts; parsing has not been attempted
	UnexpectedTerminal                       // terminal on stack differs from lookahead
	NoRule                                   // empty table cell for (non-terminal, lookahead)
	UnknownSymbol                            // stack symbol is neither terminal nor non-terminal
	ReservedInput                            // '$' or '#' in the input, before its end
)

func (k RejectKind) String() string {
	switch k {
	case NotLL1:
		return "not-LL(1)"
	case UnexpectedTerminal:
		return "unexpected-terminal"
	case NoRule:
		return "no-rule"
	case UnknownSymbol:
		return "unknown-symbol"
	case ReservedInput:
		return "reserved-input"
	}
	return fmt.Sprintf("RejectKind(%d)", int(k))
}

// ParseError is the error returned for rejected input. Clients may switch
// on Kind to find out what went wrong.
type ParseError struct {
	Kind      RejectKind
	Top       string      // symbol on top of the stack
	Lookahead string      // kind of the lookahead token
	Position  int         // index of the lookahead token in the input, 0-based
	Token     llkit.Token // the lookahead token
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case NotLL1:
		return ErrNotLL1.Error()
	case UnexpectedTerminal:
		msg = fmt.Sprintf("unexpected terminal: expected %s, got %s", e.Top, e.Lookahead)
	case NoRule:
		msg = fmt.Sprintf("no rule for (%s, %s)", e.Top, e.Lookahead)
	case UnknownSymbol:
		msg = fmt.Sprintf("unknown symbol on stack: %s", e.Top)
	case ReservedInput:
		msg = fmt.Sprintf("reserved symbol in input: %s", e.Lookahead)
	default:
		msg = "parse error"
	}
	if e.Token != nil && e.Token.Line() > 0 {
		return llkit.Position(e.Token) + ": " + msg
	}
	return msg
}

// Is makes errors.Is(err, ErrNotLL1) work for parse errors.
func (e *ParseError) Is(target error) bool {
	return target == ErrNotLL1 && e.Kind == NotLL1
}

// --- Parser ----------------------------------------------------------------

// Action is the kind of a parser transition.
type Action int

// Parser transitions.
const (
	Expand Action = iota
	Match
	Accept
	Reject
)

func (a Action) String() string {
	switch a {
	case Expand:
		return "expand"
	case Match:
		return "match"
	case Accept:
		return "accept"
	case Reject:
		return "reject"
	}
	return "?"
}

// Step describes a single transition of a parser, reported to a listener
// installed with option Trace. Stack lists the stack symbols top first.
// Input lists the kinds of the pending input tokens, lookahead first; for
// tokenizer input this is the lookahead only.
type Step struct {
	Stack  []string
	Input  []string
	Action Action
	Rule   *Rule // rule expanded, for Expand steps
}

func (s Step) String() string {
	switch s.Action {
	case Expand:
		return fmt.Sprintf("%v | %v | expand %v", s.Stack, s.Input, s.Rule)
	default:
		return fmt.Sprintf("%v | %v | %v", s.Stack, s.Input, s.Action)
	}
}

// Parser is a table driven LL(1) parser. Create one with NewParser.
// A parser may be used for more than one parse, but not concurrently.
type Parser struct {
	table      *ParseTable
	start      string
	listener   func(Step)
	genTree    bool
	derivation []*Rule
	tree       *Node
}

// Option configures a parser.
type Option func(p *Parser)

// Trace installs a listener which is called for every parser transition.
func Trace(listener func(Step)) Option {
	return func(p *Parser) {
		p.listener = listener
	}
}

// GenerateTree makes the parser build a parse tree, which may be retrieved
// with Tree after an accepted parse.
func GenerateTree(b bool) Option {
	return func(p *Parser) {
		p.genTree = b
	}
}

// NewParser creates a parser for a parse table. If start is empty, the first
// non-terminal of the table will be used as start symbol.
func NewParser(table *ParseTable, start string, opts ...Option) *Parser {
	if start == "" && table != nil && len(table.nonterminals) > 0 {
		start = table.nonterminals[0]
	}
	p := &Parser{table: table, start: start}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Derivation returns the rules expanded during the last parse, in order.
// For an accepted input this is its leftmost derivation.
func (p *Parser) Derivation() []*Rule {
	return append([]*Rule(nil), p.derivation...)
}

// Tree returns the parse tree of the last parse. It is nil if the input has
// been rejected or if tree generation is switched off.
func (p *Parser) Tree() *Node {
	return p.tree
}

// Parse runs the parser on a sequence of terminals. The end-of-input marker
// is implied and should not be part of input.
//
// Parse returns true if the input has been accepted. Otherwise the error is a
// *ParseError.
func (p *Parser) Parse(input []string) (bool, error) {
	return p.parse(&sliceSource{kinds: input})
}

// ParseTokens runs the parser on tokens from a tokenizer. Token kinds are
// interpreted as terminals. Rejections carry the offending token.
func (p *Parser) ParseTokens(tokenizer scanner.Tokenizer) (bool, error) {
	return p.parse(&tokenizerSource{tokenizer: tokenizer})
}

// We store symbols on the parse stack, together with their tree node, if any.
type stackEntry struct {
	sym  string
	node *Node
}

func (p *Parser) parse(src tokenSource) (bool, error) {
	tracer().Debugf("~~~ parse ~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	p.derivation, p.tree = nil, nil
	if p.table == nil {
		return false, errors.New("LL(1) parser not initialized")
	}
	if !p.table.IsLL1() {
		tracer().Errorf("refusing to parse with a conflicting table")
		return false, &ParseError{Kind: NotLL1}
	}
	root := &Node{Symbol: p.start}
	stack := arraystack.New()
	stack.Push(stackEntry{sym: EOF})
	stack.Push(stackEntry{sym: p.start, node: root})
	la, atEnd := src.next()
	pos := 0
	for {
		v, _ := stack.Peek()
		top := v.(stackEntry)
		a := la.Kind()
		if !atEnd && IsReserved(a) {
			return p.reject(stack, src, &ParseError{Kind: ReservedInput, Top: top.sym,
				Lookahead: a, Position: pos, Token: la})
		}
		switch {
		case top.sym == EOF && atEnd:
			p.notify(stack, src, Accept, nil)
			tracer().Debugf("accept")
			if p.genTree {
				p.tree = root
			}
			return true, nil
		case p.table.IsNonTerminal(top.sym):
			rule, ok := p.table.Predict(top.sym, a)
			if !ok {
				return p.reject(stack, src, &ParseError{Kind: NoRule, Top: top.sym,
					Lookahead: a, Position: pos, Token: la})
			}
			p.notify(stack, src, Expand, rule)
			tracer().Debugf("expand %v", rule)
			stack.Pop()
			p.derivation = append(p.derivation, rule)
			var children []*Node
			if p.genTree {
				children = make([]*Node, len(rule.RHS))
				for i, sym := range rule.RHS {
					children[i] = &Node{Symbol: sym}
				}
				top.node.Rule = rule
				top.node.Children = children
			}
			for i := len(rule.RHS) - 1; i >= 0; i-- {
				if rule.RHS[i] == Epsilon {
					continue
				}
				entry := stackEntry{sym: rule.RHS[i]}
				if p.genTree {
					entry.node = children[i]
				}
				stack.Push(entry)
			}
		case p.table.IsTerminal(top.sym):
			if top.sym != a {
				return p.reject(stack, src, &ParseError{Kind: UnexpectedTerminal, Top: top.sym,
					Lookahead: a, Position: pos, Token: la})
			}
			p.notify(stack, src, Match, nil)
			tracer().Debugf("match %s", a)
			stack.Pop()
			if top.node != nil {
				top.node.Token = la
			}
			la, atEnd = src.next()
			pos++
		default:
			return p.reject(stack, src, &ParseError{Kind: UnknownSymbol, Top: top.sym,
				Lookahead: a, Position: pos, Token: la})
		}
	}
}

func (p *Parser) reject(stack *arraystack.Stack, src tokenSource, err *ParseError) (bool, error) {
	p.notify(stack, src, Reject, nil)
	tracer().Infof("reject: %v", err)
	return false, err
}

func (p *Parser) notify(stack *arraystack.Stack, src tokenSource, action Action, rule *Rule) {
	if p.listener == nil {
		return
	}
	values := stack.Values()
	syms := make([]string, len(values))
	for i, v := range values {
		syms[i] = v.(stackEntry).sym
	}
	p.listener(Step{Stack: syms, Input: src.pending(), Action: action, Rule: rule})
}

// --- Input -----------------------------------------------------------------

// tokenSource delivers the input to the parser, token by token. After the
// input is exhausted, next returns tokens of kind EOF and atEnd is set.
// Only atEnd marks the end of input; a token of kind EOF with atEnd unset
// stems from the input itself.
type tokenSource interface {
	next() (tok llkit.Token, atEnd bool)
	pending() []string
}

type sliceSource struct {
	kinds []string
	pos   int // position of the lookahead
	la    llkit.Token
}

func (s *sliceSource) next() (llkit.Token, bool) {
	if s.la != nil {
		s.pos++
	}
	if s.pos >= len(s.kinds) {
		s.la = scanner.MakeDefaultToken(EOF, "", llkit.Span{uint64(len(s.kinds)), uint64(len(s.kinds))}, 0, 0)
		s.pos = len(s.kinds)
		return s.la, true
	}
	kind := s.kinds[s.pos]
	s.la = scanner.MakeDefaultToken(kind, kind, llkit.Span{uint64(s.pos), uint64(s.pos + 1)}, 0, 0)
	return s.la, false
}

func (s *sliceSource) pending() []string {
	rest := make([]string, 0, len(s.kinds)-s.pos+1)
	rest = append(rest, s.kinds[s.pos:]...)
	return append(rest, EOF)
}

type tokenizerSource struct {
	tokenizer scanner.Tokenizer
	la        llkit.Token
}

func (s *tokenizerSource) next() (llkit.Token, bool) {
	s.la = s.tokenizer.NextToken()
	if s.la == nil {
		s.la = scanner.MakeDefaultToken(EOF, "", llkit.Span{}, 0, 0)
		return s.la, true
	}
	return s.la, scanner.IsEOF(s.la)
}

func (s *tokenizerSource) pending() []string {
	if s.la == nil {
		return nil
	}
	return []string{s.la.Kind()}
}
