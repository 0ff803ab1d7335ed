package ll

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/llkit"
	"github.com/npillmayer/llkit/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeExpressionParser(t *testing.T, opts ...Option) *Parser {
	ga := Analyse(makeExpressionGrammar(t))
	require.True(t, ga.IsLL1())
	return ga.Parser(opts...)
}

func TestParseExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t)
	tests := []struct {
		input  string
		accept bool
		kind   RejectKind
		msg    string
	}{
		{"id + id", true, 0, ""},
		{"id +", false, NoRule, "no rule for (T, $)"},
		{"( id * id )", true, 0, ""},
		{"id * + id", false, NoRule, "no rule for (F, +)"},
		{"", false, NoRule, "no rule for (E, $)"},
		{"( id", false, UnexpectedTerminal, "unexpected terminal: expected ), got $"},
		{"id id", false, NoRule, "no rule for (T', id)"},
		{"id ) id", false, UnexpectedTerminal, "unexpected terminal: expected $, got )"},
		{"id + ( id * id ) * id", true, 0, ""},
	}
	for _, test := range tests {
		accept, err := parser.Parse(strings.Fields(test.input))
		assert.Equal(t, test.accept, accept, "input %q", test.input)
		if test.accept {
			assert.NoError(t, err, "input %q", test.input)
			continue
		}
		require.Error(t, err, "input %q", test.input)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, test.kind, perr.Kind, "input %q", test.input)
		assert.Equal(t, test.msg, err.Error(), "input %q", test.input)
	}
}

func TestParseRejectPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t)
	_, err := parser.Parse([]string{"id", "*", "+", "id"})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Position)
	assert.Equal(t, "F", perr.Top)
	assert.Equal(t, "+", perr.Lookahead)
}

func TestParseNotLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	g := NewGrammar("G", "S")
	g.Add("S", "a", "B")
	g.Add("S", "a", "C")
	g.Add("B", "b")
	g.Add("C", "c")
	steps := 0
	parser := Analyse(g).Parser(Trace(func(Step) { steps++ }))
	accept, err := parser.Parse([]string{"a", "b"})
	assert.False(t, accept)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotLL1))
	assert.Equal(t, "grammar is not LL(1)", err.Error())
	assert.Zero(t, steps, "parsing has been attempted")
}

func TestParseUnknownSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	g := NewGrammar("G", "S")
	g.Add("S", "a", "X")
	T := NewSymbolSet("a")
	nts := g.NonTerminals()
	first := ComputeFirstSets(g, nts, T)
	follow := ComputeFollowSets("S", g, nts, first)
	table, ok := BuildTable(g, first, follow, T, nts)
	require.True(t, ok)
	accept, err := NewParser(table, "").Parse([]string{"a", "x"})
	assert.False(t, accept)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, UnknownSymbol, perr.Kind)
	assert.Equal(t, "unknown symbol on stack: X", err.Error())
}

func TestParseSteps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	var steps []Step
	parser := makeExpressionParser(t, Trace(func(s Step) {
		steps = append(steps, s)
	}))
	accept, err := parser.Parse([]string{"id"})
	require.NoError(t, err)
	require.True(t, accept)
	var actions []string
	for _, s := range steps {
		actions = append(actions, s.Action.String())
	}
	assert.Equal(t, []string{"expand", "expand", "expand", "match", "expand", "expand", "accept"}, actions)
	assert.Equal(t, []string{"E", "$"}, steps[0].Stack)
	assert.Equal(t, []string{"id", "$"}, steps[0].Input)
	assert.Equal(t, "E -> T E'", steps[0].Rule.String())
	assert.Equal(t, []string{"$"}, steps[len(steps)-1].Stack)
	assert.Equal(t, []string{"$"}, steps[len(steps)-1].Input)
	var derivation []string
	for _, r := range parser.Derivation() {
		derivation = append(derivation, r.String())
	}
	assert.Equal(t, []string{"E -> T E'", "T -> F T'", "F -> id", "T' -> #", "E' -> #"}, derivation)
	assert.Nil(t, parser.Tree(), "tree generation is off")
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t, GenerateTree(true))
	accept, err := parser.Parse([]string{"id", "+", "id"})
	require.NoError(t, err)
	require.True(t, accept)
	root := parser.Tree()
	require.NotNil(t, root)
	assert.Equal(t, "E", root.Symbol)
	assert.Equal(t, "E -> T E'", root.Rule.String())
	assert.Equal(t, "id + id", root.Lexeme())
	assert.Equal(t, uint64(0), root.Span().From())
	assert.Equal(t, uint64(3), root.Span().To())
	var leaves []string
	root.Walk(func(n *Node, depth int) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n.Symbol)
		}
		return true
	})
	assert.Equal(t, []string{"id", "#", "+", "id", "#", "#"}, leaves)
	//
	_, err = parser.Parse([]string{"id", "+"})
	assert.Error(t, err)
	assert.Nil(t, parser.Tree())
}

func TestParseTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t, GenerateTree(true))
	tokenizer := scanner.GoTokenizer("test", strings.NewReader("a * (b + c)"),
		scanner.Alias(scanner.Ident, "id"))
	accept, err := parser.ParseTokens(tokenizer)
	require.NoError(t, err)
	assert.True(t, accept)
	assert.Equal(t, "a * ( b + c )", parser.Tree().Lexeme())
	//
	tokenizer = scanner.GoTokenizer("test", strings.NewReader("a +\n  *"),
		scanner.Alias(scanner.Ident, "id"))
	accept, err = parser.ParseTokens(tokenizer)
	assert.False(t, accept)
	require.Error(t, err)
	assert.Equal(t, "2:3: no rule for (T, *)", err.Error())
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "*", perr.Token.Lexeme())
	assert.Equal(t, 2, perr.Position)
}

func TestParseReservedInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t)
	tests := []struct {
		input    []string
		position int
		msg      string
	}{
		{[]string{"id", "$", "id", "id"}, 1, "reserved symbol in input: $"},
		{[]string{"id", "$"}, 1, "reserved symbol in input: $"},
		{[]string{"$"}, 0, "reserved symbol in input: $"},
		{[]string{"id", "+", "#", "id"}, 2, "reserved symbol in input: #"},
	}
	for _, test := range tests {
		accept, err := parser.Parse(test.input)
		assert.False(t, accept, "input %v", test.input)
		require.Error(t, err, "input %v", test.input)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, ReservedInput, perr.Kind, "input %v", test.input)
		assert.Equal(t, test.position, perr.Position, "input %v", test.input)
		assert.Equal(t, test.msg, err.Error(), "input %v", test.input)
	}
}

func TestParseTokensWithDollar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t)
	tokenizer := scanner.GoTokenizer("test", strings.NewReader("a $ b c d"),
		scanner.Alias(scanner.Ident, "id"))
	var scanErrors []error
	tokenizer.SetErrorHandler(func(e error) { scanErrors = append(scanErrors, e) })
	accept, err := parser.ParseTokens(tokenizer)
	assert.False(t, accept)
	require.Error(t, err)
	assert.Equal(t, "1:3: no rule for (T', illegal)", err.Error())
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, NoRule, perr.Kind)
	assert.Equal(t, 1, perr.Position)
	assert.Len(t, scanErrors, 1)
}

// dollarTokens delivers a token of kind EOF read from the input, then the
// real end of input.
type dollarTokens struct {
	tokens []scanner.DefaultToken
}

func (d *dollarTokens) NextToken() llkit.Token {
	if len(d.tokens) == 0 {
		return scanner.MakeDefaultToken(EOF, "", llkit.Span{}, 0, 0)
	}
	tok := d.tokens[0]
	d.tokens = d.tokens[1:]
	return tok
}

func (d *dollarTokens) SetErrorHandler(func(error)) {}

func TestParseTokensReservedKind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	parser := makeExpressionParser(t)
	src := &dollarTokens{tokens: []scanner.DefaultToken{
		scanner.MakeDefaultToken("id", "a", llkit.Span{0, 1}, 1, 1),
		scanner.MakeDefaultToken(EOF, "$", llkit.Span{2, 3}, 1, 3),
		scanner.MakeDefaultToken("id", "b", llkit.Span{4, 5}, 1, 5),
	}}
	accept, err := parser.ParseTokens(src)
	assert.False(t, accept)
	require.Error(t, err)
	assert.Equal(t, "1:3: reserved symbol in input: $", err.Error())
}
