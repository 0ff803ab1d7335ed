package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	r := b.LHS("S").N("A").T("a").End()
	assert.Equal(t, "S -> A a", r.String())
	b.LHS("A").T("b").End()
	r = b.LHS("A").Epsilon()
	assert.Equal(t, "A -> #", r.String())
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, "S", g.Start())
	assert.Equal(t, []string{"S", "A"}, g.NonTerminals())
	assert.Equal(t, []string{"a", "b"}, g.Terminals().Symbols())
	assert.Equal(t, 3, len(g.Rules()))
	assert.Equal(t, "S -> A a\nA -> b\n  | #\n", g.String())
	g.Dump()
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("$").End()
	b.LHS("#").T("a").End()
	b.LHS("A").T("a").Epsilon()
	_, err := b.Grammar()
	require.Error(t, err)
	errs, ok := err.(GrammarErrors)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(errs), 3)
	assert.Contains(t, err.Error(), `reserved symbol "$" used as terminal`)
	assert.Contains(t, err.Error(), `reserved symbol "#" used as left-hand side`)
	assert.Contains(t, err.Error(), "epsilon rule for A has symbols")
}

func TestValidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	g := NewGrammar("empty", "S")
	assert.EqualError(t, g.Validate(), `grammar "empty" has no rules`)
	//
	g = NewGrammar("G", "X")
	g.Add("S", "a", "#")
	g.Add("a", "b")
	g.DeclareTerminals("a")
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `start symbol "X" is not a non-terminal`)
	assert.Contains(t, err.Error(), "epsilon not standing alone in production S -> a #")
	assert.Contains(t, err.Error(), `symbol "a" declared as terminal and used as non-terminal`)
	//
	assert.NoError(t, makeExpressionGrammar(t).Validate())
}

func TestGrammarCopyAndEquals(t *testing.T) {
	g := makeExpressionGrammar(t)
	c := g.Copy()
	assert.True(t, g.Equals(c))
	c.Add("F", "num")
	assert.False(t, g.Equals(c))
	assert.Len(t, g.Productions("F"), 2)
	// clients cannot modify a grammar through returned productions
	g.Productions("F")[0][0] = "X"
	assert.Equal(t, "(", g.Productions("F")[0][0])
}

func TestFingerprint(t *testing.T) {
	g := makeExpressionGrammar(t)
	fp1, err := g.Fingerprint()
	require.NoError(t, err)
	c := g.Copy()
	c.Name = "other name"
	fp2, err := c.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)
	c.Add("F", "num")
	fp3, err := c.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}

func TestSymbolSet(t *testing.T) {
	S := NewSymbolSet("b", "a")
	assert.True(t, S.Add("c"))
	assert.False(t, S.Add("a"))
	other := NewSymbolSet("#", "d")
	assert.True(t, S.Union(other, Epsilon))
	assert.False(t, S.Union(other, Epsilon))
	assert.Equal(t, "{a, b, c, d}", S.String())
	assert.False(t, S.Contains(Epsilon))
	var nilset *SymbolSet
	assert.True(t, nilset.Empty())
	assert.False(t, nilset.Contains("a"))
	assert.True(t, IsReserved("#"))
	assert.True(t, IsReserved("$"))
	assert.False(t, IsReserved("a"))
}
