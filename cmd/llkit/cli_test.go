package main

import (
	"errors"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/llkit/ll"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.cli")
	defer teardown()
	//
	assert.NoError(t, run("parse", "--raw=false", "--trace=Error", "testdata/expr.json", "id", "+", "id"))
	err := run("parse", "--raw=false", "testdata/expr.json", "id", "+")
	require.Error(t, err)
	assert.Equal(t, "no rule for (T, $)", err.Error())
	assert.NoError(t, run("parse", "--raw=false", "--tree", "--steps", "-s", "testdata/input.txt", "testdata/expr.json"))
	err = run("parse", "--raw=false", "--tree=false", "--steps=false", "-s", "testdata/bad_input.txt", "testdata/expr.json")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "testdata/bad_input.txt: "), err.Error())
	assert.True(t, strings.HasSuffix(err.Error(), "no rule for (T, $)"), err.Error())
}

func TestAnalyzeCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.cli")
	defer teardown()
	//
	dir := t.TempDir()
	out := filepath.Join(dir, "table.html")
	assert.NoError(t, run("analyze", "--raw=false", "--html", out, "testdata/expr.json"))
	html, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "F -&gt; ( E )")
	//
	out = filepath.Join(dir, "raw.html")
	err = run("table", "--raw", "-o", out, "testdata/expr.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ll.ErrNotLL1))
	html, err = ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "LL(1) = false")
	//
	assert.True(t, errors.Is(run("analyze", "--raw", "--html=", "testdata/expr.json"), ll.ErrNotLL1))
	assert.Error(t, run("analyze", "--raw=false", "testdata/missing.json"))
}

func TestREPLEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.cli")
	defer teardown()
	//
	spec, ga, err := loadGrammar("testdata/expr.json", false)
	require.NoError(t, err)
	require.True(t, ga.IsLL1())
	intp := &Intp{spec: spec, GA: ga, trees: true}
	tests := []struct {
		line  string
		quit  bool
		fails bool
		err   string // expected error substring
		trees bool
		steps bool
	}{
		{"a + b", false, false, "", true, false},
		{":steps", false, false, "", true, true},
		{"a * (b + 12)", false, false, "", true, true},
		{":tree", false, false, "", false, true},
		{"a * b", false, false, "", false, true},
		{":table", false, false, "", false, true},
		{"a +", false, true, "no rule for (T, $)", false, true},
		{"a $ b", false, true, "", false, true},
		{":foo", false, true, "unknown command :foo", false, true},
		{":steps", false, false, "", false, false},
		{":quit", true, false, "", false, false},
		{":q", true, false, "", false, false},
	}
	for _, test := range tests {
		quit, err := intp.Eval(test.line)
		assert.Equal(t, test.quit, quit, "line %q", test.line)
		if !test.fails {
			assert.NoError(t, err, "line %q", test.line)
		} else if assert.Error(t, err, "line %q", test.line) {
			assert.Contains(t, err.Error(), test.err, "line %q", test.line)
		}
		assert.Equal(t, test.trees, intp.trees, "line %q", test.line)
		assert.Equal(t, test.steps, intp.steps, "line %q", test.line)
	}
}
