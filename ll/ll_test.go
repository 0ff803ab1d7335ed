package ll

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// readGrammar reads rules of the form "A -> x y z", one per line.
func readGrammar(t *testing.T, name string, src string) *Grammar {
	g := NewGrammar(name, "")
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		require.True(t, len(fields) >= 2 && fields[1] == "->", "malformed rule %q", line)
		g.Add(fields[0], fields[2:]...)
	}
	return g
}

func lines(s string) []string {
	var l []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			l = append(l, line)
		}
	}
	return l
}

// makeExpressionGrammar creates the classic expression grammar, already
// free of left recursion.
//
//     E  → T E'
//     E' → + T E' | #
//     T  → F T'
//     T' → * F T' | #
//     F  → ( E ) | id
//
func makeExpressionGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Expressions")
	b.LHS("E").N("T").N("E'").End()
	b.LHS("E'").T("+").N("T").N("E'").End()
	b.LHS("E'").Epsilon()
	b.LHS("T").N("F").N("T'").End()
	b.LHS("T'").T("*").N("F").N("T'").End()
	b.LHS("T'").Epsilon()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

// --- the Tests -------------------------------------------------------------

func TestGoldenFiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.ll")
	defer teardown()
	//
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)
			sections := make(map[string]string)
			for _, f := range ar.Files {
				sections[f.Name] = string(f.Data)
			}
			g := Normalize(readGrammar(t, file, sections["grammar"]))
			var rules []string
			for _, r := range g.Rules() {
				rules = append(rules, r.String())
			}
			assert.Equal(t, lines(sections["normalized"]), rules, "normalized grammar")
			//
			ga := Analyse(g)
			var first, follow []string
			for _, A := range ga.NonTerminals() {
				first = append(first, fmt.Sprintf("FIRST(%s) = %v", A, ga.First(A)))
				follow = append(follow, fmt.Sprintf("FOLLOW(%s) = %v", A, ga.Follow(A)))
			}
			assert.Equal(t, lines(sections["first"]), first, "FIRST-sets")
			assert.Equal(t, lines(sections["follow"]), follow, "FOLLOW-sets")
			//
			table, isLL1 := ga.Table()
			var cells []string
			for _, A := range table.NonTerminals() {
				for _, a := range table.Terminals() {
					if s := table.CellString(A, a); s != "" {
						cells = append(cells, fmt.Sprintf("M[%s, %s] = %s", A, a, s))
					}
				}
			}
			assert.Equal(t, lines(sections["table"]), cells, "parse table")
			var conflicts []string
			for _, c := range table.Conflicts() {
				conflicts = append(conflicts, c.String())
			}
			assert.Equal(t, lines(sections["conflicts"]), conflicts, "conflicts")
			assert.Equal(t, len(conflicts) == 0, isLL1)
		})
	}
}
