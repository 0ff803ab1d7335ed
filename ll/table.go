package ll

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/llkit/ll/sparse"
)

// ParseTable is an LL(1) parse table. Rows are non-terminals, columns are
// terminals plus the end-of-input marker. A cell holds the rules to predict
// when the row's non-terminal is on top of the stack and the column's
// terminal is the lookahead. Cells with more than one candidate are
// conflicts.
//
// Construct tables with BuildTable. Tables are read-only afterwards.
type ParseTable struct {
	nonterminals []string
	terminals    []string // column order, EOF last
	rowOf        map[string]int
	colOf        map[string]int
	rules        []*Rule
	matrix       *sparse.IntMatrix
	ll1          bool
}

// Conflict describes a table cell with more than one candidate rule.
type Conflict struct {
	NonTerminal string
	Lookahead   string
	Candidates  []*Rule
}

func (c Conflict) String() string {
	return fmt.Sprintf("M[%s, %s] = %s", c.NonTerminal, c.Lookahead, joinRules(c.Candidates))
}

// tableEntry is a single prediction, collected before the table is laid out.
type tableEntry struct {
	rule      *Rule
	lookahead string
}

// BuildTable constructs the LL(1) parse table for g. For every production
// A → γ
//
//  - the production is entered in M[A, t] for every terminal t in FIRST(γ)
//  - if γ may derive epsilon, it is entered in M[A, t] for every t in FOLLOW(A).
//
// Productions are processed in grammar order, therefore candidates of
// a conflict cell are in grammar order, too. The boolean result is false
// if and only if at least one cell holds more than one candidate.
func BuildTable(g *Grammar, first *FirstSets, follow *FollowSets, terminals *SymbolSet,
	nonterminals []string) (*ParseTable, bool) {
	//
	tracer().Debugf("=== build LL(1) table ============================================")
	columns := terminals.Copy()
	columns.Add(EOF)
	var entries []tableEntry
	var rules []*Rule
	for _, A := range nonterminals {
		for _, rhs := range g.productions(A) {
			rule := &Rule{Serial: len(rules), LHS: A, RHS: rhs.copy()}
			rules = append(rules, rule)
			F := FirstOfSequence(rhs, g, terminals, first)
			tracer().Debugf("FIRST(%v) = %v", rhs, F)
			for _, t := range F.Symbols() {
				if t != Epsilon {
					entries = append(entries, tableEntry{rule: rule, lookahead: t})
					columns.Add(t)
				}
			}
			if F.Contains(Epsilon) {
				for _, t := range follow.of(A).Symbols() {
					entries = append(entries, tableEntry{rule: rule, lookahead: t})
					columns.Add(t)
				}
			}
		}
	}
	table := newParseTable(nonterminals, columns, rules)
	table.ll1 = true
	for _, e := range entries {
		if !table.insert(e.rule, e.lookahead) {
			table.ll1 = false
		}
	}
	tracer().Infof("LL(1) table of size %d x %d, %d cells set, LL(1) = %v",
		len(table.nonterminals), len(table.terminals), table.matrix.ValueCount(), table.ll1)
	return table, table.ll1
}

func newParseTable(nonterminals []string, columns *SymbolSet, rules []*Rule) *ParseTable {
	t := &ParseTable{
		nonterminals: append([]string(nil), nonterminals...),
		rowOf:        make(map[string]int, len(nonterminals)),
		colOf:        make(map[string]int, columns.Size()),
		rules:        rules,
	}
	for i, A := range t.nonterminals {
		t.rowOf[A] = i
	}
	for _, a := range columns.Symbols() {
		if a != EOF {
			t.terminals = append(t.terminals, a)
		}
	}
	t.terminals = append(t.terminals, EOF)
	for j, a := range t.terminals {
		t.colOf[a] = j
	}
	t.matrix = sparse.NewIntMatrix(len(t.nonterminals), len(t.terminals), sparse.DefaultNullValue)
	return t
}

// insert enters a rule into M[rule.LHS, a]. It returns false if the cell
// already holds a different rule. Entering the same rule twice, which
// happens if a is both in FIRST(γ) and FOLLOW(A), is not a conflict.
func (t *ParseTable) insert(rule *Rule, a string) bool {
	i, j := t.rowOf[rule.LHS], t.colOf[a]
	present := t.matrix.Values(i, j)
	for _, r := range present {
		if int(r) == rule.Serial {
			tracer().Debugf("    relax, double entry M[%s, %s] = %v", rule.LHS, a, rule)
			return true
		}
	}
	t.matrix.Add(i, j, int32(rule.Serial))
	if len(present) > 0 {
		tracer().Infof("conflict at M[%s, %s]: %s", rule.LHS, a, joinRules(t.Cell(rule.LHS, a)))
		return false
	}
	return true
}

// IsLL1 is true if no cell of the table holds more than one rule.
func (t *ParseTable) IsLL1() bool {
	return t.ll1
}

// NonTerminals returns the row labels, in grammar order.
func (t *ParseTable) NonTerminals() []string {
	return append([]string(nil), t.nonterminals...)
}

// Terminals returns the column labels: terminals sorted, then EOF.
func (t *ParseTable) Terminals() []string {
	return append([]string(nil), t.terminals...)
}

// Rules returns all rules, indexed by their serial number.
func (t *ParseTable) Rules() []*Rule {
	return append([]*Rule(nil), t.rules...)
}

// IsNonTerminal is true for row labels.
func (t *ParseTable) IsNonTerminal(sym string) bool {
	_, ok := t.rowOf[sym]
	return ok
}

// IsTerminal is true for column labels, including EOF.
func (t *ParseTable) IsTerminal(sym string) bool {
	_, ok := t.colOf[sym]
	return ok
}

// Cell returns the candidate rules for M[A, a], in grammar order. An empty
// result means "no rule".
func (t *ParseTable) Cell(A, a string) []*Rule {
	i, ok1 := t.rowOf[A]
	j, ok2 := t.colOf[a]
	if !ok1 || !ok2 {
		return nil
	}
	serials := t.matrix.Values(i, j)
	if len(serials) == 0 {
		return nil
	}
	rules := make([]*Rule, len(serials))
	for k, s := range serials {
		rules[k] = t.rules[s]
	}
	return rules
}

// Predict returns the rule to expand for non-terminal A and lookahead a, if
// there is exactly one.
func (t *ParseTable) Predict(A, a string) (*Rule, bool) {
	cell := t.Cell(A, a)
	if len(cell) != 1 {
		return nil, false
	}
	return cell[0], true
}

// CellString renders a cell as "A -> x y", with candidates of a conflict
// separated by " | ". An empty cell renders as an empty string.
func (t *ParseTable) CellString(A, a string) string {
	return joinRules(t.Cell(A, a))
}

// Conflicts returns all cells holding more than one rule, ordered by row and column.
func (t *ParseTable) Conflicts() []Conflict {
	var conflicts []Conflict
	t.matrix.Each(func(i, j int, values []int32) {
		if len(values) > 1 {
			A, a := t.nonterminals[i], t.terminals[j]
			conflicts = append(conflicts, Conflict{
				NonTerminal: A,
				Lookahead:   a,
				Candidates:  t.Cell(A, a),
			})
		}
	})
	return conflicts
}

// Dump is a debugging helper, writing all non-empty cells to the tracer.
func (t *ParseTable) Dump() {
	tracer().Debugf("--- LL(1) table ---------------------------------")
	t.matrix.Each(func(i, j int, values []int32) {
		A, a := t.nonterminals[i], t.terminals[j]
		tracer().Debugf("M[%s, %s] = %s", A, a, t.CellString(A, a))
	})
	tracer().Debugf("-------------------------------------------------")
}

// TableAsHTML exports a parse table in HTML-format. Conflict cells are
// highlighted.
func TableAsHTML(t *ParseTable, w io.Writer) {
	if t == nil {
		tracer().Errorf("parse table not yet created, cannot export to HTML")
		return
	}
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("LL(1) table of size = %d, LL(1) = %v<p>", t.matrix.ValueCount(), t.ll1))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, a := range t.terminals {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html(a)))
	}
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	for _, A := range t.nonterminals {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html(A)))
		for _, a := range t.terminals {
			cell := t.Cell(A, a)
			switch len(cell) {
			case 0:
				td = "<td>&nbsp;</td>"
			case 1:
				td = fmt.Sprintf("<td>%s</td>", html(cell[0].String()))
			default:
				td = fmt.Sprintf("<td bgcolor=#ffcccc>%s</td>", html(joinRules(cell)))
			}
			io.WriteString(w, td)
			io.WriteString(w, "\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}

// ----------------------------------------------------------------------

func joinRules(rules []*Rule) string {
	s := make([]string, len(rules))
	for i, r := range rules {
		s[i] = r.String()
	}
	return strings.Join(s, " | ")
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func html(s string) string {
	return htmlEscaper.Replace(s)
}
