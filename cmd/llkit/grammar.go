package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/llkit/ll"
	"github.com/npillmayer/llkit/ll/grammarfile"
	"github.com/pterm/pterm"
)

// loadGrammar reads a grammar file and analyses the grammar. Unless raw is
// set, the grammar is normalized first.
func loadGrammar(path string, raw bool) (*grammarfile.Spec, *ll.Analysis, error) {
	spec, err := grammarfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	g := spec.Grammar
	if !raw {
		g = ll.Normalize(g)
		if err := g.Validate(); err != nil {
			return nil, nil, fmt.Errorf("normalized grammar is invalid: %w", err)
		}
	}
	g.Dump() // only visible in debug mode
	return spec, ll.Analyse(g), nil
}

// notLL1 creates an error listing all conflicts of a table.
func notLL1(table *ll.ParseTable) error {
	conflicts := table.Conflicts()
	return fmt.Errorf("%w: %d conflict(s)", ll.ErrNotLL1, len(conflicts))
}

// --- Display ---------------------------------------------------------------

func printGrammar(ga *ll.Analysis) {
	g := ga.Grammar()
	fp, err := g.Fingerprint()
	if err != nil {
		fp = "?"
	}
	pterm.DefaultSection.Println(fmt.Sprintf("Grammar %s (start = %s)", g.Name, g.Start()))
	pterm.Println(g.String())
	pterm.Info.Println(fmt.Sprintf("fingerprint %s", fp))
}

func printSets(ga *ll.Analysis) {
	pterm.DefaultSection.Println("FIRST and FOLLOW")
	td := pterm.TableData{{"Non-terminal", "FIRST", "FOLLOW"}}
	for _, A := range ga.NonTerminals() {
		td = append(td, []string{A, ga.First(A).String(), ga.Follow(A).String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(td).Render()
}

func printTable(table *ll.ParseTable) {
	pterm.DefaultSection.Println("LL(1) parse table")
	header := append([]string{""}, table.Terminals()...)
	td := pterm.TableData{header}
	for _, A := range table.NonTerminals() {
		row := []string{A}
		for _, a := range table.Terminals() {
			row = append(row, table.CellString(A, a))
		}
		td = append(td, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(td).Render()
}

func printConflicts(table *ll.ParseTable) {
	conflicts := table.Conflicts()
	if len(conflicts) == 0 {
		pterm.Info.Println("grammar is LL(1)")
		return
	}
	pterm.DefaultSection.Println("Conflicts")
	for _, c := range conflicts {
		pterm.Warning.Println(c.String())
	}
}

func printTree(root *ll.Node) {
	if root == nil {
		return
	}
	var list pterm.LeveledList
	root.Walk(func(n *ll.Node, depth int) bool {
		list = append(list, pterm.LeveledListItem{Level: depth, Text: n.String()})
		return true
	})
	tracer().Debugf("|ll| = %d", len(list))
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(list)).Render()
}

func printSteps(steps []ll.Step) {
	td := pterm.TableData{{"Stack", "Input", "Action"}}
	for _, s := range steps {
		action := s.Action.String()
		if s.Action == ll.Expand {
			action = s.Rule.String()
		}
		td = append(td, []string{strings.Join(s.Stack, " "), strings.Join(s.Input, " "), action})
	}
	pterm.DefaultTable.WithHasHeader().WithData(td).Render()
}
