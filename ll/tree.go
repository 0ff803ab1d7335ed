package ll

import (
	"fmt"
	"strings"

	"github.com/npillmayer/llkit"
)

// Node is a node of a parse tree. Inner nodes stand for non-terminals and
// carry the rule they have been expanded with. Leaves stand for terminals and
// carry the input token they matched. A non-terminal expanded by an epsilon
// production has a single leaf child with symbol "#".
type Node struct {
	Symbol   string
	Rule     *Rule       // for non-terminals
	Token    llkit.Token // for terminals
	Children []*Node
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Lexeme returns the lexeme of a terminal node and the concatenated lexemes
// of all leaves (separated by blanks) for an inner node.
func (n *Node) Lexeme() string {
	if n == nil {
		return ""
	}
	if n.Token != nil {
		return n.Token.Lexeme()
	}
	var lexemes []string
	for _, ch := range n.Children {
		if l := ch.Lexeme(); l != "" {
			lexemes = append(lexemes, l)
		}
	}
	return strings.Join(lexemes, " ")
}

// Span returns the input span covered by n. Nodes deriving epsilon have a
// null span.
func (n *Node) Span() llkit.Span {
	if n == nil {
		return llkit.Span{}
	}
	if n.Token != nil {
		return n.Token.Span()
	}
	var span llkit.Span
	for _, ch := range n.Children {
		s := ch.Span()
		if s.IsNull() {
			continue
		}
		if span.IsNull() {
			span = s
		} else {
			span = span.Extend(s)
		}
	}
	return span
}

// Walk visits n and all its descendents in pre-order. f receives each node
// and its depth (0 for n). If f returns false, the children of the node
// are skipped.
func (n *Node) Walk(f func(node *Node, depth int) bool) {
	n.walk(f, 0)
}

func (n *Node) walk(f func(*Node, int) bool, depth int) {
	if n == nil || !f(n, depth) {
		return
	}
	for _, ch := range n.Children {
		ch.walk(f, depth+1)
	}
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Token != nil {
		return fmt.Sprintf("%s %q", n.Symbol, n.Token.Lexeme())
	}
	return n.Symbol
}
