package grammarfile

import (
	"fmt"
	"io"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/llkit/ll"
	"golang.org/x/exp/ebnf"
)

// ReadEBNF reads a grammar in EBNF notation. If start is empty, the first
// production of the file is the start symbol.
func ReadEBNF(name string, r io.Reader, start string) (*Spec, error) {
	grammar, err := ebnf.Parse(name, r)
	if err != nil {
		return nil, &FileError{Filename: name, Err: err}
	}
	prods := make([]*ebnf.Production, 0, len(grammar))
	for _, p := range grammar {
		if isLexical(p.Name.String) {
			tracer().Debugf("lexical production %s is treated as terminal", p.Name.String)
			continue
		}
		prods = append(prods, p)
	}
	if len(prods) == 0 {
		return nil, &FileError{Filename: name, Err: fmt.Errorf("grammar has no rules")}
	}
	sort.Slice(prods, func(i, j int) bool {
		return prods[i].Pos().Offset < prods[j].Pos().Offset
	})
	if start == "" {
		start = prods[0].Name.String
	}
	d := &desugarer{
		g:         ll.NewGrammar(name, start),
		names:     ll.NewNameAllocator(ll.NewGrammar(name, start)),
		generated: make(map[string][]ll.Production),
	}
	for _, p := range grammar {
		d.names.Reserve(p.Name.String)
	}
	for _, p := range prods {
		alts, err := d.alternatives(p.Name.String, p.Expr)
		if err != nil {
			return nil, &FileError{Filename: name, Line: p.Pos().Line, Err: err}
		}
		d.g.SetProductions(p.Name.String, alts)
	}
	for _, A := range d.order {
		d.g.SetProductions(A, d.generated[A])
	}
	return validate(name, &Spec{Grammar: d.g})
}

// isLexical is true for names starting with a lower-case letter.
func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}

// desugarer translates EBNF expressions to plain productions.
type desugarer struct {
	g         *ll.Grammar
	names     *ll.NameAllocator
	order     []string // generated non-terminals, in order of creation
	generated map[string][]ll.Production
}

func (d *desugarer) alternatives(lhs string, expr ebnf.Expression) ([]ll.Production, error) {
	if alt, ok := expr.(ebnf.Alternative); ok {
		var prods []ll.Production
		for _, x := range alt {
			p, err := d.sequence(lhs, x)
			if err != nil {
				return nil, err
			}
			prods = append(prods, p)
		}
		return prods, nil
	}
	p, err := d.sequence(lhs, expr)
	if err != nil {
		return nil, err
	}
	return []ll.Production{p}, nil
}

func (d *desugarer) sequence(lhs string, expr ebnf.Expression) (ll.Production, error) {
	if expr == nil {
		return ll.Production{ll.Epsilon}, nil
	}
	items := []ebnf.Expression{expr}
	if seq, ok := expr.(ebnf.Sequence); ok {
		items = seq
	}
	p := make(ll.Production, 0, len(items))
	for _, x := range items {
		sym, err := d.symbol(lhs, x)
		if err != nil {
			return nil, err
		}
		p = append(p, sym)
	}
	if len(p) == 0 {
		return ll.Production{ll.Epsilon}, nil
	}
	return p, nil
}

func (d *desugarer) symbol(lhs string, expr ebnf.Expression) (string, error) {
	switch x := expr.(type) {
	case *ebnf.Name:
		return x.String, nil
	case *ebnf.Token:
		return x.String, nil
	case *ebnf.Group:
		return d.introduce(lhs, x.Body, false, false)
	case *ebnf.Option:
		return d.introduce(lhs, x.Body, true, false)
	case *ebnf.Repetition:
		return d.introduce(lhs, x.Body, true, true)
	case *ebnf.Range:
		return "", fmt.Errorf("character ranges are not supported in production %s", lhs)
	case ebnf.Alternative, ebnf.Sequence:
		// only possible as the body of a group
		return d.introduce(lhs, x, false, false)
	}
	return "", fmt.Errorf("unsupported expression in production %s", lhs)
}

// introduce creates a fresh non-terminal for a group, an option or a repetition.
func (d *desugarer) introduce(lhs string, body ebnf.Expression, optional, repeat bool) (string, error) {
	A := d.names.Fresh(lhs)
	d.order = append(d.order, A)
	prods, err := d.alternatives(A, body)
	if err != nil {
		return "", err
	}
	if repeat {
		loops := make([]ll.Production, 0, len(prods))
		for _, p := range prods {
			if !p.IsEpsilon() {
				loops = append(loops, append(p, A))
			}
		}
		prods = loops
	}
	if optional {
		prods = append(prods, ll.Production{ll.Epsilon})
	}
	d.generated[A] = prods
	return A, nil
}
