package grammarfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/npillmayer/llkit/ll"
	"github.com/npillmayer/llkit/ll/scanner/lexmach"
	"gopkg.in/yaml.v3"
)

// document is the structure of JSON and YAML grammar files.
type document struct {
	Name      string     `json:"name" yaml:"name"`
	Start     string     `json:"start" yaml:"start"`
	Terminals []string   `json:"terminals" yaml:"terminals"`
	Rules     []rule     `json:"rules" yaml:"rules"`
	Tokens    []tokenDef `json:"tokens" yaml:"tokens"`
	Skip      []string   `json:"skip" yaml:"skip"`

	KeepComments bool `json:"keep_comments" yaml:"keep_comments"`
	UnifyStrings bool `json:"unify_strings" yaml:"unify_strings"`
}

type rule struct {
	LHS string     `json:"lhs" yaml:"lhs"`
	RHS [][]string `json:"rhs" yaml:"rhs"`
}

type tokenDef struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// ReadJSON reads a grammar in JSON format. name is used for error messages
// and as a default name for the grammar.
func ReadJSON(name string, r io.Reader) (*Spec, error) {
	src, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc document
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		ferr := &FileError{Filename: name, Err: err}
		switch e := err.(type) {
		case *json.SyntaxError:
			ferr.Line = lineOf(src, e.Offset)
		case *json.UnmarshalTypeError:
			ferr.Line = lineOf(src, e.Offset)
		}
		return nil, ferr
	}
	return doc.spec(name)
}

// ReadYAML reads a grammar in YAML format, with the same structure as
// JSON grammar files.
func ReadYAML(name string, r io.Reader) (*Spec, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, &FileError{Filename: name, Err: err}
	}
	return doc.spec(name)
}

func (doc *document) spec(filename string) (*Spec, error) {
	if len(doc.Rules) == 0 {
		return nil, &FileError{Filename: filename, Err: fmt.Errorf("grammar has no rules")}
	}
	gname := doc.Name
	if gname == "" {
		gname = filename
	}
	g := ll.NewGrammar(gname, doc.Start)
	g.DeclareTerminals(doc.Terminals...)
	for _, r := range doc.Rules {
		if r.LHS == "" {
			return nil, &FileError{Filename: filename, Err: fmt.Errorf("rule without left-hand side")}
		}
		if len(r.RHS) == 0 {
			g.Add(r.LHS)
		}
		for _, rhs := range r.RHS {
			g.Add(r.LHS, rhs...)
		}
	}
	spec := &Spec{
		Grammar:      g,
		Skip:         doc.Skip,
		KeepComments: doc.KeepComments,
		UnifyStrings: doc.UnifyStrings,
	}
	for _, t := range doc.Tokens {
		if t.Name == "" || t.Pattern == "" {
			return nil, &FileError{Filename: filename, Err: fmt.Errorf("token definition needs a name and a pattern")}
		}
		spec.Tokens = append(spec.Tokens, lexmach.TokenDef{Name: t.Name, Pattern: t.Pattern})
	}
	return validate(filename, spec)
}

// lineOf returns the 1-based line number of a byte offset.
func lineOf(src []byte, offset int64) int {
	if offset > int64(len(src)) {
		offset = int64(len(src))
	}
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
