package lexmach

import (
	"testing"

	"github.com/npillmayer/llkit/ll/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/timtadh/lexmachine"
)

func skipWhitespace(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`//[^\n]*\n?`), Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.scanner")
	defer teardown()
	//
	literals := []string{"+", "*", "(", ")", "if"}
	defs := []TokenDef{
		{Name: "id", Pattern: `[a-z]+`},
		{Name: "num", Pattern: `[0-9]+`},
	}
	adapter, err := NewLMAdapter(skipWhitespace, literals, defs)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := adapter.Scanner("if (ab + 12) * c // comment\n")
	if err != nil {
		t.Fatal(err)
	}
	tokens := scanner.Drain(sc)
	kinds := scanner.Kinds(tokens)
	expected := []string{"if", "(", "id", "+", "num", ")", "*", "id"}
	if len(kinds) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, kinds)
	}
	for i, k := range expected {
		if kinds[i] != k {
			t.Errorf("token #%d: expected kind %q, got %q", i, k, kinds[i])
		}
	}
	if tokens[2].Lexeme() != "ab" {
		t.Errorf("expected lexeme 'ab', got %q", tokens[2].Lexeme())
	}
	if tokens[2].Span().From() != 4 || tokens[2].Span().To() != 6 {
		t.Errorf("expected 'ab' to span (4…6), got %v", tokens[2].Span())
	}
}

func TestLMRecovers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llkit.scanner")
	defer teardown()
	//
	adapter, err := NewLMAdapter(skipWhitespace, []string{"+"},
		[]TokenDef{{Name: "id", Pattern: `[a-z]+`}})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := adapter.Scanner("a ? b")
	if err != nil {
		t.Fatal(err)
	}
	errcnt := 0
	sc.SetErrorHandler(func(error) { errcnt++ })
	kinds := scanner.Kinds(scanner.Drain(sc))
	if errcnt != 1 {
		t.Errorf("expected 1 error to be reported, got %d", errcnt)
	}
	if len(kinds) != 2 || kinds[0] != "id" || kinds[1] != "id" {
		t.Errorf("expected input to be scanned as [id id], got %v", kinds)
	}
}

func TestQuote(t *testing.T) {
	if q := Quote("+="); q != `\+\=` {
		t.Errorf("expected literal to be escaped, got %q", q)
	}
	if q := Quote("if"); q != "if" {
		t.Errorf("expected keyword not to be escaped, got %q", q)
	}
}
