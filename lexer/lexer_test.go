package lexer

import (
	"reflect"
	"testing"
	"unicode"
)

func mustLexer(t *testing.T, content string, opts Options) *Lexer {
	t.Helper()
	l, err := New(content, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l
}

func TestNew(t *testing.T) {
	l := mustLexer(t, "Hello World!", Options{})
	defer l.Close()

	if len(l.content) != 12 {
		t.Error("New() returned wrong length")
	}
	if string(l.content) != "Hello World!" {
		t.Error("New() returned wrong content")
	}
}

func TestTrimLeft(t *testing.T) {
	l := mustLexer(t, " Hello World!", Options{})
	defer l.Close()

	l.TrimLeft()
	if string(l.content) != "Hello World!" {
		t.Error("TrimLeft() failed")
	}
}

func TestChop(t *testing.T) {
	l := mustLexer(t, "Hello World!", Options{})
	defer l.Close()

	l.Chop(5)
	if string(l.content) != " World!" {
		t.Error("Chop() failed")
	}
}

func TestChopWhile(t *testing.T) {
	l := mustLexer(t, "Hello World!", Options{})
	defer l.Close()

	f := func(x rune) bool {
		return unicode.IsLetter(x)
	}

	l.ChopWhile(f)
	expected := " World!"
	if string(l.content) != expected {
		t.Errorf("ChopWhile() Failed, expected %v, got %v", expected, string(l.content))
	}
}

func TestNextLowercasesWithoutStemming(t *testing.T) {
	l := mustLexer(t, "Chickens are Birds", Options{})
	defer l.Close()

	want := []string{"chickens", "are", "birds"}
	for _, expected := range want {
		token, err := l.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if token != expected {
			t.Errorf("Next() == %q, want %q", token, expected)
		}
	}

	if _, err := l.Next(); err == nil {
		t.Error("Next() == nil error at end of content, want error")
	}
}

func TestNextSkipsPunctuation(t *testing.T) {
	tokens, err := Tokens("good, service!", Options{})
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}

	want := []string{"good", "service"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokens() == %v, want %v", tokens, want)
	}
}

func TestNextSkipsStopWords(t *testing.T) {
	tokens, err := Tokens("the bird eats", Options{StopWords: StopWordSet()})
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}

	want := []string{"bird", "eats"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokens() == %v, want %v", tokens, want)
	}
}

func TestNextStemming(t *testing.T) {
	tokens, err := Tokens("birds", Options{Stem: true})
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}

	want := []string{"bird"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokens() == %v, want %v", tokens, want)
	}
}

func TestNumberTokens(t *testing.T) {
	tokens, err := Tokens("42 birds", Options{})
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}

	want := []string{"42", "birds"}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokens() == %v, want %v", tokens, want)
	}
}

func TestBuildMatrix(t *testing.T) {
	matrix, err := BuildMatrix([]string{"Chickens are birds", "The bird eats"}, Options{})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}

	if got := matrix.DocCount(); got != 2 {
		t.Errorf("DocCount() == %d, want 2", got)
	}
	if got := matrix.TermCount(); got != 6 {
		t.Errorf("TermCount() == %d, want 6", got)
	}
	if got := matrix.Total(); got != 6 {
		t.Errorf("Total() == %d, want 6", got)
	}

	want := []string{"chickens", "are", "birds", "the", "bird", "eats"}
	if got := matrix.Vocab(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vocab() == %v, want encounter order %v", got, want)
	}
}

func TestBuildMatrixDeterministicVocab(t *testing.T) {
	docs := []string{"alpha beta gamma delta epsilon", "epsilon zeta alpha"}

	first, err := BuildMatrix(docs, Options{})
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := BuildMatrix(docs, Options{})
		if err != nil {
			t.Fatalf("BuildMatrix() error = %v", err)
		}
		if !reflect.DeepEqual(again.Vocab(), first.Vocab()) {
			t.Fatalf("vocabulary order differs across identical builds: %v vs %v", again.Vocab(), first.Vocab())
		}
	}
}

func TestParseHtmlTextContent(t *testing.T) {
	content := ParseHtmlTextContent("<html><body><p>good service</p></body></html>")
	if content != "good service" {
		t.Errorf("ParseHtmlTextContent() == %q, want %q", content, "good service")
	}
}
