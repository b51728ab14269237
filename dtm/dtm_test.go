package dtm

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFromEntriesValidation(t *testing.T) {
	vocab := []string{"good", "service"}

	cases := []struct {
		name     string
		vocab    []string
		docCount int
		entries  []Entry
	}{
		{"negative count", vocab, 2, []Entry{{Doc: 0, Term: 0, Count: -1}}},
		{"zero count", vocab, 2, []Entry{{Doc: 0, Term: 0, Count: 0}}},
		{"doc out of bounds", vocab, 2, []Entry{{Doc: 2, Term: 0, Count: 1}}},
		{"term out of bounds", vocab, 2, []Entry{{Doc: 0, Term: 2, Count: 1}}},
		{"negative doc count", vocab, -1, nil},
		{"duplicate vocab", []string{"good", "good"}, 1, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEntries(tc.vocab, tc.docCount, tc.entries)
			if err == nil {
				t.Fatal("FromEntries() == nil error, want ErrInvalidMatrix")
			}
			if !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("FromEntries() error = %v, want wrapped ErrInvalidMatrix", err)
			}
		})
	}
}

func TestMatrixSums(t *testing.T) {
	matrix, err := FromEntries([]string{"good", "service", "bad"}, 3, []Entry{
		{Doc: 0, Term: 0, Count: 2},
		{Doc: 0, Term: 1, Count: 1},
		{Doc: 1, Term: 1, Count: 3},
		{Doc: 2, Term: 2, Count: 1},
	})
	if err != nil {
		t.Fatalf("FromEntries() error = %v", err)
	}

	if got := matrix.RowSum(0); got != 3 {
		t.Errorf("RowSum(0) == %d, want 3", got)
	}
	if got := matrix.ColSum(1); got != 4 {
		t.Errorf("ColSum(1) == %d, want 4", got)
	}
	if got := matrix.DocFreq(1); got != 2 {
		t.Errorf("DocFreq(1) == %d, want 2", got)
	}
	if got := matrix.Total(); got != 7 {
		t.Errorf("Total() == %d, want 7", got)
	}
	if got := matrix.Count(1, 1); got != 3 {
		t.Errorf("Count(1, 1) == %d, want 3", got)
	}
	if got := matrix.Count(5, 5); got != 0 {
		t.Errorf("Count(5, 5) == %d, want 0", got)
	}

	freqs := matrix.TermFrequencies()
	want := map[string]int{"good": 2, "service": 4, "bad": 1}
	if !reflect.DeepEqual(freqs, want) {
		t.Errorf("TermFrequencies() == %v, want %v", freqs, want)
	}
}

func TestTrimEmpty(t *testing.T) {
	// term "unused" and document 1 carry no counts
	matrix, err := FromEntries([]string{"good", "unused", "bad"}, 3, []Entry{
		{Doc: 0, Term: 0, Count: 1},
		{Doc: 2, Term: 2, Count: 2},
	})
	if err != nil {
		t.Fatalf("FromEntries() error = %v", err)
	}

	trimmed := matrix.TrimEmpty()

	if got := trimmed.DocCount(); got != 2 {
		t.Errorf("TrimEmpty().DocCount() == %d, want 2", got)
	}
	if got := trimmed.Vocab(); !reflect.DeepEqual(got, []string{"good", "bad"}) {
		t.Errorf("TrimEmpty().Vocab() == %v, want [good bad]", got)
	}
	if got := trimmed.Count(1, 1); got != 2 {
		t.Errorf("TrimEmpty().Count(1, 1) == %d, want 2", got)
	}
}

func TestBuilder(t *testing.T) {
	builder := NewBuilder()
	builder.AddDocument(map[string]int{"good": 1, "service": 1})
	builder.AddDocument(map[string]int{"bad": 1, "service": 2})

	matrix, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := matrix.DocCount(); got != 2 {
		t.Errorf("DocCount() == %d, want 2", got)
	}
	if got := matrix.TermCount(); got != 3 {
		t.Errorf("TermCount() == %d, want 3", got)
	}
	// map input carries no order, new terms are indexed sorted per document
	if got := matrix.Vocab(); !reflect.DeepEqual(got, []string{"good", "service", "bad"}) {
		t.Errorf("Vocab() == %v, want [good service bad]", got)
	}

	entries := matrix.Entries()
	if len(entries) != 4 {
		t.Errorf("len(Entries()) == %d, want 4", len(entries))
	}
}

func TestAddTokensEncounterOrder(t *testing.T) {
	builder := NewBuilder()
	builder.AddTokens([]string{"gamma", "alpha", "gamma", "beta"})
	builder.AddTokens([]string{"delta", "alpha"})

	matrix, err := builder.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := []string{"gamma", "alpha", "beta", "delta"}
	if got := matrix.Vocab(); !reflect.DeepEqual(got, want) {
		t.Errorf("Vocab() == %v, want %v", got, want)
	}
	if got := matrix.Count(0, 0); got != 2 {
		t.Errorf("Count(0, 0) == %d, want 2 for repeated token", got)
	}
}

func TestBuildVocabOrderDeterminism(t *testing.T) {
	build := func() []string {
		builder := NewBuilder()
		builder.AddTokens([]string{"alpha", "beta", "gamma", "delta", "epsilon"})
		builder.AddDocument(map[string]int{"zeta": 1, "eta": 2, "theta": 3})
		matrix, err := builder.Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		return matrix.Vocab()
	}

	first := build()
	for i := 0; i < 50; i++ {
		if got := build(); !reflect.DeepEqual(got, first) {
			t.Fatalf("vocabulary order differs across identical builds: %v vs %v", got, first)
		}
	}
}

func TestSaveAndLoadCompressed(t *testing.T) {
	matrix, err := FromEntries([]string{"good", "service"}, 2, []Entry{
		{Doc: 0, Term: 0, Count: 2},
		{Doc: 1, Term: 1, Count: 1},
	})
	if err != nil {
		t.Fatalf("FromEntries() error = %v", err)
	}

	dirName := t.TempDir()
	if err := matrix.SaveCompressed("matrix.gz", dirName, FileOpsImpl{}); err != nil {
		t.Fatalf("SaveCompressed() error = %v", err)
	}

	loaded, err := LoadCompressed(filepath.Join(dirName, "matrix.gz"))
	if err != nil {
		t.Fatalf("LoadCompressed() error = %v", err)
	}

	if !reflect.DeepEqual(loaded.Vocab(), matrix.Vocab()) {
		t.Errorf("LoadCompressed().Vocab() == %v, want %v", loaded.Vocab(), matrix.Vocab())
	}
	if !reflect.DeepEqual(loaded.Entries(), matrix.Entries()) {
		t.Errorf("LoadCompressed().Entries() == %v, want %v", loaded.Entries(), matrix.Entries())
	}
}

func TestFileOpsNoOp(t *testing.T) {
	matrix, err := FromEntries([]string{"good"}, 1, []Entry{{Doc: 0, Term: 0, Count: 1}})
	if err != nil {
		t.Fatalf("FromEntries() error = %v", err)
	}

	dirName := t.TempDir()
	if err := matrix.SaveCompressed("matrix.gz", dirName, FileOpsNoOp{}); err != nil {
		t.Fatalf("SaveCompressed() with no-op ops error = %v", err)
	}

	if _, err := LoadCompressed(filepath.Join(dirName, "matrix.gz")); err == nil {
		t.Error("LoadCompressed() == nil error, want missing file error after no-op save")
	}
}
