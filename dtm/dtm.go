package dtm

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidMatrix is wrapped by every validation failure in this package.
var ErrInvalidMatrix = errors.New("invalid matrix")

// Entry is a single non-zero cell of a document-term matrix.
type Entry struct {
	Doc   int
	Term  int
	Count int
}

// Matrix is a sparse document-term matrix over a fixed ordered vocabulary.
// Only non-zero counts are stored, one map per document row.
type Matrix struct {
	vocab    []string
	docCount int
	rows     []map[int]int
}

// Vocab returns the ordered vocabulary. The caller must not modify it.
func (m *Matrix) Vocab() []string {
	return m.vocab
}

func (m *Matrix) DocCount() int {
	return m.docCount
}

func (m *Matrix) TermCount() int {
	return len(m.vocab)
}

// Count returns the stored count for a cell, 0 if the cell is empty or out of bounds.
func (m *Matrix) Count(doc, term int) int {
	if doc < 0 || doc >= m.docCount {
		return 0
	}
	return m.rows[doc][term]
}

// RowSum returns the total number of tokens in a document.
func (m *Matrix) RowSum(doc int) int {
	if doc < 0 || doc >= m.docCount {
		return 0
	}
	sum := 0
	for _, count := range m.rows[doc] {
		sum += count
	}
	return sum
}

// ColSum returns the total number of occurrences of a term across all documents.
func (m *Matrix) ColSum(term int) int {
	sum := 0
	for _, row := range m.rows {
		sum += row[term]
	}
	return sum
}

// DocFreq returns the number of documents containing a term at least once.
func (m *Matrix) DocFreq(term int) int {
	count := 0
	for _, row := range m.rows {
		if row[term] > 0 {
			count++
		}
	}
	return count
}

// Total returns the total token count of the whole matrix.
func (m *Matrix) Total() int {
	sum := 0
	for doc := range m.rows {
		sum += m.RowSum(doc)
	}
	return sum
}

// TermFrequencies returns term string -> total count for every term with a
// non-zero column sum.
func (m *Matrix) TermFrequencies() map[string]int {
	freqs := make(map[string]int)
	for _, row := range m.rows {
		for term, count := range row {
			freqs[m.vocab[term]] += count
		}
	}
	return freqs
}

// Entries returns every stored cell ordered by document then term index.
func (m *Matrix) Entries() []Entry {
	entries := []Entry{}
	for doc, row := range m.rows {
		for term, count := range row {
			entries = append(entries, Entry{Doc: doc, Term: term, Count: count})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Doc != entries[j].Doc {
			return entries[i].Doc < entries[j].Doc
		}
		return entries[i].Term < entries[j].Term
	})
	return entries
}

// TrimEmpty returns a new matrix with all-zero documents and all-zero terms
// removed. Vocabulary order is preserved for the surviving terms.
func (m *Matrix) TrimEmpty() *Matrix {
	keepTerm := make(map[int]int)
	vocab := []string{}
	for term := range m.vocab {
		if m.ColSum(term) > 0 {
			keepTerm[term] = len(vocab)
			vocab = append(vocab, m.vocab[term])
		}
	}

	rows := []map[int]int{}
	for doc := range m.rows {
		if m.RowSum(doc) == 0 {
			continue
		}
		row := make(map[int]int, len(m.rows[doc]))
		for term, count := range m.rows[doc] {
			row[keepTerm[term]] = count
		}
		rows = append(rows, row)
	}

	return &Matrix{vocab: vocab, docCount: len(rows), rows: rows}
}

// FromEntries builds a matrix from explicit non-zero cells and validates it.
func FromEntries(vocab []string, docCount int, entries []Entry) (*Matrix, error) {
	if docCount < 0 {
		return nil, fmt.Errorf("%w: negative document count %d", ErrInvalidMatrix, docCount)
	}

	seen := make(map[string]bool, len(vocab))
	for _, term := range vocab {
		if seen[term] {
			return nil, fmt.Errorf("%w: duplicate vocabulary term %q", ErrInvalidMatrix, term)
		}
		seen[term] = true
	}

	rows := make([]map[int]int, docCount)
	for i := range rows {
		rows[i] = map[int]int{}
	}

	for _, e := range entries {
		if e.Doc < 0 || e.Doc >= docCount {
			return nil, fmt.Errorf("%w: document index %d out of bounds for %d documents", ErrInvalidMatrix, e.Doc, docCount)
		}
		if e.Term < 0 || e.Term >= len(vocab) {
			return nil, fmt.Errorf("%w: term index %d out of bounds for %d terms", ErrInvalidMatrix, e.Term, len(vocab))
		}
		if e.Count <= 0 {
			return nil, fmt.Errorf("%w: non-positive count %d for term %q", ErrInvalidMatrix, e.Count, vocab[e.Term])
		}
		rows[e.Doc][e.Term] += e.Count
	}

	return &Matrix{vocab: append([]string{}, vocab...), docCount: docCount, rows: rows}, nil
}
