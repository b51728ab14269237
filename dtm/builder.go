package dtm

import "sort"

// Builder accumulates documents and assigns term indices in the order terms
// are first seen.
type Builder struct {
	vocab     []string
	termIndex map[string]int
	rows      []map[int]int
}

func NewBuilder() *Builder {
	return &Builder{
		termIndex: map[string]int{},
	}
}

func (b *Builder) index(term string) int {
	index, ok := b.termIndex[term]
	if !ok {
		index = len(b.vocab)
		b.termIndex[term] = index
		b.vocab = append(b.vocab, term)
	}
	return index
}

// AddTokens appends one document row from its token stream. New terms get
// the next free index as they are encountered, so identical input always
// yields the same vocabulary order.
func (b *Builder) AddTokens(tokens []string) {
	row := map[int]int{}
	for _, term := range tokens {
		row[b.index(term)]++
	}
	b.rows = append(b.rows, row)
}

// AddDocument appends one document row from a term frequency map. The map
// carries no encounter order, so new terms are indexed in sorted order to
// keep builds deterministic. Terms with a non-positive count are rejected at
// Build time, matching FromEntries validation.
func (b *Builder) AddDocument(termFreqs map[string]int) {
	terms := make([]string, 0, len(termFreqs))
	for term := range termFreqs {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	row := make(map[int]int, len(termFreqs))
	for _, term := range terms {
		row[b.index(term)] = termFreqs[term]
	}
	b.rows = append(b.rows, row)
}

func (b *Builder) Build() (*Matrix, error) {
	entries := []Entry{}
	for doc, row := range b.rows {
		for term, count := range row {
			entries = append(entries, Entry{Doc: doc, Term: term, Count: count})
		}
	}
	return FromEntries(b.vocab, len(b.rows), entries)
}
