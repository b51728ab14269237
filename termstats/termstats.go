package termstats

import (
	"math"
	"sort"
	"unicode"

	"github.com/textmill/corpusdiff/dtm"
)

// Row holds the statistics computed for a single vocabulary term.
type Row struct {
	Term            string  `json:"term"`
	Length          int     `json:"length"`
	HasDigit        bool    `json:"has_digit"`
	HasNonAlnum     bool    `json:"has_non_alnum"`
	Frequency       int     `json:"frequency"`
	DocFrequency    int     `json:"doc_frequency"`
	RelDocFrequency float64 `json:"rel_doc_frequency"`
	TfIdf           float64 `json:"tfidf"`
}

// Compute produces one Row per vocabulary term, in vocabulary order. Documents
// and terms with a zero total are dropped first, so every returned term has a
// positive document frequency. An empty matrix yields an empty table.
func Compute(m *dtm.Matrix) []Row {
	trimmed := m.TrimEmpty()
	docCount := trimmed.DocCount()

	rowSums := make([]int, docCount)
	for doc := 0; doc < docCount; doc++ {
		rowSums[doc] = trimmed.RowSum(doc)
	}

	rows := make([]Row, 0, trimmed.TermCount())
	for term, token := range trimmed.Vocab() {
		frequency := 0
		docFrequency := 0
		normalizedSum := 0.0
		for doc := 0; doc < docCount; doc++ {
			count := trimmed.Count(doc, term)
			if count == 0 {
				continue
			}
			frequency += count
			docFrequency++
			normalizedSum += float64(count) / float64(rowSums[doc])
		}

		//tf is the mean per-document normalized frequency over the documents that contain the term
		tf := normalizedSum / float64(docFrequency)
		idf := math.Log2(float64(docCount) / float64(docFrequency))

		rows = append(rows, Row{
			Term:            token,
			Length:          len([]rune(token)),
			HasDigit:        containsDigit(token),
			HasNonAlnum:     containsNonAlnum(token),
			Frequency:       frequency,
			DocFrequency:    docFrequency,
			RelDocFrequency: float64(docFrequency) / float64(docCount),
			TfIdf:           tf * idf,
		})
	}
	return rows
}

func containsDigit(token string) bool {
	for _, r := range token {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func containsNonAlnum(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Filter returns the rows for which the keep predicate holds.
func Filter(rows []Row, keep func(Row) bool) []Row {
	filtered := []Row{}
	for _, row := range rows {
		if keep(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// SortByFrequency sorts descending by frequency, ties broken by term string.
func SortByFrequency(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Frequency != rows[j].Frequency {
			return rows[i].Frequency > rows[j].Frequency
		}
		return rows[i].Term < rows[j].Term
	})
}

// SortByTfIdf sorts descending by tf-idf, ties broken by term string.
func SortByTfIdf(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TfIdf != rows[j].TfIdf {
			return rows[i].TfIdf > rows[j].TfIdf
		}
		return rows[i].Term < rows[j].Term
	})
}
