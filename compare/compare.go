package compare

import (
	"sort"

	"github.com/textmill/corpusdiff/dtm"
	"github.com/textmill/corpusdiff/termstats"
)

// DefaultSmoothing dampens overrepresentation ratios for rare terms and keeps
// them finite when a term is missing from one corpus.
const DefaultSmoothing = 0.001

// Row compares a single term across two corpora, X and Y.
type Row struct {
	Term       string  `json:"term"`
	FreqX      int     `json:"freq_x"`
	FreqY      int     `json:"freq_y"`
	RelFreqX   float64 `json:"rel_freq_x"`
	RelFreqY   float64 `json:"rel_freq_y"`
	Overrep    float64 `json:"overrepresentation"`
	ChiSquared float64 `json:"chi_squared"`
}

type Options struct {
	Smoothing float64
}

// DefaultOptions returns the options used when the caller passes a zero
// smoothing value.
func DefaultOptions() Options {
	return Options{Smoothing: DefaultSmoothing}
}

// Corpora compares two document-term matrices by word overrepresentation.
func Corpora(x, y *dtm.Matrix, opts Options) []Row {
	return Frequencies(x.TermFrequencies(), y.TermFrequencies(), opts)
}

// Tables compares two term-statistics tables, using only term and frequency.
func Tables(x, y []termstats.Row, opts Options) []Row {
	freqsX := make(map[string]int, len(x))
	for _, row := range x {
		freqsX[row.Term] += row.Frequency
	}
	freqsY := make(map[string]int, len(y))
	for _, row := range y {
		freqsY[row.Term] += row.Frequency
	}
	return Frequencies(freqsX, freqsY, opts)
}

// Frequencies performs a full outer join on term over two frequency tables,
// filling missing frequencies with 0, and computes relative frequencies,
// overrepresentation and the chi-squared contingency statistic per term.
// Rows come back sorted ascending by term so the result is deterministic
// regardless of input order.
func Frequencies(freqsX, freqsY map[string]int, opts Options) []Row {
	smoothing := opts.Smoothing
	if smoothing == 0 {
		smoothing = DefaultSmoothing
	}

	totalX := 0
	for _, freq := range freqsX {
		totalX += freq
	}
	totalY := 0
	for _, freq := range freqsY {
		totalY += freq
	}

	terms := make([]string, 0, len(freqsX)+len(freqsY))
	for term := range freqsX {
		terms = append(terms, term)
	}
	for term := range freqsY {
		if _, ok := freqsX[term]; !ok {
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	rows := make([]Row, 0, len(terms))
	for _, term := range terms {
		freqX := freqsX[term]
		freqY := freqsY[term]

		var relX, relY float64
		if totalX > 0 {
			relX = float64(freqX) / float64(totalX)
		}
		if totalY > 0 {
			relY = float64(freqY) / float64(totalY)
		}

		rows = append(rows, Row{
			Term:       term,
			FreqX:      freqX,
			FreqY:      freqY,
			RelFreqX:   relX,
			RelFreqY:   relY,
			Overrep:    (relX + smoothing) / (relY + smoothing),
			ChiSquared: chiSquared(freqX, freqY, totalX, totalY),
		})
	}
	return rows
}

// chiSquared computes the statistic over the 2x2 contingency table
// {a, b; c, d} = {freqX, freqY; totalX-freqX, totalY-freqY}.
func chiSquared(freqX, freqY, totalX, totalY int) float64 {
	observed := [2][2]float64{
		{float64(freqX), float64(freqY)},
		{float64(totalX - freqX), float64(totalY - freqY)},
	}

	grand := float64(totalX + totalY)
	if grand == 0 {
		return 0
	}

	rowTotals := [2]float64{
		observed[0][0] + observed[0][1],
		observed[1][0] + observed[1][1],
	}
	colTotals := [2]float64{float64(totalX), float64(totalY)}

	statistic := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			expected := rowTotals[i] * colTotals[j] / grand
			if expected == 0 {
				continue
			}
			diff := observed[i][j] - expected
			statistic += diff * diff / expected
		}
	}
	return statistic
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

// SortByOverrep sorts by overrepresentation, ties broken by term string.
// Ascending surfaces terms dominant in Y, descending terms dominant in X.
func SortByOverrep(rows []Row, ascending bool) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Overrep != rows[j].Overrep {
			if ascending {
				return rows[i].Overrep < rows[j].Overrep
			}
			return rows[i].Overrep > rows[j].Overrep
		}
		return rows[i].Term < rows[j].Term
	})
}

// SortByChiSquared sorts descending by chi-squared, ties broken by term string.
func SortByChiSquared(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ChiSquared != rows[j].ChiSquared {
			return rows[i].ChiSquared > rows[j].ChiSquared
		}
		return rows[i].Term < rows[j].Term
	})
}
