package cli

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/textmill/corpusdiff/compare"
	"github.com/textmill/corpusdiff/config"
	"github.com/textmill/corpusdiff/dtm"
	"github.com/textmill/corpusdiff/lexer"
	"github.com/textmill/corpusdiff/logger"
	"github.com/textmill/corpusdiff/termstats"
	"github.com/textmill/corpusdiff/util"
)

//CLI Interface of corpusdiff

const maxTableRows = 25

// LexerOptions translates the loaded config into tokenizer options.
func LexerOptions(cfg config.Config) lexer.Options {
	opts := lexer.Options{Stem: cfg.Stem}
	if cfg.StopWords {
		opts.StopWords = lexer.StopWordSet()
	}
	if cfg.Tokenizer == "prose" {
		opts.Tokenizer = lexer.TokenizerProse
	}
	return opts
}

// LoadMatrix reads every document in dir and builds its document-term matrix.
func LoadMatrix(cfg config.Config, dir string) (*dtm.Matrix, error) {
	docs, err := util.ReadCorpusDirectory(dir)
	if err != nil {
		return nil, err
	}
	return lexer.BuildMatrix(docs, LexerOptions(cfg))
}

// Start the CLI
func InitialPrompt(cfg config.Config) {
	for {
		prompt := &survey.Select{
			Message: "Select an analysis:",
			Options: []string{"○ Term statistics", "○ Compare corpora", "○ Quit"},
		}

		var action string
		err := survey.AskOne(prompt, &action)
		if err != nil {
			log.Fatal(err)
		}

		switch action {
		case "○ Term statistics":
			runStats(cfg)
		case "○ Compare corpora":
			runComparison(cfg)
		default:
			return
		}
	}
}

// Run term statistics for a single selected corpus
func runStats(cfg config.Config) {
	dir, err := util.SelectCorpusDirectory(cfg.CorporaRoot, "Select a corpus:")
	if err != nil {
		logger.HandleError(err)
		return
	}

	start := time.Now()
	matrix, err := LoadMatrix(cfg, cfg.CorporaRoot+"/"+dir)
	if err != nil {
		logger.HandleError(err)
		return
	}

	rows := termstats.Compute(matrix)
	termstats.SortByFrequency(rows)
	elapsed := time.Since(start)

	logger.HandleLog(fmt.Sprintf("%sAnalyzed %d documents, %d terms in %d ms%s", util.TerminalCyan, matrix.DocCount(), matrix.TermCount(), elapsed.Milliseconds(), util.TerminalReset))

	RenderStats(rows)
}

// Run a comparison between two selected corpora
func runComparison(cfg config.Config) {
	dirX, err := util.SelectCorpusDirectory(cfg.CorporaRoot, "Select corpus X:")
	if err != nil {
		logger.HandleError(err)
		return
	}
	dirY, err := util.SelectCorpusDirectory(cfg.CorporaRoot, "Select corpus Y:")
	if err != nil {
		logger.HandleError(err)
		return
	}

	start := time.Now()
	matrixX, err := LoadMatrix(cfg, cfg.CorporaRoot+"/"+dirX)
	if err != nil {
		logger.HandleError(err)
		return
	}
	matrixY, err := LoadMatrix(cfg, cfg.CorporaRoot+"/"+dirY)
	if err != nil {
		logger.HandleError(err)
		return
	}

	rows := compare.Corpora(matrixX, matrixY, compare.Options{Smoothing: cfg.Smoothing})
	compare.SortByChiSquared(rows)
	elapsed := time.Since(start)

	logger.HandleLog(fmt.Sprintf("%sCompared %s against %s in %d ms%s", util.TerminalCyan, dirX, dirY, elapsed.Milliseconds(), util.TerminalReset))

	RenderComparison(rows)
}

// RenderStats prints a term statistics table to stdout.
func RenderStats(rows []termstats.Row) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Term", "Freq", "DocFreq", "RelDocFreq", "TfIdf"})

	max := len(rows)
	if max > maxTableRows {
		max = maxTableRows
	}
	for _, row := range rows[:max] {
		table.Append([]string{
			row.Term,
			strconv.Itoa(row.Frequency),
			strconv.Itoa(row.DocFrequency),
			fmt.Sprintf("%.4f", row.RelDocFrequency),
			fmt.Sprintf("%.4f", row.TfIdf),
		})
	}
	table.Render()
}

// RenderComparison prints a corpus comparison table to stdout.
func RenderComparison(rows []compare.Row) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Term", "FreqX", "FreqY", "RelFreqX", "RelFreqY", "Overrep", "ChiSq"})

	max := len(rows)
	if max > maxTableRows {
		max = maxTableRows
	}
	for _, row := range rows[:max] {
		table.Append([]string{
			row.Term,
			strconv.Itoa(row.FreqX),
			strconv.Itoa(row.FreqY),
			fmt.Sprintf("%.4f", row.RelFreqX),
			fmt.Sprintf("%.4f", row.RelFreqY),
			fmt.Sprintf("%.4f", row.Overrep),
			fmt.Sprintf("%.4f", row.ChiSquared),
		})
	}
	table.Render()
}
