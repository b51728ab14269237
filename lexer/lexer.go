package lexer

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/jdkato/prose/v2"
	"github.com/tebeka/snowball"

	"github.com/textmill/corpusdiff/dtm"
)

// Tokenizer selects how BuildMatrix splits documents into tokens.
type Tokenizer int

const (
	// TokenizerRunes is the rune-chopping tokenizer implemented here.
	TokenizerRunes Tokenizer = iota
	// TokenizerProse delegates tokenization to the prose library.
	TokenizerProse
)

// Options configures tokenization. The zero value means plain lowercased
// tokens: no stemming, no stop-word removal, rune tokenizer.
type Options struct {
	Stem      bool
	StopWords map[string]bool
	Tokenizer Tokenizer
}

type Lexer struct {
	content []rune
	opts    Options
	stemmer *snowball.Stemmer
}

// New creates a new Lexer over content. Call Close when done, the snowball
// stemmer holds a native handle.
func New(content string, opts Options) (*Lexer, error) {
	l := &Lexer{content: []rune(content), opts: opts}
	if opts.Stem {
		stemmer, err := snowball.New("english")
		if err != nil {
			return nil, err
		}
		l.stemmer = stemmer
	}
	return l, nil
}

func (l *Lexer) Close() {
	if l.stemmer != nil {
		l.stemmer.Close()
	}
}

// TrimLeft trims empty spaces from the left of the content
func (l *Lexer) TrimLeft() {
	for len(l.content) > 0 && unicode.IsSpace(l.content[0]) {
		l.content = l.content[1:]
	}
}

// Chop chops the content by n and returns the chopped content
func (l *Lexer) Chop(n int) (token []rune) {
	token = l.content[:n]
	l.content = l.content[n:]
	return token
}

// ChopWhile chops the content while the predicate f returns true
func (l *Lexer) ChopWhile(f func(rune) bool) (token []rune) {
	n := 0
	for n < len(l.content) && f(l.content[n]) {
		n += 1
	}
	return l.Chop(n)
}

// NextToken returns the next raw token, nil at end of content.
func (l *Lexer) NextToken() []rune {
	l.TrimLeft()

	if len(l.content) == 0 {
		return nil
	}
	if unicode.IsNumber(l.content[0]) {
		return l.ChopWhile(unicode.IsNumber)
	}
	if unicode.IsLetter(l.content[0]) {
		term := l.ChopWhile(func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsNumber(r)
		})

		token := strings.ToLower(string(term))
		if l.stemmer != nil {
			token = l.stemmer.Stem(token)
		}
		return []rune(token)
	}
	return l.Chop(1)
}

// Next returns the next token as a string, skipping stop words and
// punctuation tokens.
func (l *Lexer) Next() (string, error) {
	for {
		token := l.NextToken()
		if token == nil {
			return "", errors.New("no more tokens")
		}
		word := string(token)
		if !isWordToken(word) {
			continue
		}
		if l.opts.StopWords[word] {
			continue
		}
		return word, nil
	}
}

func isWordToken(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// ProseTokens tokenizes text with the prose library, applying the same
// lowercasing and filtering as the rune tokenizer.
func ProseTokens(text string, opts Options) ([]string, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}

	var stemmer *snowball.Stemmer
	if opts.Stem {
		stemmer, err = snowball.New("english")
		if err != nil {
			return nil, err
		}
		defer stemmer.Close()
	}

	tokens := []string{}
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)
		if !isWordToken(word) {
			continue
		}
		if stemmer != nil {
			word = stemmer.Stem(word)
		}
		if opts.StopWords[word] {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens, nil
}

// Tokens tokenizes one document according to opts.
func Tokens(text string, opts Options) ([]string, error) {
	if opts.Tokenizer == TokenizerProse {
		return ProseTokens(text, opts)
	}

	l, err := New(text, opts)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	tokens := []string{}
	for {
		token, err := l.Next()
		if err != nil {
			break
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// BuildMatrix tokenizes each document and assembles a sparse document-term
// matrix, vocabulary in token encounter order.
func BuildMatrix(docs []string, opts Options) (*dtm.Matrix, error) {
	builder := dtm.NewBuilder()
	for _, doc := range docs {
		tokens, err := Tokens(doc, opts)
		if err != nil {
			return nil, err
		}
		builder.AddTokens(tokens)
	}
	return builder.Build()
}

// ParseHtmlTextContent parses a html string and returns all the text content
func ParseHtmlTextContent(htmlContent string) string {
	var content string

	d := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := d.Next()
		switch tt {
		case html.ErrorToken:
			return content
		case html.TextToken:
			content += string(d.Text())
		}
	}
}
