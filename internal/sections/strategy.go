package sections

import (
	"regexp"

	"github.com/dgallion1/stylegest/internal/paper"
)

// Match is a candidate section start.
type Match struct {
	Kind      paper.Kind
	Offset    int // Start of the heading
	HeaderEnd int // First byte after the heading
	Header    string
}

// Strategy proposes section starts for one kind. The detector tries its
// strategies in order and keeps the first non-empty answer per kind.
type Strategy interface {
	Name() string
	Find(text string, kind paper.Kind) []Match
}

// RegexStrategy proposes every match of its start patterns for a kind.
type RegexStrategy struct {
	name     string
	patterns map[paper.Kind][]*regexp.Regexp
}

// NewRegexStrategy builds a strategy from per-kind start patterns.
func NewRegexStrategy(name string, patterns map[paper.Kind][]*regexp.Regexp) *RegexStrategy {
	return &RegexStrategy{name: name, patterns: patterns}
}

// HeadingStrategy matches lines that hold nothing but a section heading.
func HeadingStrategy() *RegexStrategy {
	return NewRegexStrategy("heading", buildPatterns(headingWords, headingPattern))
}

// KeywordStrategy matches section keywords opening a line, even when body
// text follows on the same line.
func KeywordStrategy() *RegexStrategy {
	return NewRegexStrategy("keyword", buildPatterns(headingWords, keywordPattern))
}

func (s *RegexStrategy) Name() string { return s.name }

func (s *RegexStrategy) Find(text string, kind paper.Kind) []Match {
	var out []Match
	for _, re := range s.patterns[kind] {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			out = append(out, Match{
				Kind:      kind,
				Offset:    loc[0],
				HeaderEnd: loc[1],
				Header:    text[loc[0]:loc[1]],
			})
		}
	}
	return out
}
