// Package report folds per-document features into a corpus StyleReport.
package report

import (
	"github.com/dgallion1/stylegest/internal/citation"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/paper"
)

// TermCount is one entry of a ranked frequency list.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// Limits caps each ranked vocabulary list.
type Limits struct {
	Nouns        int `json:"nouns"`
	Verbs        int `json:"verbs"`
	Adjectives   int `json:"adjectives"`
	Adverbs      int `json:"adverbs"`
	Prepositions int `json:"prepositions"`
	Hedges       int `json:"hedging_terms"`
}

func DefaultLimits() Limits {
	return Limits{
		Nouns:        50,
		Verbs:        30,
		Adjectives:   40,
		Adverbs:      40,
		Prepositions: 40,
		Hedges:       20,
	}
}

// withDefaults replaces non-positive limits with the defaults.
func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	pick := func(v, d int) int {
		if v <= 0 {
			return d
		}
		return v
	}
	return Limits{
		Nouns:        pick(l.Nouns, def.Nouns),
		Verbs:        pick(l.Verbs, def.Verbs),
		Adjectives:   pick(l.Adjectives, def.Adjectives),
		Adverbs:      pick(l.Adverbs, def.Adverbs),
		Prepositions: pick(l.Prepositions, def.Prepositions),
		Hedges:       pick(l.Hedges, def.Hedges),
	}
}

type Metadata struct {
	JournalName    string `json:"journal_name"`
	AnalysisDate   string `json:"analysis_date"`
	PapersAnalyzed int    `json:"papers_analyzed"`
}

// Vocabulary holds ranked, trimmed frequency lists.
type Vocabulary struct {
	Nouns        []TermCount `json:"nouns"`
	Verbs        []TermCount `json:"verbs"`
	Adjectives   []TermCount `json:"adjectives"`
	Adverbs      []TermCount `json:"adverbs"`
	Prepositions []TermCount `json:"prepositions"`
	Hedges       []TermCount `json:"hedging_terms"`
}

type SentenceAnalysis struct {
	LengthDistribution extract.LengthBands   `json:"length_distribution"`
	SentenceTypes      extract.SentenceTypes `json:"sentence_types"`
}

type SentenceStructure struct {
	AverageSentenceLength float64 `json:"average_sentence_length"`
	PassiveVoiceRatio     float64 `json:"passive_voice_ratio"`
	PapersAnalyzed        int     `json:"papers_analyzed"`
}

// SectionStyle is the aggregate for one section kind across the corpus.
type SectionStyle struct {
	Documents         int                  `json:"documents"`
	Vocabulary        Vocabulary           `json:"vocabulary"`
	Tense             *extract.TenseDist   `json:"tense_distribution,omitempty"`
	SentenceAnalysis  SentenceAnalysis     `json:"sentence_analysis"`
	SentenceStructure SentenceStructure    `json:"sentence_structure"`
	Transitions       map[string]int       `json:"transition_counts"`
	Conjunctions      extract.Conjunctions `json:"conjunction_counts"`
	SentenceCount     int                  `json:"sentence_count"`
	TokenCount        int                  `json:"token_count"`
}

// StyleReport is the corpus-level output. It is not modified after
// Build returns it.
type StyleReport struct {
	Metadata          Metadata                         `json:"metadata"`
	Vocabulary        Vocabulary                       `json:"vocabulary"`
	TenseDistribution map[paper.Kind]extract.TenseDist `json:"tense_distribution"`
	TransitionWords   map[string][]TermCount           `json:"transition_words"`
	Conjunctions      map[string][]TermCount           `json:"conjunctions"`
	SentenceAnalysis  SentenceAnalysis                 `json:"sentence_analysis"`
	SentenceStructure SentenceStructure                `json:"sentence_structure"`
	CitationStyle     citation.Style                   `json:"citation_style"`
	Sections          map[paper.Kind]SectionStyle      `json:"sections"`
}
