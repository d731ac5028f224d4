package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/dgallion1/stylegest/internal/citation"
	"github.com/dgallion1/stylegest/internal/extract"
	"github.com/dgallion1/stylegest/internal/paper"
)

// DocumentFeatures is everything one analyzed document contributes.
type DocumentFeatures struct {
	ID       string
	Sections map[paper.Kind]extract.FeatureSet
	Citation citation.Style
}

// Aggregator accumulates documents into a StyleReport. It is a single
// writer: callers serialize Add.
type Aggregator struct {
	limits    Limits
	kinds     map[paper.Kind]*kindAcc
	global    extract.FeatureSet
	citations []citation.Style
	docs      int
}

type kindAcc struct {
	features extract.FeatureSet
	docs     int
}

func NewAggregator(limits Limits) *Aggregator {
	return &Aggregator{
		limits: limits.withDefaults(),
		kinds:  make(map[paper.Kind]*kindAcc),
	}
}

// Add folds one document in. Each document counts once toward every mean
// it has a value for, regardless of how many chunks produced it.
func (a *Aggregator) Add(doc DocumentFeatures) {
	a.docs++
	a.citations = append(a.citations, doc.Citation)

	for _, kind := range paper.Kinds {
		fs, ok := doc.Sections[kind]
		if !ok || !kind.Styled() {
			continue
		}
		fs = perDocument(fs)
		acc := a.kinds[kind]
		if acc == nil {
			acc = &kindAcc{}
			a.kinds[kind] = acc
		}
		acc.features = extract.Merge(acc.features, fs)
		acc.docs++
		a.global = extract.Merge(a.global, fs)
	}
}

// Documents returns how many documents have been added.
func (a *Aggregator) Documents() int { return a.docs }

// Build assembles the report.
func (a *Aggregator) Build(journal string, now time.Time) StyleReport {
	r := StyleReport{
		Metadata: Metadata{
			JournalName:    journal,
			AnalysisDate:   now.Format(time.DateTime),
			PapersAnalyzed: a.docs,
		},
		Vocabulary:        a.vocabulary(a.global.Vocabulary),
		TenseDistribution: make(map[paper.Kind]extract.TenseDist),
		TransitionWords:   make(map[string][]TermCount),
		Conjunctions: map[string][]TermCount{
			"coordinating":  {{Term: "coordinating", Count: a.global.Conjunctions.Coordinating}},
			"subordinating": {{Term: "subordinating", Count: a.global.Conjunctions.Subordinating}},
		},
		SentenceAnalysis: SentenceAnalysis{
			LengthDistribution: a.global.LengthBands,
			SentenceTypes:      a.global.SentenceTypes,
		},
		SentenceStructure: SentenceStructure{
			AverageSentenceLength: a.global.Sentences.AvgLength,
			PassiveVoiceRatio:     a.global.PassiveRatio,
			PapersAnalyzed:        a.docs,
		},
		CitationStyle: citation.Vote(a.citations),
		Sections:      make(map[paper.Kind]SectionStyle),
	}
	for cat, n := range a.global.Transitions {
		r.TransitionWords[cat] = []TermCount{{Term: cat, Count: n}}
	}

	for kind, acc := range a.kinds {
		fs := acc.features
		ss := SectionStyle{
			Documents:  acc.docs,
			Vocabulary: a.vocabulary(fs.Vocabulary),
			SentenceAnalysis: SentenceAnalysis{
				LengthDistribution: fs.LengthBands,
				SentenceTypes:      fs.SentenceTypes,
			},
			SentenceStructure: SentenceStructure{
				AverageSentenceLength: fs.Sentences.AvgLength,
				PassiveVoiceRatio:     fs.PassiveRatio,
				PapersAnalyzed:        acc.docs,
			},
			Transitions:   fs.Transitions,
			Conjunctions:  fs.Conjunctions,
			SentenceCount: fs.Sentences.SentenceCount,
			TokenCount:    fs.Sentences.TokenCount,
		}
		if fs.TenseWeight > 0 {
			tense := fs.Tense
			ss.Tense = &tense
			r.TenseDistribution[kind] = tense
		}
		r.Sections[kind] = ss
	}
	return r
}

func (a *Aggregator) vocabulary(v extract.Vocabulary) Vocabulary {
	return Vocabulary{
		Nouns:        TopK(v.Nouns, a.limits.Nouns),
		Verbs:        TopK(v.Verbs, a.limits.Verbs),
		Adjectives:   TopK(v.Adjectives, a.limits.Adjectives),
		Adverbs:      TopK(v.Adverbs, a.limits.Adverbs),
		Prepositions: TopK(v.Prepositions, a.limits.Prepositions),
		Hedges:       TopK(v.Hedges, a.limits.Hedges),
	}
}

// perDocument turns chunk weights into a single observation.
func perDocument(fs extract.FeatureSet) extract.FeatureSet {
	if fs.RatioWeight > 0 {
		fs.RatioWeight = 1
	}
	if fs.TenseWeight > 0 {
		fs.TenseWeight = 1
	}
	return fs
}

// TopK ranks counts by frequency, breaking ties alphabetically, and keeps
// the first k. Zero counts are dropped.
func TopK(counts extract.Counts, k int) []TermCount {
	out := make([]TermCount, 0, len(counts))
	for term, n := range counts {
		if n > 0 {
			out = append(out, TermCount{Term: term, Count: n})
		}
	}
	slices.SortFunc(out, func(x, y TermCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return cmp.Compare(x.Term, y.Term)
	})
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
