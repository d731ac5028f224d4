package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/stylegest/internal/chunker"
	"github.com/dgallion1/stylegest/internal/lexicon"
	"github.com/dgallion1/stylegest/internal/nlp"
	"github.com/dgallion1/stylegest/internal/paper"
)

// ChunkError reports a chunk that could not be analyzed.
type ChunkError struct {
	Index int
	Chars int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d (%d chars): %v", e.Index, e.Chars, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// ErrTaggerPanic wraps a panic recovered from the tagger.
var ErrTaggerPanic = errors.New("tagger panic")

// Extractor computes FeatureSets from chunk text.
type Extractor struct {
	lex    *lexicon.Lexicon
	tagger nlp.Tagger
	chunks chunker.Config
	stats  *LatencyStats
	log    *slog.Logger
}

// NewExtractor wires an extractor. stats may be nil.
func NewExtractor(lex *lexicon.Lexicon, tagger nlp.Tagger, chunks chunker.Config, stats *LatencyStats, log *slog.Logger) *Extractor {
	if lex == nil {
		lex = lexicon.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	def := chunker.DefaultConfig()
	if chunks.MaxChars <= 0 {
		chunks.MaxChars = def.MaxChars
	}
	if chunks.RetryChars <= 0 {
		chunks.RetryChars = def.RetryChars
	}
	return &Extractor{lex: lex, tagger: tagger, chunks: chunks, stats: stats, log: log}
}

// ExtractSection splits a section body into chunks and merges their
// features. A chunk that fails is split again at the retry bound; a piece
// that fails a second time contributes nothing. It never returns an error.
func (e *Extractor) ExtractSection(text string, log *slog.Logger) FeatureSet {
	if log == nil {
		log = e.log
	}
	var out FeatureSet
	for _, c := range chunker.Split(text, e.chunks.MaxChars) {
		fs, err := e.ExtractChunk(c)
		if err == nil {
			out = Merge(out, fs)
			continue
		}
		log.Warn("chunk extraction failed, retrying smaller", "error", err, "retry_chars", e.chunks.RetryChars)
		if e.stats != nil {
			e.stats.RecordRetry()
		}
		for _, sub := range chunker.Resplit(c.Text, e.chunks.RetryChars) {
			fs, err := e.ExtractChunk(sub)
			if err != nil {
				log.Error("chunk skipped", "error", err)
				continue
			}
			out = Merge(out, fs)
		}
	}
	return out
}

// ExtractChunk tags one chunk and computes its features. Tagger errors and
// panics come back as *ChunkError.
func (e *Extractor) ExtractChunk(c paper.Chunk) (fs FeatureSet, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			fs, err = FeatureSet{}, fmt.Errorf("%w: %v", ErrTaggerPanic, r)
		}
		if err != nil {
			err = &ChunkError{Index: c.Index, Chars: utf8.RuneCountInString(c.Text), Err: err}
			if e.stats != nil {
				e.stats.RecordFailure()
			}
			return
		}
		if e.stats != nil {
			e.stats.Record(time.Since(start).Milliseconds(), utf8.RuneCountInString(c.Text))
		}
	}()

	if strings.TrimSpace(c.Text) == "" {
		return FeatureSet{}, nil
	}
	doc, err := e.tagger.Tag(c.Text)
	if err != nil {
		return FeatureSet{}, err
	}
	return e.Features(doc, c.Text), nil
}

// Features computes a FeatureSet from a tagged document and its source text.
func (e *Extractor) Features(doc *nlp.Doc, text string) FeatureSet {
	fs := FeatureSet{
		Vocabulary: Vocabulary{
			Nouns:        Counts{},
			Verbs:        Counts{},
			Adjectives:   Counts{},
			Adverbs:      Counts{},
			Prepositions: Counts{},
			Hedges:       Counts{},
		},
		Transitions: make(map[string]int),
	}

	e.countVocabulary(doc.Tokens, &fs)
	e.countTense(doc.Tokens, &fs)
	e.countSentences(doc, &fs)

	lowered := strings.ToLower(text)
	for _, h := range e.lex.Hedges() {
		if n := h.Count(lowered); n > 0 {
			fs.Vocabulary.Hedges[h.Word] += n
		}
	}
	for _, cat := range e.lex.Categories() {
		n := 0
		for _, term := range e.lex.Transitions(cat) {
			n += term.Count(lowered)
		}
		fs.Transitions[cat] = n
	}
	return fs
}

func (e *Extractor) countVocabulary(tokens []nlp.Token, fs *FeatureSet) {
	v := &fs.Vocabulary
	for _, tok := range tokens {
		lower := strings.ToLower(tok.Text)
		switch {
		case e.lex.IsCoordinating(lower):
			fs.Conjunctions.Coordinating++
		case e.lex.IsSubordinating(lower):
			fs.Conjunctions.Subordinating++
		}

		if tok.POS == nlp.Adp && utf8.RuneCountInString(lower) > 1 {
			v.Prepositions[lower]++
			continue
		}
		if utf8.RuneCountInString(lower) <= 2 || e.lex.IsStopWord(lower) {
			continue
		}
		switch tok.POS {
		case nlp.Noun:
			v.Nouns[lower]++
		case nlp.Verb:
			lemma := strings.ToLower(tok.Lemma)
			if lemma == "" {
				lemma = lower
			}
			v.Verbs[lemma]++
		case nlp.Adj:
			v.Adjectives[lower]++
		case nlp.Adv:
			v.Adverbs[lower]++
		}
	}
}

func (e *Extractor) countTense(tokens []nlp.Token, fs *FeatureSet) {
	var past, present int
	for _, tok := range tokens {
		switch {
		case tok.Tag == "VBD", tok.Tag == "VBN" && tok.Dep != nlp.DepAux:
			past++
		case strings.HasPrefix(tok.Tag, "VB"):
			present++
		}
	}
	if total := past + present; total > 0 {
		fs.Tense = TenseDist{
			Past:    float64(past) / float64(total),
			Present: float64(present) / float64(total),
		}
		fs.TenseWeight = 1
	}
}

func (e *Extractor) countSentences(doc *nlp.Doc, fs *FeatureSet) {
	var (
		sentences, words        int
		short, medium, long     int
		simple, compound, cmplx int
	)
	for sent := range doc.Sentences() {
		n := 0
		var coord, sub bool
		for _, tok := range sent {
			if tok.POS == nlp.Punct || nlp.IsPunct(tok.Tag) {
				continue
			}
			n++
			lower := strings.ToLower(tok.Text)
			coord = coord || e.lex.IsCoordinating(lower)
			sub = sub || e.lex.IsSubordinating(lower)
		}
		if n == 0 {
			continue
		}
		sentences++
		words += n

		switch {
		case n <= 10:
			short++
		case n <= 25:
			medium++
		default:
			long++
		}
		switch {
		case sub:
			cmplx++
		case coord:
			compound++
		default:
			simple++
		}
	}

	fs.Sentences.SentenceCount = sentences
	fs.Sentences.TokenCount = words
	if sentences == 0 {
		return
	}

	var passive int
	for _, tok := range doc.Tokens {
		if tok.Dep == nlp.DepNsubjPass {
			passive++
		}
	}
	total := float64(sentences)
	fs.Sentences.AvgLength = float64(words) / total
	fs.LengthBands = LengthBands{
		Short:  float64(short) / total,
		Medium: float64(medium) / total,
		Long:   float64(long) / total,
	}
	fs.SentenceTypes = SentenceTypes{
		Simple:   float64(simple) / total,
		Compound: float64(compound) / total,
		Complex:  float64(cmplx) / total,
	}
	fs.PassiveRatio = min(float64(passive)/total, 1)
	fs.RatioWeight = 1
}
