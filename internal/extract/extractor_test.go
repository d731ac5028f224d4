package extract

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/stylegest/internal/chunker"
	"github.com/dgallion1/stylegest/internal/lexicon"
	"github.com/dgallion1/stylegest/internal/nlp"
	"github.com/dgallion1/stylegest/internal/paper"
)

func newTestExtractor(tagger nlp.Tagger, stats *LatencyStats) *Extractor {
	return NewExtractor(lexicon.Default(), tagger, chunker.DefaultConfig(), stats, nil)
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExtractChunk_Features(t *testing.T) {
	text := "The samples were carefully collected in summer. We measured growth and it increased because light was visible."
	fs, err := newTestExtractor(nlp.FakeTagger{}, nil).ExtractChunk(paper.Chunk{Text: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := fs.Vocabulary
	for _, noun := range []string{"samples", "summer", "growth", "light"} {
		if v.Nouns[noun] != 1 {
			t.Errorf("expected noun %q count 1, got %d", noun, v.Nouns[noun])
		}
	}
	for _, verb := range []string{"collect", "measure", "increase"} {
		if v.Verbs[verb] != 1 {
			t.Errorf("expected verb lemma %q count 1, got %d", verb, v.Verbs[verb])
		}
	}
	if _, ok := v.Verbs["be"]; ok {
		t.Error("expected auxiliaries excluded from verbs")
	}
	if v.Adverbs["carefully"] != 1 {
		t.Errorf("expected adverb carefully, got %v", v.Adverbs)
	}
	if v.Adjectives["visible"] != 1 {
		t.Errorf("expected adjective visible, got %v", v.Adjectives)
	}
	if v.Prepositions["in"] != 1 {
		t.Errorf("expected preposition in, got %v", v.Prepositions)
	}

	if fs.Sentences.SentenceCount != 2 {
		t.Errorf("expected 2 sentences, got %d", fs.Sentences.SentenceCount)
	}
	if fs.Sentences.TokenCount != 17 {
		t.Errorf("expected 17 tokens, got %d", fs.Sentences.TokenCount)
	}
	if !approx(fs.Sentences.AvgLength, 8.5) {
		t.Errorf("expected avg length 8.5, got %f", fs.Sentences.AvgLength)
	}
	if !approx(fs.LengthBands.Short, 1) {
		t.Errorf("expected all short sentences, got %+v", fs.LengthBands)
	}
	if !approx(fs.SentenceTypes.Simple, 0.5) || !approx(fs.SentenceTypes.Complex, 0.5) {
		t.Errorf("expected half simple half complex, got %+v", fs.SentenceTypes)
	}
	if !approx(fs.PassiveRatio, 0.5) {
		t.Errorf("expected passive ratio 0.5, got %f", fs.PassiveRatio)
	}
	if !approx(fs.Tense.Past, 1) || !approx(fs.Tense.Present, 0) {
		t.Errorf("expected all past tense, got %+v", fs.Tense)
	}
	if fs.Conjunctions.Coordinating != 1 || fs.Conjunctions.Subordinating != 1 {
		t.Errorf("expected 1 coordinating and 1 subordinating, got %+v", fs.Conjunctions)
	}
	if fs.Transitions[lexicon.Causal] != 1 {
		t.Errorf("expected 1 causal transition, got %d", fs.Transitions[lexicon.Causal])
	}
	for _, cat := range lexicon.TransitionCategories {
		if _, ok := fs.Transitions[cat]; !ok {
			t.Errorf("expected category %q present", cat)
		}
	}
	if fs.RatioWeight != 1 || fs.TenseWeight != 1 {
		t.Errorf("expected unit weights, got ratio=%f tense=%f", fs.RatioWeight, fs.TenseWeight)
	}
}

func TestExtractChunk_TenseSplit(t *testing.T) {
	fs, _ := newTestExtractor(nlp.FakeTagger{}, nil).ExtractChunk(paper.Chunk{Text: "Results show that growth increased."})
	if !approx(fs.Tense.Past, 0.5) || !approx(fs.Tense.Present, 0.5) {
		t.Errorf("expected even tense split, got %+v", fs.Tense)
	}
	if !approx(fs.SentenceTypes.Complex, 1) {
		t.Errorf("expected complex sentence, got %+v", fs.SentenceTypes)
	}
}

func TestExtractChunk_Hedges(t *testing.T) {
	text := "These results suggest that growth may be limited. It may rise. Dismay is not a hedge."
	fs, _ := newTestExtractor(nlp.FakeTagger{}, nil).ExtractChunk(paper.Chunk{Text: text})
	if fs.Vocabulary.Hedges["suggest"] != 1 {
		t.Errorf("expected suggest=1, got %d", fs.Vocabulary.Hedges["suggest"])
	}
	if fs.Vocabulary.Hedges["may"] != 2 {
		t.Errorf("expected may=2, got %d", fs.Vocabulary.Hedges["may"])
	}
}

func TestExtractChunk_PrepositionsFromPOS(t *testing.T) {
	// Prepositions come from the tagger, so a lexicon without any word
	// lists still counts them.
	ex := NewExtractor(lexicon.MustNew(lexicon.Lists{}), nlp.FakeTagger{}, chunker.DefaultConfig(), nil, nil)
	fs, err := ex.ExtractChunk(paper.Chunk{Text: "Roots grew into the soil during winter."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, prep := range []string{"into", "during"} {
		if fs.Vocabulary.Prepositions[prep] != 1 {
			t.Errorf("expected preposition %q count 1, got %v", prep, fs.Vocabulary.Prepositions)
		}
	}
}

func TestExtractChunk_Blank(t *testing.T) {
	fs, err := newTestExtractor(nlp.FakeTagger{}, nil).ExtractChunk(paper.Chunk{Text: "  \n "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fs.Empty() {
		t.Errorf("expected empty feature set, got %+v", fs)
	}
}

func TestExtractChunk_TaggerError(t *testing.T) {
	boom := errors.New("model unavailable")
	tagger := nlp.TaggerFunc(func(string) (*nlp.Doc, error) { return nil, boom })
	_, err := newTestExtractor(tagger, nil).ExtractChunk(paper.Chunk{Text: "text", Index: 3})

	var ce *ChunkError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ChunkError, got %v", err)
	}
	if ce.Index != 3 {
		t.Errorf("expected index 3, got %d", ce.Index)
	}
	if !errors.Is(err, boom) {
		t.Errorf("expected cause to unwrap, got %v", err)
	}
}

func TestExtractChunk_RecoversPanic(t *testing.T) {
	tagger := nlp.TaggerFunc(func(string) (*nlp.Doc, error) { panic("index out of range") })
	stats := NewLatencyStats(time.Hour)
	fs, err := newTestExtractor(tagger, stats).ExtractChunk(paper.Chunk{Text: "text"})

	if !errors.Is(err, ErrTaggerPanic) {
		t.Fatalf("expected ErrTaggerPanic, got %v", err)
	}
	if !fs.Empty() {
		t.Error("expected empty feature set after panic")
	}
	if snap := stats.Snapshot(); snap.Failures != 1 {
		t.Errorf("expected 1 failure recorded, got %d", snap.Failures)
	}
}

func longSection(paras int) string {
	sent := "We measured growth in summer. "
	para := strings.TrimSpace(strings.Repeat(sent, 100))
	parts := make([]string, paras)
	for i := range parts {
		parts[i] = para
	}
	return strings.Join(parts, "\n\n")
}

func TestExtractSection_DegradedRetry(t *testing.T) {
	text := longSection(2) // one 6000 char chunk at the default bound
	var calls []int
	tagger := nlp.TaggerFunc(func(s string) (*nlp.Doc, error) {
		n := utf8.RuneCountInString(s)
		calls = append(calls, n)
		if n > 4000 {
			return nil, fmt.Errorf("too long: %d", n)
		}
		return nlp.FakeTagger{}.Tag(s)
	})
	stats := NewLatencyStats(time.Hour)
	fs := newTestExtractor(tagger, stats).ExtractSection(text, nil)

	if len(calls) != 3 {
		t.Fatalf("expected 1 failed call and 2 retries, got %v", calls)
	}
	if fs.Sentences.SentenceCount != 200 {
		t.Errorf("expected 200 sentences after retry, got %d", fs.Sentences.SentenceCount)
	}
	if fs.Vocabulary.Nouns["growth"] != 200 {
		t.Errorf("expected growth=200, got %d", fs.Vocabulary.Nouns["growth"])
	}
	if fs.RatioWeight != 2 {
		t.Errorf("expected ratio weight 2, got %f", fs.RatioWeight)
	}
	if snap := stats.Snapshot(); snap.Failures != 1 || snap.Count != 2 || snap.Retries != 1 {
		t.Errorf("expected 1 failure, 1 retry and 2 samples, got %+v", snap)
	}
}

func TestExtractSection_RepeatedFailureSkips(t *testing.T) {
	tagger := nlp.TaggerFunc(func(string) (*nlp.Doc, error) { return nil, errors.New("broken") })
	stats := NewLatencyStats(time.Hour)
	fs := newTestExtractor(tagger, stats).ExtractSection(longSection(2), nil)

	if !fs.Empty() {
		t.Errorf("expected empty feature set, got %+v", fs)
	}
	if snap := stats.Snapshot(); snap.Failures != 3 {
		t.Errorf("expected 3 failures, got %d", snap.Failures)
	}
}

func TestExtractSection_PartialFailure(t *testing.T) {
	// Only the second retry piece fails; the first still counts.
	n := 0
	tagger := nlp.TaggerFunc(func(s string) (*nlp.Doc, error) {
		n++
		if n == 1 || n == 3 {
			return nil, errors.New("flaky")
		}
		return nlp.FakeTagger{}.Tag(s)
	})
	fs := newTestExtractor(tagger, nil).ExtractSection(longSection(2), nil)
	if fs.Sentences.SentenceCount != 100 {
		t.Errorf("expected 100 sentences from surviving piece, got %d", fs.Sentences.SentenceCount)
	}
}
