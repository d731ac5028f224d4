package extract

import (
	"testing"

	"github.com/dgallion1/stylegest/internal/nlp"
	"github.com/dgallion1/stylegest/internal/paper"
)

func featuresOf(t *testing.T, text string) FeatureSet {
	t.Helper()
	fs, err := newTestExtractor(nlp.FakeTagger{}, nil).ExtractChunk(paper.Chunk{Text: text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return fs
}

func TestMerge_AssociativeCommutative(t *testing.T) {
	a := featuresOf(t, "The samples were collected. Growth increased because light was visible.")
	b := featuresOf(t, "We measured growth and yield in summer across all plots of the forest stand.")
	c := featuresOf(t, "Results show that growth may vary. However, stands differ.")

	abc := MergeAll(a, b, c)
	cba := MergeAll(c, b, a)
	grouped := Merge(a, Merge(b, c))

	for _, other := range []FeatureSet{cba, grouped} {
		if abc.Sentences.SentenceCount != other.Sentences.SentenceCount ||
			abc.Sentences.TokenCount != other.Sentences.TokenCount {
			t.Errorf("expected equal sentence stats, got %+v and %+v", abc.Sentences, other.Sentences)
		}
		if abc.Vocabulary.Nouns["growth"] != other.Vocabulary.Nouns["growth"] {
			t.Errorf("expected equal noun counts")
		}
		if abc.Conjunctions != other.Conjunctions {
			t.Errorf("expected equal conjunctions, got %+v and %+v", abc.Conjunctions, other.Conjunctions)
		}
		for k, v := range abc.Transitions {
			if other.Transitions[k] != v {
				t.Errorf("transition %s: expected %d, got %d", k, v, other.Transitions[k])
			}
		}
		pairs := [][2]float64{
			{abc.Sentences.AvgLength, other.Sentences.AvgLength},
			{abc.PassiveRatio, other.PassiveRatio},
			{abc.LengthBands.Short, other.LengthBands.Short},
			{abc.LengthBands.Medium, other.LengthBands.Medium},
			{abc.SentenceTypes.Complex, other.SentenceTypes.Complex},
			{abc.Tense.Past, other.Tense.Past},
		}
		for i, p := range pairs {
			if !approx(p[0], p[1]) {
				t.Errorf("ratio %d: expected %f, got %f", i, p[0], p[1])
			}
		}
	}

	if abc.Vocabulary.Nouns["growth"] != 3 {
		t.Errorf("expected growth=3, got %d", abc.Vocabulary.Nouns["growth"])
	}
	wantAvg := (a.Sentences.AvgLength + b.Sentences.AvgLength + c.Sentences.AvgLength) / 3
	if !approx(abc.Sentences.AvgLength, wantAvg) {
		t.Errorf("expected mean avg length %f, got %f", wantAvg, abc.Sentences.AvgLength)
	}
}

func TestMerge_EmptyDoesNotDilute(t *testing.T) {
	a := featuresOf(t, "The samples were collected. Growth increased because light was visible.")
	merged := MergeAll(FeatureSet{}, a, FeatureSet{})

	if !approx(merged.PassiveRatio, a.PassiveRatio) {
		t.Errorf("expected passive ratio %f, got %f", a.PassiveRatio, merged.PassiveRatio)
	}
	if !approx(merged.Sentences.AvgLength, a.Sentences.AvgLength) {
		t.Errorf("expected avg length %f, got %f", a.Sentences.AvgLength, merged.Sentences.AvgLength)
	}
	if merged.RatioWeight != 1 {
		t.Errorf("expected weight 1, got %f", merged.RatioWeight)
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := featuresOf(t, "Growth increased.")
	b := featuresOf(t, "Growth increased again.")
	_ = Merge(a, b)
	if a.Vocabulary.Nouns["growth"] != 1 {
		t.Errorf("expected input unchanged, got %d", a.Vocabulary.Nouns["growth"])
	}
}
