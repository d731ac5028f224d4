package extract

// Counts is a term frequency map.
type Counts map[string]int

// Add folds o into c.
func (c Counts) Add(o Counts) {
	for k, v := range o {
		c[k] += v
	}
}

func (c Counts) clone() Counts {
	out := make(Counts, len(c))
	out.Add(c)
	return out
}

// Vocabulary holds the per-category frequency maps. Verbs are keyed by
// lemma, everything else by lowercase surface form.
type Vocabulary struct {
	Nouns        Counts `json:"nouns"`
	Verbs        Counts `json:"verbs"`
	Adjectives   Counts `json:"adjectives"`
	Adverbs      Counts `json:"adverbs"`
	Prepositions Counts `json:"prepositions"`
	Hedges       Counts `json:"hedging_terms"`
}

// TenseDist is the share of verb tokens marked past or present.
type TenseDist struct {
	Past    float64 `json:"past"`
	Present float64 `json:"present"`
}

type SentenceStats struct {
	AvgLength     float64 `json:"avg_length"`
	SentenceCount int     `json:"sentence_count"`
	TokenCount    int     `json:"token_count"`
}

// LengthBands are shares of sentences with at most 10, 11 to 25, and more
// than 25 words.
type LengthBands struct {
	Short  float64 `json:"short"`
	Medium float64 `json:"medium"`
	Long   float64 `json:"long"`
}

type SentenceTypes struct {
	Simple   float64 `json:"simple"`
	Compound float64 `json:"compound"`
	Complex  float64 `json:"complex"`
}

type Conjunctions struct {
	Coordinating  int `json:"coordinating"`
	Subordinating int `json:"subordinating"`
}

// FeatureSet is the bundle of linguistic statistics for a chunk, or for
// any merge of chunks.
//
// Ratio fields are weighted means. RatioWeight counts the merged inputs
// that had at least one sentence and TenseWeight those with at least one
// verb; inputs with zero weight leave the means untouched. This keeps
// Merge associative and commutative.
type FeatureSet struct {
	Vocabulary    Vocabulary     `json:"vocabulary"`
	Tense         TenseDist      `json:"tense_distribution"`
	Sentences     SentenceStats  `json:"sentence_stats"`
	LengthBands   LengthBands    `json:"length_bands"`
	SentenceTypes SentenceTypes  `json:"sentence_types"`
	PassiveRatio  float64        `json:"passive_ratio"`
	Transitions   map[string]int `json:"transition_counts"`
	Conjunctions  Conjunctions   `json:"conjunction_counts"`

	RatioWeight float64 `json:"-"`
	TenseWeight float64 `json:"-"`
}

// Empty reports whether fs carries no observations at all.
func (fs FeatureSet) Empty() bool {
	return fs.RatioWeight == 0 && fs.TenseWeight == 0 && fs.Sentences.TokenCount == 0 &&
		len(fs.Vocabulary.Hedges) == 0 && sumInts(fs.Transitions) == 0 &&
		fs.Conjunctions == (Conjunctions{})
}

// Merge combines two FeatureSets: counts are summed and ratios averaged
// over the inputs that reported them. Neither input is modified.
func Merge(a, b FeatureSet) FeatureSet {
	out := FeatureSet{
		Vocabulary: Vocabulary{
			Nouns:        mergeCounts(a.Vocabulary.Nouns, b.Vocabulary.Nouns),
			Verbs:        mergeCounts(a.Vocabulary.Verbs, b.Vocabulary.Verbs),
			Adjectives:   mergeCounts(a.Vocabulary.Adjectives, b.Vocabulary.Adjectives),
			Adverbs:      mergeCounts(a.Vocabulary.Adverbs, b.Vocabulary.Adverbs),
			Prepositions: mergeCounts(a.Vocabulary.Prepositions, b.Vocabulary.Prepositions),
			Hedges:       mergeCounts(a.Vocabulary.Hedges, b.Vocabulary.Hedges),
		},
		Transitions: mergeInts(a.Transitions, b.Transitions),
		Conjunctions: Conjunctions{
			Coordinating:  a.Conjunctions.Coordinating + b.Conjunctions.Coordinating,
			Subordinating: a.Conjunctions.Subordinating + b.Conjunctions.Subordinating,
		},
		RatioWeight: a.RatioWeight + b.RatioWeight,
		TenseWeight: a.TenseWeight + b.TenseWeight,
	}
	out.Sentences.SentenceCount = a.Sentences.SentenceCount + b.Sentences.SentenceCount
	out.Sentences.TokenCount = a.Sentences.TokenCount + b.Sentences.TokenCount

	if w := out.RatioWeight; w > 0 {
		mean := func(x, y float64) float64 { return (x*a.RatioWeight + y*b.RatioWeight) / w }
		out.Sentences.AvgLength = mean(a.Sentences.AvgLength, b.Sentences.AvgLength)
		out.PassiveRatio = mean(a.PassiveRatio, b.PassiveRatio)
		out.LengthBands = LengthBands{
			Short:  mean(a.LengthBands.Short, b.LengthBands.Short),
			Medium: mean(a.LengthBands.Medium, b.LengthBands.Medium),
			Long:   mean(a.LengthBands.Long, b.LengthBands.Long),
		}
		out.SentenceTypes = SentenceTypes{
			Simple:   mean(a.SentenceTypes.Simple, b.SentenceTypes.Simple),
			Compound: mean(a.SentenceTypes.Compound, b.SentenceTypes.Compound),
			Complex:  mean(a.SentenceTypes.Complex, b.SentenceTypes.Complex),
		}
	}
	if w := out.TenseWeight; w > 0 {
		out.Tense = TenseDist{
			Past:    (a.Tense.Past*a.TenseWeight + b.Tense.Past*b.TenseWeight) / w,
			Present: (a.Tense.Present*a.TenseWeight + b.Tense.Present*b.TenseWeight) / w,
		}
	}
	return out
}

// MergeAll folds sets left to right. The result does not depend on order
// beyond floating-point rounding.
func MergeAll(sets ...FeatureSet) FeatureSet {
	var out FeatureSet
	for _, fs := range sets {
		out = Merge(out, fs)
	}
	return out
}

func mergeCounts(a, b Counts) Counts {
	out := a.clone()
	out.Add(b)
	return out
}

func mergeInts(a, b map[string]int) map[string]int {
	out := make(map[string]int, len(a))
	for k, v := range a {
		out[k] += v
	}
	for k, v := range b {
		out[k] += v
	}
	return out
}

func sumInts(m map[string]int) int {
	var n int
	for _, v := range m {
		n += v
	}
	return n
}
