// Package nlp defines the tagging contract consumed by feature extraction
// and provides a statistical tagger plus a deterministic fake for tests.
package nlp

import "iter"

// Coarse part-of-speech labels (Universal Dependencies).
const (
	Noun       = "NOUN"
	ProperNoun = "PROPN"
	Verb       = "VERB"
	Aux        = "AUX"
	Adj        = "ADJ"
	Adv        = "ADV"
	Adp        = "ADP"
	Part       = "PART"
	CConj      = "CCONJ"
	SConj      = "SCONJ"
	Det        = "DET"
	Pron       = "PRON"
	Num        = "NUM"
	Punct      = "PUNCT"
	Intj       = "INTJ"
	Sym        = "SYM"
	Other      = "X"
)

// Dependency labels the extractor relies on.
const (
	DepNsubjPass = "nsubjpass"
	DepAuxPass   = "auxpass"
	DepAux       = "aux"
)

// Token is one tagged word.
type Token struct {
	Text  string // Surface form
	Lemma string
	POS   string // Coarse tag, one of the constants above
	Tag   string // Fine-grained Penn Treebank tag
	Dep   string // Dependency relation, empty when unknown
}

// Span is a half-open range of token indexes forming one sentence.
type Span struct {
	Start, End int
}

// Doc is a tagged text.
type Doc struct {
	Tokens []Token
	Spans  []Span
}

// Sentences yields each sentence's tokens in order. The sequence can be
// ranged over any number of times.
func (d *Doc) Sentences() iter.Seq[[]Token] {
	return func(yield func([]Token) bool) {
		for _, s := range d.Spans {
			if !yield(d.Tokens[s.Start:s.End]) {
				return
			}
		}
	}
}

// SentenceCount returns the number of sentences.
func (d *Doc) SentenceCount() int { return len(d.Spans) }

// Tagger turns text into tokens and sentence spans. Implementations must
// be safe for concurrent use.
type Tagger interface {
	Tag(text string) (*Doc, error)
}

// TaggerFunc adapts a function to the Tagger interface.
type TaggerFunc func(text string) (*Doc, error)

func (f TaggerFunc) Tag(text string) (*Doc, error) { return f(text) }

// IsPunct reports whether a Penn tag marks punctuation.
func IsPunct(tag string) bool {
	switch tag {
	case ".", ",", ":", "``", "''", "-LRB-", "-RRB-", "(", ")", "#", "$", "\"", "'", "HYPH", "NFP":
		return true
	}
	return false
}
