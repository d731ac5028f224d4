package nlp

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
)

// ProseTagger tags English text with the averaged-perceptron model shipped
// in github.com/jdkato/prose. prose has no dependency parser, so passive
// constructions are labeled by a local heuristic over the Penn tags.
//
// The model is decoded once and only read afterwards, so one ProseTagger
// is safe for concurrent use.
type ProseTagger struct {
	maxChars int
	model    *prose.Model
}

// NewProseTagger returns a tagger that refuses inputs longer than maxChars
// characters. A non-positive bound disables the check.
func NewProseTagger(maxChars int) *ProseTagger {
	return &ProseTagger{maxChars: maxChars, model: prose.ModelFromData("stylegest")}
}

func (p *ProseTagger) Tag(text string) (*Doc, error) {
	if p.maxChars > 0 {
		if n := utf8.RuneCountInString(text); n > p.maxChars {
			return nil, fmt.Errorf("text of %d chars exceeds tagger limit %d", n, p.maxChars)
		}
	}
	pd, err := p.document(text)
	if err != nil {
		return nil, err
	}

	ptoks := pd.Tokens()
	tokens := make([]Token, len(ptoks))
	for i, t := range ptoks {
		tokens[i] = newToken(t.Text, t.Tag)
	}
	labelPassives(tokens)

	var sents []string
	for _, s := range pd.Sentences() {
		sents = append(sents, s.Text)
	}
	texts := make([]string, len(ptoks))
	for i, t := range ptoks {
		texts[i] = t.Text
	}
	return &Doc{Tokens: tokens, Spans: alignSentences(text, sents, texts)}, nil
}

func (p *ProseTagger) document(text string) (*prose.Document, error) {
	pd, err := prose.NewDocument(text, prose.WithExtraction(false), prose.UsingModel(p.model))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}
	return pd, nil
}

// alignSentences maps sentence strings onto token index ranges by locating
// both in the source text. Tokens that cannot be located stay with the
// sentence currently being filled.
func alignSentences(text string, sents, toks []string) []Span {
	if len(toks) == 0 {
		return nil
	}
	if len(sents) == 0 {
		return []Span{{0, len(toks)}}
	}

	ends := make([]int, 0, len(sents))
	cursor := 0
	for _, s := range sents {
		if at := strings.Index(text[cursor:], s); at >= 0 {
			cursor += at + len(s)
		}
		ends = append(ends, cursor)
	}
	ends[len(ends)-1] = len(text)

	var spans []Span
	start, sent, pos := 0, 0, 0
	for i, tok := range toks {
		if at := strings.Index(text[pos:], tok); at >= 0 {
			off := pos + at
			for sent < len(ends)-1 && off >= ends[sent] {
				if i > start {
					spans = append(spans, Span{start, i})
				}
				start = i
				sent++
			}
			pos = off + len(tok)
		}
	}
	return append(spans, Span{start, len(toks)})
}

func newToken(text, tag string) Token {
	t := Token{Text: text, Tag: tag, Lemma: strings.ToLower(text)}
	if strings.HasPrefix(tag, "VB") {
		t.Lemma = LemmatizeVerb(text)
	}
	t.POS = coarsePOS(tag, t.Lemma)
	return t
}

// coarsePOS maps a Penn Treebank tag onto the Universal Dependencies set.
func coarsePOS(tag, lemma string) string {
	switch tag {
	case "NN", "NNS":
		return Noun
	case "NNP", "NNPS":
		return ProperNoun
	case "MD":
		return Aux
	case "JJ", "JJR", "JJS":
		return Adj
	case "RB", "RBR", "RBS", "WRB":
		return Adv
	case "IN":
		switch lemma {
		case "that", "because", "if", "whether", "although", "while", "since", "unless", "though":
			return SConj
		}
		return Adp
	case "RP":
		return Adp
	case "TO", "POS":
		return Part
	case "CC":
		return CConj
	case "DT", "PDT", "WDT":
		return Det
	case "PRP", "PRP$", "WP", "WP$", "EX":
		return Pron
	case "CD":
		return Num
	case "UH":
		return Intj
	case "SYM":
		return Sym
	case "FW", "LS":
		return Other
	}
	if strings.HasPrefix(tag, "VB") {
		if lemma == "be" {
			return Aux
		}
		return Verb
	}
	if IsPunct(tag) {
		return Punct
	}
	return Other
}

// labelPassives marks "be (adverbs) VBN" as a passive construction: the
// be-form becomes auxpass and the nearest preceding nominal becomes
// nsubjpass. Forms of "have" directly before a verb are labeled aux.
func labelPassives(tokens []Token) {
	for i := range tokens {
		switch tokens[i].Lemma {
		case "have":
			if next := nextNonAdverb(tokens, i+1); next >= 0 && strings.HasPrefix(tokens[next].Tag, "VB") {
				tokens[i].Dep = DepAux
				tokens[i].POS = Aux
			}
		case "be":
			next := nextNonAdverb(tokens, i+1)
			if next < 0 || tokens[next].Tag != "VBN" {
				continue
			}
			tokens[i].Dep = DepAuxPass
			for j := i - 1; j >= 0; j-- {
				if IsPunct(tokens[j].Tag) && tokens[j].Tag != "," {
					break
				}
				if p := tokens[j].POS; p == Noun || p == ProperNoun || p == Pron {
					if tokens[j].Dep == "" {
						tokens[j].Dep = DepNsubjPass
					}
					break
				}
			}
		}
	}
}

func nextNonAdverb(tokens []Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if tokens[i].POS != Adv {
			return i
		}
	}
	return -1
}
