package nlp

import (
	"strings"
	"testing"
)

func TestLemmatizeVerb(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"measured", "measure"},
		{"analyzed", "analyze"},
		{"increased", "increase"},
		{"observed", "observe"},
		{"used", "use"},
		{"collected", "collect"},
		{"stopped", "stop"},
		{"sampling", "sample"},
		{"varies", "vary"},
		{"studied", "study"},
		{"shows", "show"},
		{"was", "be"},
		{"Were", "be"},
		{"has", "have"},
		{"found", "find"},
		{"appeared", "appear"},
		{"exceed", "exceed"},
		{"agreed", "agree"},
		{"discuss", "discuss"},
	}
	for _, tt := range tests {
		if got := LemmatizeVerb(tt.in); got != tt.want {
			t.Errorf("LemmatizeVerb(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestCoarsePOS(t *testing.T) {
	tests := []struct {
		tag, lemma, want string
	}{
		{"NNS", "samples", Noun},
		{"NNP", "smith", ProperNoun},
		{"VBD", "measure", Verb},
		{"VBD", "be", Aux},
		{"MD", "may", Aux},
		{"IN", "of", Adp},
		{"IN", "because", SConj},
		{"CC", "and", CConj},
		{"JJ", "significant", Adj},
		{"RB", "significantly", Adv},
		{".", ".", Punct},
		{"CD", "12", Num},
	}
	for _, tt := range tests {
		if got := coarsePOS(tt.tag, tt.lemma); got != tt.want {
			t.Errorf("coarsePOS(%q, %q): expected %q, got %q", tt.tag, tt.lemma, tt.want, got)
		}
	}
}

func TestFakeTagger_Sentences(t *testing.T) {
	doc, err := FakeTagger{}.Tag("The samples were collected in May. We measured growth!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.SentenceCount() != 2 {
		t.Fatalf("expected 2 sentences, got %d", doc.SentenceCount())
	}

	var lens []int
	for s := range doc.Sentences() {
		lens = append(lens, len(s))
	}
	if len(lens) != 2 || lens[0] != 7 || lens[1] != 4 {
		t.Errorf("expected sentence lengths [7 4], got %v", lens)
	}

	// The sequence can be consumed again.
	n := 0
	for range doc.Sentences() {
		n++
	}
	if n != 2 {
		t.Errorf("expected restartable sequence of 2, got %d", n)
	}
}

func TestFakeTagger_EarlyBreak(t *testing.T) {
	doc, _ := FakeTagger{}.Tag("One. Two. Three.")
	n := 0
	for range doc.Sentences() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("expected to stop after 1 sentence, got %d", n)
	}
}

func TestFakeTagger_Passive(t *testing.T) {
	doc, _ := FakeTagger{}.Tag("The samples were carefully collected.")

	var subj, aux, part *Token
	for i := range doc.Tokens {
		tok := &doc.Tokens[i]
		switch tok.Dep {
		case DepNsubjPass:
			subj = tok
		case DepAuxPass:
			aux = tok
		}
		if tok.Tag == "VBN" {
			part = tok
		}
	}
	if subj == nil || subj.Text != "samples" {
		t.Fatalf("expected nsubjpass on samples, got %+v", subj)
	}
	if aux == nil || aux.Text != "were" {
		t.Errorf("expected auxpass on were, got %+v", aux)
	}
	if part == nil || part.Lemma != "collect" || part.POS != Verb {
		t.Errorf("expected VBN collected with lemma collect, got %+v", part)
	}
}

func TestFakeTagger_ActiveHasNoPassive(t *testing.T) {
	doc, _ := FakeTagger{}.Tag("We collected the samples and had measured growth.")
	for _, tok := range doc.Tokens {
		if tok.Dep == DepNsubjPass || tok.Dep == DepAuxPass {
			t.Errorf("unexpected passive label on %q", tok.Text)
		}
		if tok.Text == "had" && tok.Dep != DepAux {
			t.Errorf("expected had to be aux, got %q", tok.Dep)
		}
	}
}

func TestAlignSentences(t *testing.T) {
	text := "Plants grew. Roots did not.  Leaves fell."
	sents := []string{"Plants grew.", "Roots did not.", "Leaves fell."}
	toks := []string{"Plants", "grew", ".", "Roots", "did", "not", ".", "Leaves", "fell", "."}

	spans := alignSentences(text, sents, toks)
	want := []Span{{0, 3}, {3, 7}, {7, 10}}
	if len(spans) != len(want) {
		t.Fatalf("expected %v, got %v", want, spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d: expected %v, got %v", i, want[i], spans[i])
		}
	}
}

func TestAlignSentences_NoSentences(t *testing.T) {
	spans := alignSentences("a b", nil, []string{"a", "b"})
	if len(spans) != 1 || spans[0] != (Span{0, 2}) {
		t.Errorf("expected single span, got %v", spans)
	}
	if spans := alignSentences("", nil, nil); spans != nil {
		t.Errorf("expected no spans, got %v", spans)
	}
}

func TestProseTagger_RejectsOversizedText(t *testing.T) {
	_, err := NewProseTagger(10).Tag(strings.Repeat("word ", 10))
	if err == nil {
		t.Fatal("expected error for text over the limit")
	}
}

func TestProseTagger_Tags(t *testing.T) {
	doc, err := NewProseTagger(0).Tag("The samples were collected in May. We measured the growth of each plant.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.SentenceCount() != 2 {
		t.Fatalf("expected 2 sentences, got %d", doc.SentenceCount())
	}
	var total int
	for s := range doc.Sentences() {
		total += len(s)
	}
	if total != len(doc.Tokens) {
		t.Errorf("expected spans to cover %d tokens, got %d", len(doc.Tokens), total)
	}
}

func TestProseTagger_SharesModel(t *testing.T) {
	p := NewProseTagger(0)
	if p.model == nil {
		t.Fatal("expected model loaded at construction")
	}
	first, err := p.document("Leaves were sampled at noon.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p.document("Roots grew slowly in dry soil.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Model != p.model || second.Model != p.model {
		t.Error("expected every document to reuse the tagger's model")
	}
	if len(first.Tokens()) == 0 || len(second.Tokens()) == 0 {
		t.Error("expected tokens from the shared model")
	}
}
