// Package lexicon holds the fixed word lists used by feature extraction.
// A Lexicon is immutable once built; tests and deployments substitute their
// own vocabularies by constructing a different one.
package lexicon

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Transition categories.
const (
	Sequential   = "sequential"
	Contrastive  = "contrastive"
	Additive     = "additive"
	Causal       = "causal"
	Exemplifying = "exemplifying"
)

// TransitionCategories lists the five rhetorical connective classes in
// reporting order.
var TransitionCategories = []string{Sequential, Contrastive, Additive, Causal, Exemplifying}

// Lists is the serializable form of a lexicon. Empty lists fall back to the
// defaults when loaded from a file.
type Lists struct {
	StopWords     []string            `yaml:"stop_words" json:"stop_words"`
	Hedges        []string            `yaml:"hedging_terms" json:"hedging_terms"`
	Coordinating  []string            `yaml:"coordinating_conjunctions" json:"coordinating_conjunctions"`
	Subordinating []string            `yaml:"subordinating_conjunctions" json:"subordinating_conjunctions"`
	Transitions   map[string][]string `yaml:"transitions" json:"transitions"`
}

// Term is a vocabulary entry with its compiled word-boundary matcher.
type Term struct {
	Word string
	re   *regexp.Regexp
}

// Count returns the number of non-overlapping whole-word occurrences of the
// term in lowered text.
func (t Term) Count(lowered string) int {
	return len(t.re.FindAllStringIndex(lowered, -1))
}

// Lexicon is an immutable set of vocabularies.
type Lexicon struct {
	stop          map[string]struct{}
	coordinating  map[string]struct{}
	subordinating map[string]struct{}
	hedges        []Term
	transitions   map[string][]Term
}

// New builds a Lexicon from lists. Words are lowercased and deduplicated.
func New(lists Lists) (*Lexicon, error) {
	lx := &Lexicon{
		stop:          toSet(lists.StopWords),
		coordinating:  toSet(lists.Coordinating),
		subordinating: toSet(lists.Subordinating),
		transitions:   make(map[string][]Term, len(lists.Transitions)),
	}

	hedges, err := compileTerms(lists.Hedges)
	if err != nil {
		return nil, fmt.Errorf("hedging terms: %w", err)
	}
	lx.hedges = hedges

	for cat, words := range lists.Transitions {
		cat = strings.ToLower(strings.TrimSpace(cat))
		terms, err := compileTerms(words)
		if err != nil {
			return nil, fmt.Errorf("transitions %q: %w", cat, err)
		}
		lx.transitions[cat] = terms
	}
	return lx, nil
}

// MustNew is New that panics on error. Used for the built-in defaults.
func MustNew(lists Lists) *Lexicon {
	lx, err := New(lists)
	if err != nil {
		panic(err)
	}
	return lx
}

// LoadFile reads a YAML lexicon. Lists absent from the file keep their
// default values.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var lists Lists
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return New(withDefaults(lists))
}

func withDefaults(lists Lists) Lists {
	def := DefaultLists()
	if len(lists.StopWords) == 0 {
		lists.StopWords = def.StopWords
	}
	if len(lists.Hedges) == 0 {
		lists.Hedges = def.Hedges
	}
	if len(lists.Coordinating) == 0 {
		lists.Coordinating = def.Coordinating
	}
	if len(lists.Subordinating) == 0 {
		lists.Subordinating = def.Subordinating
	}
	if len(lists.Transitions) == 0 {
		lists.Transitions = def.Transitions
	}
	return lists
}

func (lx *Lexicon) IsStopWord(lower string) bool {
	_, ok := lx.stop[lower]
	return ok
}

func (lx *Lexicon) IsCoordinating(lower string) bool {
	_, ok := lx.coordinating[lower]
	return ok
}

func (lx *Lexicon) IsSubordinating(lower string) bool {
	_, ok := lx.subordinating[lower]
	return ok
}

// Hedges returns the hedging terms. The slice must not be modified.
func (lx *Lexicon) Hedges() []Term {
	return lx.hedges
}

// Transitions returns the terms of one transition category.
func (lx *Lexicon) Transitions(category string) []Term {
	return lx.transitions[category]
}

// Categories returns the configured transition categories, known ones first.
func (lx *Lexicon) Categories() []string {
	out := make([]string, 0, len(lx.transitions))
	seen := make(map[string]bool, len(lx.transitions))
	for _, c := range TransitionCategories {
		if _, ok := lx.transitions[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}
	var extra []string
	for c := range lx.transitions {
		if !seen[c] {
			extra = append(extra, c)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

func compileTerms(words []string) ([]Term, error) {
	seen := make(map[string]bool, len(words))
	terms := make([]Term, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		// Inner whitespace of multi-word phrases may span line breaks.
		parts := strings.Fields(w)
		for i, p := range parts {
			parts[i] = regexp.QuoteMeta(p)
		}
		re, err := regexp.Compile(`\b` + strings.Join(parts, `\s+`) + `\b`)
		if err != nil {
			return nil, err
		}
		terms = append(terms, Term{Word: w, re: re})
	}
	return terms, nil
}
