package nlp

import (
	"strings"
	"unicode"
)

// FakeTagger is a deterministic rule-based tagger for tests. It splits on
// whitespace, detaches trailing punctuation, ends sentences at . ! and ?,
// and guesses tags from a small closed-class table and word suffixes.
type FakeTagger struct{}

var fakeClosed = map[string]string{
	"the": "DT", "a": "DT", "an": "DT", "this": "DT", "these": "DT", "that": "IN", "each": "DT", "all": "DT",
	"in": "IN", "of": "IN", "on": "IN", "at": "IN", "by": "IN", "for": "IN", "with": "IN", "from": "IN",
	"under": "IN", "during": "IN", "between": "IN", "into": "IN", "across": "IN", "after": "IN",
	"because": "IN", "although": "IN", "while": "IN", "if": "IN", "whether": "IN", "since": "IN",
	"and": "CC", "but": "CC", "or": "CC", "nor": "CC", "yet": "CC", "so": "CC",
	"we": "PRP", "it": "PRP", "they": "PRP", "i": "PRP", "our": "PRP$", "their": "PRP$", "its": "PRP$",
	"is": "VBZ", "are": "VBP", "was": "VBD", "were": "VBD", "be": "VB", "been": "VBN", "being": "VBG",
	"has": "VBZ", "have": "VBP", "had": "VBD",
	"may": "MD", "might": "MD", "could": "MD", "can": "MD", "will": "MD", "would": "MD", "should": "MD",
	"to": "TO", "not": "RB", "also": "RB", "however": "RB", "therefore": "RB", "furthermore": "RB",
	"show": "VBP", "shows": "VBZ", "suggest": "VBP", "suggests": "VBZ", "indicate": "VBP", "indicates": "VBZ",
	"found": "VBD", "showed": "VBD",
}

func (FakeTagger) Tag(text string) (*Doc, error) {
	var (
		tokens []Token
		spans  []Span
		start  int
	)
	closeSentence := func() {
		if len(tokens) > start {
			spans = append(spans, Span{start, len(tokens)})
			start = len(tokens)
		}
	}

	for _, field := range strings.Fields(text) {
		word, trail := splitTrailingPunct(field)
		if word != "" {
			tokens = append(tokens, newToken(word, fakeTag(word, tokens)))
		}
		for _, r := range trail {
			tokens = append(tokens, newToken(string(r), punctTag(r)))
			if r == '.' || r == '!' || r == '?' {
				closeSentence()
			}
		}
	}
	closeSentence()
	labelPassives(tokens)
	return &Doc{Tokens: tokens, Spans: spans}, nil
}

func splitTrailingPunct(field string) (string, string) {
	i := len(field)
	for i > 0 && strings.ContainsRune(".,;:!?)\"'", rune(field[i-1])) {
		i--
	}
	return strings.TrimLeft(field[:i], "(\"'"), field[i:]
}

func punctTag(r rune) string {
	switch r {
	case '.', '!', '?':
		return "."
	case ',':
		return ","
	case ')':
		return "-RRB-"
	case '"', '\'':
		return "''"
	}
	return ":"
}

func fakeTag(word string, prev []Token) string {
	w := strings.ToLower(word)
	if tag, ok := fakeClosed[w]; ok {
		return tag
	}
	if unicode.IsDigit(rune(w[0])) {
		return "CD"
	}
	switch {
	case strings.HasSuffix(w, "ed"):
		if len(prev) > 0 && (prev[len(prev)-1].Lemma == "be" || prev[len(prev)-1].Lemma == "have" ||
			prev[len(prev)-1].POS == Adv) {
			return "VBN"
		}
		return "VBD"
	case strings.HasSuffix(w, "ing"):
		return "VBG"
	case strings.HasSuffix(w, "ly"):
		return "RB"
	case strings.HasSuffix(w, "ous"), strings.HasSuffix(w, "ive"), strings.HasSuffix(w, "ful"),
		strings.HasSuffix(w, "ic"), strings.HasSuffix(w, "al"), strings.HasSuffix(w, "ble"):
		return "JJ"
	case strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") && len(w) > 3:
		return "NNS"
	}
	return "NN"
}
