// Package citation infers a paper's citation conventions: numbered versus
// author-year in-text citations and the structural format of its
// reference list.
package citation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Citation types.
const (
	Numbered   = "numbered"
	AuthorYear = "author-year"
)

// Reference formats.
const (
	Nature    = "nature"
	APA       = "apa"
	Vancouver = "vancouver"
	IEEE      = "ieee"
)

// Formats lists the reference formats in tie-break order.
var Formats = []string{Nature, APA, Vancouver, IEEE}

// Style describes one paper's, or a corpus's, citation conventions.
type Style struct {
	CitationType         string   `json:"citation_type"`
	ReferenceFormat      string   `json:"reference_format"`
	ExampleInText        string   `json:"example_in_text_citation"`
	ExampleReference     string   `json:"example_reference"`
	LatexCitationCommand string   `json:"latex_citation_command"`
	LatexBibliographyEnv string   `json:"latex_bibliography_env"`
	SampleReferences     []string `json:"sample_references,omitempty"`
	ReferenceEntries     int      `json:"reference_entries"`
}

var (
	numberedShapes = compileAll(
		`\[\d+\]`,
		`\[\d+\s*,\s*\d+\]`,
		`\[\d+\s*-\s*\d+\]`,
		`\[\d+\s*,\s*\d+\s*-\s*\d+\]`,
	)
	authorYearShapes = compileAll(
		`\([A-Z][a-zA-Z'-]+\s+et\s+al\.?,\s*\d{4}\)`,
		`\([A-Z][a-zA-Z'-]+,\s+\d{4}\)`,
		`\([A-Z][a-zA-Z'-]+\s+and\s+[A-Z][a-zA-Z'-]+,\s*\d{4}\)`,
		`[A-Z][a-zA-Z'-]+\s+\(\d{4}\)`,
		`[A-Z][a-zA-Z'-]+\s+et\s+al\.?\s+\(\d{4}\)`,
	)

	numberedExample   = regexp.MustCompile(`\[\d+\](?:,\s*\[\d+\])*(?:;\s*\[\d+\](?:,\s*\[\d+\])*)*`)
	authorYearExample = compileAll(
		`\([A-Z][a-zA-Z'-]+(?:\s+et\s+al\.?)?,\s*\d{4}\)`,
		`[A-Z][a-zA-Z'-]+(?:\s+et\s+al\.?)?\s+\(\d{4}\)`,
	)

	// The first header pattern that matches anywhere wins, not the
	// earliest match.
	referenceHeaders = compileAll(
		`(?im)(?:^|\n)\s*references?[ \t:]*$`,
		`(?im)(?:^|\n)\s*references?\s*:\s*$`,
		`(?im)(?:^|\n)\s*bibliography[ \t:]*$`,
		`(?im)(?:^|\n)\s*reference\s*list\s*$`,
		`(?im)(?:^|\n)\s*\[\d+\]\s*references?\s*$`,
		`(?im)(?:^|\n)\s*\[\d+\]\s*bibliography\s*$`,
		`(?m)(?:^|\n)\s*参考文献\s*$`,
	)
	referenceEnds = compileAll(
		`(?i)\n\s*appendix\b`,
		`(?i)\n\s*supplementary\s*material\b`,
		`(?i)\n\s*supplementary\s*information\b`,
		`(?i)\n\s*acknowledgements?\b`,
		`\n\s*致谢`,
		`\n\s*附录`,
	)

	titleLine  = regexp.MustCompile(`(?i)^(?:\[\d+\]\s*)?(?:references?|bibliography|reference\s*list|参考文献)\s*:?\s*$`)
	entryLabel = regexp.MustCompile(`^(?:\[\d+\]|\d+\.)\s*`)

	formatSignatures = map[string]*regexp.Regexp{
		Nature:    regexp.MustCompile(`^[A-Z][a-zA-Z'-]+.*\.\s+[A-Z][a-zA-Z0-9].*\.\s+\d{4}\.`),
		APA:       regexp.MustCompile(`^[A-Z][a-zA-Z'-]+.*\s+\(\d{4}\)\.\s+.*\.\s+[A-Z][a-zA-Z0-9].*,\s+\d+`),
		Vancouver: regexp.MustCompile(`^[A-Z][a-zA-Z'-]+.*\.\s+[A-Z][a-zA-Z0-9].*\.\s+\d{4};\d+`),
		IEEE:      regexp.MustCompile(`^[A-Z][a-zA-Z'-]+,\s*"`),
	}
)

const (
	minEntryChars   = 20
	maxExampleChars = 500
	maxSamples      = 5
)

// Detect infers the citation style of one document's full text.
func Detect(text string) Style {
	numbered := countAll(text, numberedShapes)
	authorYear := countAll(text, authorYearShapes)

	st := Style{
		CitationType:         AuthorYear,
		LatexCitationCommand: `\citep`,
		LatexBibliographyEnv: "thebibliography",
	}
	if numbered > authorYear {
		st.CitationType = Numbered
		st.LatexCitationCommand = `\cite`
		st.ExampleInText = numberedExample.FindString(text)
		if st.ExampleInText == "" {
			// Ranges and lists such as [1-3] or [1, 2] without a plain [n].
			st.ExampleInText = earliestMatch(text, numberedShapes)
		}
	} else {
		for _, re := range authorYearExample {
			if m := re.FindString(text); m != "" {
				st.ExampleInText = m
				break
			}
		}
	}

	entries := Entries(ReferencesBlock(text))
	st.ReferenceFormat = FormatOf(entries)
	st.ReferenceEntries = len(entries)
	st.SampleReferences = entries[:min(len(entries), maxSamples)]
	for _, e := range entries {
		if utf8.RuneCountInString(e) < maxExampleChars {
			st.ExampleReference = e
			break
		}
	}
	return st
}

// ReferencesBlock returns the reference list, from its header up to the
// first back-matter marker, or "" if no header is found.
func ReferencesBlock(text string) string {
	var loc []int
	for _, re := range referenceHeaders {
		if loc = re.FindStringIndex(text); loc != nil {
			break
		}
	}
	if loc == nil {
		return ""
	}
	end := len(text)
	for _, re := range referenceEnds {
		if m := re.FindStringIndex(text[loc[1]:]); m != nil && loc[1]+m[0] < end {
			end = loc[1] + m[0]
		}
	}
	return strings.TrimSpace(text[loc[0]:end])
}

// Entries returns the trimmed lines of a references block that are long
// enough to be entries and are not titles.
func Entries(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < minEntryChars || titleLine.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// FormatOf picks the format whose signature matches the most entries.
// Ties and zero matches fall back to Nature.
func FormatOf(entries []string) string {
	counts := make(map[string]int, len(Formats))
	for _, e := range entries {
		e = entryLabel.ReplaceAllString(e, "")
		for _, f := range Formats {
			if formatSignatures[f].MatchString(e) {
				counts[f]++
			}
		}
	}

	best, bestN, tied := Nature, 0, false
	for _, f := range Formats {
		switch n := counts[f]; {
		case n > bestN:
			best, bestN, tied = f, n, false
		case n == bestN && n > 0:
			tied = true
		}
	}
	if bestN == 0 || tied {
		return Nature
	}
	return best
}

// earliestMatch returns the leftmost match of any pattern, or "".
func earliestMatch(text string, patterns []*regexp.Regexp) string {
	best := []int(nil)
	for _, re := range patterns {
		if loc := re.FindStringIndex(text); loc != nil && (best == nil || loc[0] < best[0]) {
			best = loc
		}
	}
	if best == nil {
		return ""
	}
	return text[best[0]:best[1]]
}

func countAll(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}
