package report

import (
	"fmt"
	"strings"

	"github.com/dgallion1/stylegest/internal/paper"
)

const summaryTerms = 10

// Summary renders a short Markdown digest of the report.
func Summary(r StyleReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Style Summary\n\n", r.Metadata.JournalName)
	fmt.Fprintf(&b, "Analyzed %d papers on %s\n\n", r.Metadata.PapersAnalyzed, r.Metadata.AnalysisDate)

	b.WriteString("## Key Vocabulary\n")
	fmt.Fprintf(&b, "- Top nouns: %s\n", joinTerms(r.Vocabulary.Nouns, summaryTerms))
	fmt.Fprintf(&b, "- Top verbs: %s\n", joinTerms(r.Vocabulary.Verbs, summaryTerms))
	if len(r.Vocabulary.Hedges) > 0 {
		fmt.Fprintf(&b, "- Hedging terms: %s\n", joinTerms(r.Vocabulary.Hedges, summaryTerms))
	}

	b.WriteString("\n## Tense Distribution\n")
	for _, kind := range paper.Kinds {
		dist, ok := r.TenseDistribution[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: Present %s, Past %s\n", kind, pct(dist.Present), pct(dist.Past))
	}

	b.WriteString("\n## Style Metrics\n")
	fmt.Fprintf(&b, "- Average sentence length: %.2f words\n", r.SentenceStructure.AverageSentenceLength)
	fmt.Fprintf(&b, "- Passive voice ratio: %s\n", pct(r.SentenceStructure.PassiveVoiceRatio))
	la := r.SentenceAnalysis.LengthDistribution
	fmt.Fprintf(&b, "- Sentence lengths: short %s, medium %s, long %s\n", pct(la.Short), pct(la.Medium), pct(la.Long))
	st := r.SentenceAnalysis.SentenceTypes
	fmt.Fprintf(&b, "- Sentence types: simple %s, compound %s, complex %s\n", pct(st.Simple), pct(st.Compound), pct(st.Complex))

	cs := r.CitationStyle
	b.WriteString("\n## Citation Style\n")
	fmt.Fprintf(&b, "- Type: %s (LaTeX `%s`)\n", cs.CitationType, cs.LatexCitationCommand)
	fmt.Fprintf(&b, "- Reference format: %s\n", cs.ReferenceFormat)
	if cs.ExampleInText != "" {
		fmt.Fprintf(&b, "- In-text example: %s\n", cs.ExampleInText)
	}
	if cs.ExampleReference != "" {
		fmt.Fprintf(&b, "- Reference example: %s\n", cs.ExampleReference)
	}
	return b.String()
}

func joinTerms(terms []TermCount, n int) string {
	if len(terms) == 0 {
		return "(none)"
	}
	words := make([]string, 0, min(n, len(terms)))
	for _, t := range terms[:min(n, len(terms))] {
		words = append(words, t.Term)
	}
	return strings.Join(words, ", ")
}

func pct(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}
