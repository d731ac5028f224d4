package citation

// Vote merges per-document styles into a corpus style. The most frequent
// (citation type, reference format) pair wins and ties go to the pair seen
// first. Examples come from the first document that voted for the winner,
// falling back to any document that has them.
func Vote(styles []Style) Style {
	if len(styles) == 0 {
		return Style{
			CitationType:         AuthorYear,
			ReferenceFormat:      Nature,
			LatexCitationCommand: `\citep`,
			LatexBibliographyEnv: "thebibliography",
		}
	}

	type pair struct{ typ, format string }
	counts := make(map[pair]int)
	var order []pair
	for _, s := range styles {
		p := pair{s.CitationType, s.ReferenceFormat}
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	win := order[0]
	for _, p := range order[1:] {
		if counts[p] > counts[win] {
			win = p
		}
	}

	var out Style
	for _, s := range styles {
		if s.CitationType == win.typ && s.ReferenceFormat == win.format {
			out = s
			break
		}
	}
	for _, s := range styles {
		if out.ExampleInText == "" && s.CitationType == out.CitationType {
			out.ExampleInText = s.ExampleInText
		}
		if out.ExampleReference == "" {
			out.ExampleReference = s.ExampleReference
		}
		if len(out.SampleReferences) == 0 {
			out.SampleReferences = s.SampleReferences
		}
	}
	return out
}
