package paper

// Document is one paper's extracted plain text.
type Document struct {
	ID   string // Opaque identifier, usually the source filename
	Text string
}

// Kind names a conventional division of an academic paper.
type Kind string

const (
	Abstract         Kind = "abstract"
	Introduction     Kind = "introduction"
	Methods          Kind = "methods"
	Results          Kind = "results"
	Discussion       Kind = "discussion"
	Conclusion       Kind = "conclusion"
	Acknowledgements Kind = "acknowledgements"
	References       Kind = "references"
	Appendix         Kind = "appendix"
)

// Kinds lists every recognized section kind in reading order.
var Kinds = []Kind{
	Abstract,
	Introduction,
	Methods,
	Results,
	Discussion,
	Conclusion,
	Acknowledgements,
	References,
	Appendix,
}

// Valid reports whether k is one of the recognized kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Styled reports whether sections of this kind carry prose worth
// analyzing for writing style. Reference lists are only used for
// citation analysis.
func (k Kind) Styled() bool {
	return k.Valid() && k != References
}

// Section is a located section body. Start and End are byte offsets of the
// body (heading excluded) within the document text.
type Section struct {
	Kind   Kind   `json:"kind"`
	Header string `json:"header"`
	Text   string `json:"text"`
	Start  int    `json:"start_offset"`
	End    int    `json:"end_offset"`
}

// Chunk is a size-bounded slice of a section, the unit of feature extraction.
type Chunk struct {
	Text  string
	Index int // Sequence number within the section
}
