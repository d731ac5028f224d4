// Package sections splits a paper's plain text into its conventional
// sections using layered heading heuristics.
package sections

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/stylegest/internal/paper"
)

// Config controls section detection.
type Config struct {
	// Strategies are tried in order per kind until one proposes a start.
	Strategies []Strategy
	// EndPatterns trim a section body at their earliest match.
	EndPatterns map[paper.Kind][]*regexp.Regexp
	// Starts of the same kind closer than this collapse into the earliest.
	MergeDistance int
	// Bodies shorter than this are discarded as false positives.
	MinBodyChars int
	// Conclusions longer than this with no back-matter marker are trimmed
	// to their last prose paragraph.
	ConclusionMaxChars int
}

// DefaultConfig returns the heading-then-keyword chain with standard limits.
func DefaultConfig() Config {
	return Config{
		Strategies:         []Strategy{HeadingStrategy(), KeywordStrategy()},
		EndPatterns:        buildPatterns(endWords, endPattern),
		MergeDistance:      50,
		MinBodyChars:       50,
		ConclusionMaxChars: 5000,
	}
}

// Detector locates sections in document text. It is safe for concurrent use.
type Detector struct {
	cfg Config
}

func NewDetector(cfg Config) *Detector {
	def := DefaultConfig()
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = def.Strategies
	}
	if cfg.EndPatterns == nil {
		cfg.EndPatterns = def.EndPatterns
	}
	if cfg.MergeDistance <= 0 {
		cfg.MergeDistance = def.MergeDistance
	}
	if cfg.MinBodyChars <= 0 {
		cfg.MinBodyChars = def.MinBodyChars
	}
	if cfg.ConclusionMaxChars <= 0 {
		cfg.ConclusionMaxChars = def.ConclusionMaxChars
	}
	return &Detector{cfg: cfg}
}

// Extract returns at most one section per kind. Kinds with no detectable
// heading are simply absent.
func (d *Detector) Extract(text string) map[paper.Kind]paper.Section {
	out := make(map[paper.Kind]paper.Section)
	for _, sec := range d.Sections(text) {
		out[sec.Kind] = sec
	}
	return out
}

// Sections returns the retained sections ordered by start offset.
func (d *Detector) Sections(text string) []paper.Section {
	starts := d.collapse(d.candidates(text))

	best := make(map[paper.Kind]paper.Section)
	for i, m := range starts {
		limit := len(text)
		if i+1 < len(starts) {
			limit = starts[i+1].Offset
		}
		sec, ok := d.resolve(text, m, limit)
		if !ok {
			continue
		}
		// A kind can still start more than once far apart. The longest body
		// wins since stray heading look-alikes carry little text.
		if prev, seen := best[sec.Kind]; !seen || len(sec.Text) > len(prev.Text) {
			best[sec.Kind] = sec
		}
	}

	out := make([]paper.Section, 0, len(best))
	for _, sec := range best {
		out = append(out, sec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// candidates runs the strategy chain for every kind and returns all
// proposed starts sorted by offset.
func (d *Detector) candidates(text string) []Match {
	var all []Match
	for _, kind := range paper.Kinds {
		for _, s := range d.cfg.Strategies {
			if found := s.Find(text, kind); len(found) > 0 {
				all = append(all, found...)
				break
			}
		}
	}
	order := kindOrder()
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Offset != all[j].Offset {
			return all[i].Offset < all[j].Offset
		}
		return order[all[i].Kind] < order[all[j].Kind]
	})
	return all
}

// collapse drops starts that repeat the previous kind within MergeDistance,
// which absorbs headers duplicated by format conversion.
func (d *Detector) collapse(sorted []Match) []Match {
	var out []Match
	for _, m := range sorted {
		if n := len(out); n > 0 {
			last := out[n-1]
			if last.Kind == m.Kind && m.Offset-last.Offset < d.cfg.MergeDistance {
				// Keep the earliest start but skip past the repeated heading.
				if m.HeaderEnd > last.HeaderEnd {
					out[n-1].HeaderEnd = m.HeaderEnd
				}
				continue
			}
		}
		out = append(out, m)
	}
	return out
}

// resolve turns a start into a section body bounded by limit.
func (d *Detector) resolve(text string, m Match, limit int) (paper.Section, bool) {
	start := m.HeaderEnd
	if start >= limit {
		return paper.Section{}, false
	}
	end := limit
	if cut := earliest(text[start:end], d.cfg.EndPatterns[m.Kind]); cut >= 0 {
		end = start + cut
	}

	start, end = trimSpan(text, start, end)
	if m.Kind == paper.Conclusion && end > start {
		end = start + len(TrimConclusion(text[start:end], d.cfg.ConclusionMaxChars))
		start, end = trimSpan(text, start, end)
	}
	if end-start < d.cfg.MinBodyChars {
		return paper.Section{}, false
	}
	return paper.Section{
		Kind:   m.Kind,
		Header: strings.TrimSpace(m.Header),
		Text:   text[start:end],
		Start:  start,
		End:    end,
	}, true
}

// TrimConclusion cuts a conclusion body at the first bibliography or
// back-matter marker. Without a marker, a body longer than maxChars is cut
// after its last paragraph that does not look like a reference entry.
func TrimConclusion(body string, maxChars int) string {
	if cut := earliest(body, conclusionMarkers); cut >= 0 {
		return strings.TrimRightFunc(body[:cut], unicode.IsSpace)
	}
	if maxChars <= 0 || len(body) <= maxChars {
		return body
	}

	paras := paragraphSpans(body)
	for i := len(paras) - 1; i >= 0; i-- {
		p := strings.TrimSpace(body[paras[i][0]:paras[i][1]])
		if len(p) < 500 && referenceEntry.MatchString(p) {
			continue
		}
		return body[:paras[i][1]]
	}
	return body
}

// paragraphSpans returns [start, end) offsets of blank-line separated
// paragraphs.
func paragraphSpans(s string) [][2]int {
	var spans [][2]int
	pos := 0
	for _, loc := range paragraphBreak.FindAllStringIndex(s, -1) {
		spans = append(spans, [2]int{pos, loc[0]})
		pos = loc[1]
	}
	return append(spans, [2]int{pos, len(s)})
}

// earliest returns the smallest match offset of any pattern in s, or -1.
func earliest(s string, patterns []*regexp.Regexp) int {
	best := -1
	for _, re := range patterns {
		if loc := re.FindStringIndex(s); loc != nil && (best < 0 || loc[0] < best) {
			best = loc[0]
		}
	}
	return best
}

func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func kindOrder() map[paper.Kind]int {
	order := make(map[paper.Kind]int, len(paper.Kinds))
	for i, k := range paper.Kinds {
		order[k] = i
	}
	return order
}
