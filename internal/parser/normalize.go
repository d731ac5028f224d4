package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	lineHyphen    = regexp.MustCompile(`([\p{L}\p{N}])-\n(\p{Ll})`)
	inlineSpace   = regexp.MustCompile("[ \t\v\u00a0\u202f]+")
	extraNewlines = regexp.MustCompile(`\n{3,}`)
	invisible     = strings.NewReplacer("\u00ad", "", "\u200b", "", "\ufeff", "")
)

// Normalize applies NFKC (which also folds ligatures such as "ﬁ"), unifies
// line endings, turns page breaks into paragraph breaks, rejoins words
// hyphenated across lines and collapses runs of blank lines.
func Normalize(s string) string {
	s = invisible.Replace(s)
	if out, _, err := transform.String(norm.NFKC, s); err == nil {
		s = out
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.ReplaceAll(s, "\f", "\n\n")
	s = lineHyphen.ReplaceAllString(s, "$1$2")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(inlineSpace.ReplaceAllString(l, " "), " ")
	}
	s = strings.Join(lines, "\n")
	s = extraNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
