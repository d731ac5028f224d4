package sections

import (
	"regexp"

	"github.com/dgallion1/stylegest/internal/paper"
)

// Heading vocabularies per kind. Alternatives are tried leftmost-first, so
// longer phrases come before their prefixes.
var headingWords = map[paper.Kind]string{
	paper.Abstract:     `abstract|summary|摘要`,
	paper.Introduction: `introduction|background|引言|前言`,
	paper.Methods: `materials\s+(?:and|&)\s+methods|methods\s+and\s+materials|methodology|methods?|` +
		`experimental\s+(?:design|section|procedures?)|procedures|方法`,
	paper.Results:          `results\s+and\s+analysis|results|findings|observations|outcomes?|结果`,
	paper.Discussion:       `general\s+discussion|discussion|interpretations?|讨论`,
	paper.Conclusion:       `summary\s+and\s+conclusions?|concluding\s+remarks|final\s+remarks|conclusions?|结论`,
	paper.Acknowledgements: `acknowledge?ments?|thanks|致谢`,
	paper.References: `(?:\[\d+\][ \t]*)?(?:references?|bibliography|reference\s+list|literature\s+cited|works\s+cited)|` +
		`参考文献`,
	paper.Appendix: `appendix(?:[ \t]+[a-z0-9]{1,3})?|appendices|` +
		`supplementary(?:\s+(?:materials?|information|data|files?))?|附录`,
}

// Words that close a section when they open a line inside its body.
var endWords = map[paper.Kind]string{
	paper.Abstract:         `introduction|background|keywords?|key\s+words|index\s+terms`,
	paper.Introduction:     `materials\s+(?:and|&)\s+methods|methodology|methods|study\s+area`,
	paper.Methods:          `results|findings|outcomes?`,
	paper.Results:          `discussion|interpretations?|commentary`,
	paper.Discussion:       `conclusions?|concluding\s+remarks|final\s+(?:remarks|comments)`,
	paper.Conclusion:       `references?|bibliography|acknowledge?ments?|appendix|supplementary`,
	paper.Acknowledgements: `references?|bibliography|appendix|supplementary`,
	paper.References:       `appendix|supplementary|acknowledge?ments?|author\s+information|作者信息`,
	paper.Appendix:         `appendix|appendices|supplementary`,
}

const (
	// Optional markdown hashes and section numbering ("2.", "2.1", "IV.").
	numbering = `(?:#{1,6}[ \t]*)?(?:\d+(?:\.\d+)*\.?[ \t]*|[ivx]+\.[ \t]*|[ivx]+[ \t]+)?`
	// A keyword must be followed by punctuation, whitespace or end of line.
	keywordTail = `(?:[ \t]*[:.]|[ \t]+|$)`
)

// headingPattern matches a line that consists of a (possibly numbered)
// heading and nothing else.
func headingPattern(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*` + numbering + `(?:` + words + `)[ \t]*[:.]?[ \t]*$`)
}

// keywordPattern matches a keyword at the start of a line, with text
// allowed to follow on the same line.
func keywordPattern(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:\d+\.?[ \t]*)?(?:` + words + `)` + keywordTail)
}

func endPattern(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*` + numbering + `(?:\[\d+\][ \t]*)?(?:` + words + `)` + keywordTail)
}

func buildPatterns(words map[paper.Kind]string, build func(string) *regexp.Regexp) map[paper.Kind][]*regexp.Regexp {
	out := make(map[paper.Kind][]*regexp.Regexp, len(words))
	for kind, w := range words {
		out[kind] = []*regexp.Regexp{build(w)}
	}
	return out
}

// conclusionMarkers locate bibliography and back-matter starts that leak
// into a conclusion body when upstream conversion dropped their headings.
var conclusionMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\n[ \t]*\[\d+\][ \t]*(?:references?|bibliography|reference)\b`),
	regexp.MustCompile(`(?im)\n[ \t]*(?:the[ \t]+)?references?[ \t]*:?[ \t]*$`),
	regexp.MustCompile(`(?i)\n[ \t]*(?:the[ \t]+)?bibliography\b`),
	regexp.MustCompile(`(?i)\n[ \t]*(?:the[ \t]+)?reference[ \t]+list\b`),
	regexp.MustCompile(`(?i)\n[ \t]*acknowledge?ments?\b`),
	regexp.MustCompile(`(?i)\n[ \t]*appendix\b`),
	regexp.MustCompile(`(?i)\n[ \t]*supplementary[ \t]*(?:material|information)\b`),
	regexp.MustCompile(`\n[ \t]*(?:参考文献|致谢|附录)`),
	regexp.MustCompile(`(?im)^references?[ \t]*$`),
	regexp.MustCompile(`(?im)^reference[ \t]+list[ \t]*$`),
}

// referenceEntry matches paragraphs shaped like bibliography entries.
var referenceEntry = regexp.MustCompile(`^\[\d+\]|^[A-Z][a-z]+,\s*\d{4}|^\s*\d+\.\s+`)

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
