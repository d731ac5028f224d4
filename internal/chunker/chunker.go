package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/stylegest/internal/paper"
)

// Config controls chunking behavior.
type Config struct {
	MaxChars   int // Bound for the first pass.
	RetryChars int // Bound for the degraded retry of a failed chunk.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxChars:   30000,
		RetryChars: 5000,
	}
}

// Separator joins paragraphs packed into one chunk.
const Separator = "\n\n"

var blankLine = regexp.MustCompile(`\n\s*\n`)

// Paragraphs splits text on blank lines. Whitespace-only pieces are dropped.
func Paragraphs(text string) []string {
	var paras []string
	for _, p := range blankLine.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// Split greedily packs paragraphs into chunks of at most maxChars
// characters. A paragraph longer than maxChars becomes a chunk of its own
// and is never divided.
func Split(text string, maxChars int) []paper.Chunk {
	if maxChars <= 0 {
		maxChars = DefaultConfig().MaxChars
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if charLen(text) <= maxChars {
		return []paper.Chunk{{Text: text, Index: 0}}
	}
	return toChunks(pack(Paragraphs(text), maxChars, Separator))
}

// Resplit is the degraded pass used after a chunk fails extraction. It
// packs like Split but also breaks oversized paragraphs at sentence ends
// and, failing that, at word boundaries, so every chunk respects maxChars.
func Resplit(text string, maxChars int) []paper.Chunk {
	if maxChars <= 0 {
		maxChars = DefaultConfig().RetryChars
	}
	var parts []string
	for _, para := range Paragraphs(text) {
		if charLen(para) <= maxChars {
			parts = append(parts, para)
			continue
		}
		parts = append(parts, splitBySentences(para, maxChars)...)
	}
	return toChunks(pack(parts, maxChars, Separator))
}

// pack concatenates consecutive pieces with sep while the joined length
// stays within maxChars.
func pack(pieces []string, maxChars int, sep string) []string {
	var result []string
	var current strings.Builder
	currentLen := 0
	sepLen := charLen(sep)

	for _, p := range pieces {
		pLen := charLen(p)
		if currentLen > 0 && currentLen+sepLen+pLen > maxChars {
			result = append(result, current.String())
			current.Reset()
			currentLen = 0
		}
		if currentLen > 0 {
			current.WriteString(sep)
			currentLen += sepLen
		}
		current.WriteString(p)
		currentLen += pLen
	}
	if currentLen > 0 {
		result = append(result, current.String())
	}
	return result
}

// splitBySentences breaks a large paragraph into sentence-based pieces.
func splitBySentences(text string, maxChars int) []string {
	var pieces []string
	for _, sent := range splitSentences(text) {
		if charLen(sent) <= maxChars {
			pieces = append(pieces, sent)
			continue
		}
		pieces = append(pieces, splitByWords(sent, maxChars)...)
	}
	return pack(pieces, maxChars, " ")
}

// splitByWords packs words, hard-cutting any single word longer than maxChars.
func splitByWords(text string, maxChars int) []string {
	var words []string
	for _, w := range strings.Fields(text) {
		for charLen(w) > maxChars {
			cut := byteOffset(w, maxChars)
			words = append(words, w[:cut])
			w = w[cut:]
		}
		if w != "" {
			words = append(words, w)
		}
	}
	return pack(words, maxChars, " ")
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n') {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func toChunks(parts []string) []paper.Chunk {
	chunks := make([]paper.Chunk, len(parts))
	for i, p := range parts {
		chunks[i] = paper.Chunk{Text: p, Index: i}
	}
	return chunks
}

// charLen measures text in characters, not bytes.
func charLen(s string) int {
	return utf8.RuneCountInString(s)
}

// byteOffset returns the byte index just past the first n characters of s.
func byteOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
