package parser

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ligature", "the \ufb01eld work", "the field work"},
		{"crlf", "a\r\nb\rc", "a\nb\nc"},
		{"page break", "page one\fpage two", "page one\n\npage two"},
		{"hyphenation", "photo-\nsynthesis", "photosynthesis"},
		{"keeps capitalized hyphen", "Smith-\nJones", "Smith-\nJones"},
		{"inline space", "a\t\tb c  ", "a b c"},
		{"blank runs", "a\n\n\n\n\nb", "a\n\nb"},
		{"invisible", "co\u00adoperate\u200b", "cooperate"},
		{"trim", "  \n text \n\n", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
