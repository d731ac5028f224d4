package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsOnOwnLines(t *testing.T) {
	input := `# Title

Intro text.

## 2. Results

The yield *increased* by 20%.

### Subsection A1

Subsection content.
`
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Title\n\nIntro text.\n\n2. Results\n\nThe yield increased by 20%.\n\nSubsection A1\n\nSubsection content."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownParser_NoDuplicateText(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader("Just some plain text.\n\nAnother paragraph here."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := strings.Count(got, "Just some plain text."); n != 1 {
		t.Errorf("expected first paragraph once, got %d times in %q", n, got)
	}
	if !strings.Contains(got, "Another paragraph here.") {
		t.Errorf("expected second paragraph, got %q", got)
	}
}

func TestMarkdownParser_SoftBreaksJoinLines(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader("line one\nline two"), "soft.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "line one line two" {
		t.Errorf("expected %q, got %q", "line one line two", got)
	}
}

func TestMarkdownParser_ListsAndCodeBlocks(t *testing.T) {
	input := "## Methods\n\nSteps:\n\n- collect samples\n- measure light\n\n```\nGET /api/users\nPOST /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Methods\n\nSteps:\n\ncollect samples\n\nmeasure light\n\nGET /api/users\nPOST /api/users\n\nMore text after code."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	got, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
