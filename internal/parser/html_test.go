package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_BlocksAndSkippedElements(t *testing.T) {
	input := `<html><head><title>x</title><style>p{}</style></head><body>
<nav>Home | About</nav>
<h2>Results</h2>
<p>The yield
   increased.</p>
<script>var a = 1;</script>
<ul><li>first item</li><li>second<br>item</li></ul>
</body></html>`

	p := &HTMLParser{}
	got, err := p.Parse(strings.NewReader(input), "paper.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Results\n\nThe yield increased.\n\nfirst item\n\nsecond item"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
