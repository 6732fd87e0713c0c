package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsBecomeMarkdown(t *testing.T) {
	input := `<html><head><title>Campus Guide</title></head><body>
<h1>Welcome</h1>
<p>Intro paragraph.</p>
<h2>Facilities</h2>
<p>Library and labs.</p>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "guide.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Campus Guide" {
		t.Errorf("expected title from <title>, got %q", doc.Title)
	}

	want := "# Welcome\n\nIntro paragraph.\n\n## Facilities\n\nLibrary and labs."
	if doc.Text != want {
		t.Errorf("got %q, want %q", doc.Text, want)
	}
}

func TestHTMLParser_SkipsNonContent(t *testing.T) {
	input := `<html><body>
<nav><p>menu item</p></nav>
<script>var x = 1;</script>
<p>Actual content.</p>
<footer><p>copyright</p></footer>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Text != "Actual content." {
		t.Errorf("expected nav/script/footer stripped, got %q", doc.Text)
	}
	if doc.Title != "page" {
		t.Errorf("expected filename title fallback, got %q", doc.Title)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"h1", 1},
		{"h3", 3},
		{"h6", 6},
		{"h7", 0},
		{"p", 0},
		{"header", 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.tag); got != tt.want {
			t.Errorf("headingLevel(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}
