package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	out, err := ToHTML("## Introdução\n\nSol em **Gêmeos**\nLua em Peixes")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<h2>Introdução</h2>") {
		t.Fatalf("expected heading, got %s", out)
	}
	if !strings.Contains(out, "<strong>Gêmeos</strong>") {
		t.Fatalf("expected emphasis, got %s", out)
	}
	if !strings.Contains(out, "<br") {
		t.Fatalf("expected hard line break, got %s", out)
	}
}

func TestToHTMLTable(t *testing.T) {
	out, err := ToHTML("| Planeta | Signo |\n|---|---|\n| Sol | Áries |\n")
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("expected GFM table, got %s", out)
	}
}

func TestDocumentEscapesTitle(t *testing.T) {
	doc := Document("<Maria>", "<p>ok</p>")
	if strings.Contains(doc, "<Maria>") {
		t.Fatalf("title must be escaped")
	}
	if !strings.Contains(doc, "&lt;Maria&gt;") || !strings.Contains(doc, "<p>ok</p>") {
		t.Fatalf("unexpected document: %s", doc)
	}
}
