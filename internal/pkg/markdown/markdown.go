package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// ToHTML рендерит Markdown (GFM, переносы строк как <br>)
func ToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := converter.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return buf.String(), nil
}

const documentTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body { font-family: Georgia, serif; max-width: 760px; margin: 40px auto; padding: 0 16px; line-height: 1.6; color: #222; }
h1, h2, h3 { color: #4b2c83; }
</style>
</head>
<body>
<h1>%s</h1>
%s
</body>
</html>
`

// Document оборачивает HTML-фрагмент в самостоятельную страницу
func Document(title, bodyHTML string) string {
	t := html.EscapeString(strings.TrimSpace(title))
	return fmt.Sprintf(documentTemplate, t, t, bodyHTML)
}
