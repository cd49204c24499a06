package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; color: #2d3748; max-width: 760px; margin: 40px auto; }
h1 { font-weight: 600; }
h2 { border-bottom: 2px solid #e2e8f0; padding-bottom: 6px; }
table { width: 100%%; border-collapse: collapse; }
td, th { padding: 6px 8px; border-bottom: 1px solid #e2e8f0; }
strong { color: #4299e1; }
</style>
</head>
<body>
%s</body>
</html>
`

// HTMLBody converts the Markdown rendition of doc to an HTML fragment.
func HTMLBody(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderHTML writes doc as a standalone HTML page.
func RenderHTML(w io.Writer, doc Document) error {
	body, err := HTMLBody(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, htmlPage, html.EscapeString(doc.Title), body)
	return err
}
