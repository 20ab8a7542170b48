package web

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// siteMarkdown renders operator-written site copy. Raw HTML in the source is
// dropped (no html.WithUnsafe), which is what makes the output safe to mark
// as template.HTML.
var siteMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer, emoji.Emoji),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// renderAbout turns the about copy into HTML. Blank copy renders nothing.
func renderAbout(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var b bytes.Buffer
	if err := siteMarkdown.Convert([]byte(src), &b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

// plainParagraphs is the fallback when the about copy cannot be rendered:
// escaped text, one paragraph per blank-line block.
func plainParagraphs(src string) template.HTML {
	var b strings.Builder
	for _, para := range strings.Split(strings.TrimSpace(src), "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			b.WriteString("<p>" + template.HTMLEscapeString(para) + "</p>\n")
		}
	}
	return template.HTML(b.String())
}
