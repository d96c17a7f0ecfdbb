// Package markdown renders post bodies to sanitized HTML and splits the
// front matter block off raw post files.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	// Raw HTML is let through goldmark and scrubbed by the policy afterwards,
	// so inline markup like <sub> survives while scripts and handlers do not.
	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	p.AllowAttrs("loading", "decoding").OnElements("img")
	return p
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// RenderMarkdown writes the sanitized HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) error {
	var raw bytes.Buffer
	if err := engine.Convert([]byte(md), &raw); err != nil {
		return fmt.Errorf("markdown render: %w", err)
	}
	buf.Write(policy.SanitizeBytes(raw.Bytes()))
	return nil
}

// Render is RenderMarkdown returning a string.
func Render(md string) (string, error) {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, md); err != nil {
		return "", err
	}
	return buf.String(), nil
}
