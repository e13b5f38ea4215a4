// Package markdown converts document bodies to HTML fragments.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md is shared across renders; goldmark instances are safe for concurrent use
// and the pipeline is sequential anyway.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts a markdown body (frontmatter already removed) into an HTML
// fragment. GFM covers tables, strikethrough, and autolinks on top of
// CommonMark; no further extensions are enabled.
func Render(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
