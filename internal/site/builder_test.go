package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/gh-sh4/bloggg/internal/config"
	"github.com/gh-sh4/bloggg/internal/errors"
	"github.com/gh-sh4/bloggg/internal/render"
)

const defaultTemplate = `<!doctype html>
<html>
<head><link href="style.css"><title>$$DOC_TITLE$$</title></head>
<body>
$$BREADCRUMBS$$
<p class="date">$$DOC_DATE$$</p>
$$DOC_CONTENT$$
</body>
</html>
`

// pngBytes is a tiny fake binary payload; passthrough copying never inspects
// content, so a real image is not needed.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x01, 0x02}

func newFixtureSite(t *testing.T) *config.Config {
	t.Helper()
	input := t.TempDir()
	output := t.TempDir()

	write := func(rel string, data []byte) {
		p := filepath.Join(input, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, data, 0o644))
	}

	write(filepath.Join(config.TemplateDirName, "default.html"), []byte(defaultTemplate))
	write(filepath.Join(config.TemplateDirName, "style.css"), []byte("body{}"))
	write("index.md", []byte("---\ntitle: Home\n---\n# Hi\n"))
	write(filepath.Join("posts", "first.md"), []byte("---\ntitle: First\ndate: 2024-05-01\n---\ntext\n"))
	write(filepath.Join("img", "photo.png"), pngBytes)

	return &config.Config{InputDir: input, OutputDir: output}
}

func newBuilder(cfg *config.Config) *Builder {
	return New(cfg, render.New(cfg, nil), nil)
}

func TestBuild_EndToEnd(t *testing.T) {
	cfg := newFixtureSite(t)
	require.NoError(t, newBuilder(cfg).Build(context.Background()))

	// Rendered root page: title substituted, markdown rendered, no
	// breadcrumbs, empty date, no leftover tokens.
	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)
	page := string(out)
	require.Contains(t, page, "<h1>Hi</h1>")
	require.NotContains(t, page, `<nav class="breadcrumbs">`)
	require.NotContains(t, page, "$$")

	doc, err := html.Parse(strings.NewReader(page))
	require.NoError(t, err)
	require.Equal(t, "Home", findText(doc, "title"))
	require.Equal(t, "Hi", findText(doc, "h1"))
	require.Equal(t, "", findText(doc, "p"))

	// Nested page carries breadcrumbs and the date prefix.
	out, err = os.ReadFile(filepath.Join(cfg.OutputDir, "posts", "first.html"))
	require.NoError(t, err)
	page = string(out)
	require.Contains(t, page, "Written 2024-05-01")
	require.Contains(t, page, `<a href="../">root</a>`)
	require.Contains(t, page, `href="../_templates/style.css"`)
}

func TestBuild_PassthroughByteIdentical(t *testing.T) {
	cfg := newFixtureSite(t)
	require.NoError(t, newBuilder(cfg).Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, "img", "photo.png"))
	require.NoError(t, err)
	require.Equal(t, pngBytes, out)
}

func TestBuild_TemplateAssetsMirrored_MarkupExcluded(t *testing.T) {
	cfg := newFixtureSite(t)
	require.NoError(t, newBuilder(cfg).Build(context.Background()))

	css, err := os.ReadFile(filepath.Join(cfg.OutputDir, config.TemplateDirName, "style.css"))
	require.NoError(t, err)
	require.Equal(t, "body{}", string(css))

	_, err = os.Stat(filepath.Join(cfg.OutputDir, config.TemplateDirName, "default.html"))
	require.True(t, os.IsNotExist(err))
}

func TestBuild_Idempotent(t *testing.T) {
	cfg := newFixtureSite(t)
	b := newBuilder(cfg)
	require.NoError(t, b.Build(context.Background()))
	require.NoError(t, b.Build(context.Background()))

	out, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(out), "<h1>Hi</h1>")
}

func TestBuild_MissingTemplateAborts(t *testing.T) {
	cfg := newFixtureSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, "bad.md"),
		[]byte("---\ntemplate: nope\n---\nx\n"), 0o644))

	err := newBuilder(cfg).Build(context.Background())
	require.Error(t, err)
	require.True(t, errors.IsCategory(err, errors.CategoryTemplate))
}

func TestBuild_CanceledContext(t *testing.T) {
	cfg := newFixtureSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, newBuilder(cfg).Build(ctx), context.Canceled)
}

func TestBuild_HiddenFilesSkipped(t *testing.T) {
	cfg := newFixtureSite(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InputDir, ".hidden.md"), []byte("# no\n"), 0o644))

	require.NoError(t, newBuilder(cfg).Build(context.Background()))
	_, err := os.Stat(filepath.Join(cfg.OutputDir, ".hidden.html"))
	require.True(t, os.IsNotExist(err))
}

// findText returns the text content of the first element named tag.
func findText(n *html.Node, tag string) string {
	el := findElement(n, tag)
	if el == nil {
		return ""
	}
	var sb strings.Builder
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := findElement(c, tag); el != nil {
			return el
		}
	}
	return nil
}
