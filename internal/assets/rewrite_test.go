package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gh-sh4/bloggg/internal/breadcrumbs"
)

func TestRewrite_RelativeSrcThreeLevelsDeep(t *testing.T) {
	in := []byte(`<link href="style.css"><img src="logo.png">`)

	out := string(Rewrite(in, "_templates/default.html", "a/b/c/page.md"))
	require.Contains(t, out, `href="../../../_templates/style.css"`)
	require.Contains(t, out, `src="../../../_templates/logo.png"`)
}

func TestRewrite_RootLevelDocument_NoParentSegments(t *testing.T) {
	in := []byte(`<link href="style.css">`)

	out := string(Rewrite(in, "_templates/default.html", "index.md"))
	require.Equal(t, `<link href="_templates/style.css">`, out)
}

func TestRewrite_AbsoluteURLAndFragmentUntouched(t *testing.T) {
	in := []byte(`<a href="https://x.com">x</a><a href="#frag">f</a><a href="mailto:a@b.c">m</a>`)

	out := Rewrite(in, "_templates/default.html", "a/page.md")
	require.Equal(t, in, out)
}

func TestRewrite_SurroundingHTMLByteIdentical(t *testing.T) {
	in := []byte("<!doctype html>\n<html>\n  <head><link href=\"style.css\"></head>\n  <body>$$DOC_CONTENT$$</body>\n</html>\n")

	out := string(Rewrite(in, "_templates/default.html", "a/page.md"))
	require.Equal(t,
		"<!doctype html>\n<html>\n  <head><link href=\"../_templates/style.css\"></head>\n  <body>$$DOC_CONTENT$$</body>\n</html>\n",
		out)
}

// Breadcrumb link depth and asset rewrite depth are derived independently;
// this pins both against the same fixtures so they cannot drift apart.
func TestDepth_MatchesBreadcrumbArithmetic(t *testing.T) {
	fixtures := []string{
		"index.md",
		"about.md",
		"posts/index.md",
		"a/b/page.md",
		"a/b/c/page.md",
	}

	for _, rel := range fixtures {
		ups := depthBelowRoot(rel)
		require.Equal(t, breadcrumbs.DirDepth(rel), ups, rel)

		out := string(Rewrite([]byte(`<link href="style.css">`), "_templates/default.html", rel))
		require.Equal(t, ups, strings.Count(out, "../"), rel)

		trail := breadcrumbs.Generate(rel)
		if ups == 0 {
			require.Empty(t, trail, rel)
		} else {
			// The root crumb climbs exactly as many levels as an asset reference.
			require.Contains(t, trail, `<a href="`+strings.Repeat("../", ups)+`">root</a>`, rel)
		}
	}
}
