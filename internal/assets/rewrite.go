// Package assets rewrites relative asset references in template HTML so they
// resolve to the reserved template directory from any output depth.
package assets

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gh-sh4/bloggg/internal/config"
	"github.com/gh-sh4/bloggg/internal/logfields"
)

var (
	refPattern = regexp.MustCompile(`(href|src)="([^"]+)"`)

	// RFC 3986 scheme. Values carrying a scheme (http:, https:, mailto:, …)
	// are absolute and left alone.
	schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
)

// Rewrite patches every relative href/src attribute value in template HTML to
// reach the template directory at the output root from the document's output
// location. Absolute URLs and same-page fragments are left unmodified, and
// everything outside the matched attribute values stays byte-identical.
//
// This runs against template-sourced HTML only, never against rendered
// markdown, so author-written links inside page bodies are untouched.
func Rewrite(templateHTML []byte, templatePath, docRelPath string) []byte {
	ups := strings.Repeat("../", depthBelowRoot(docRelPath))

	return refPattern.ReplaceAllFunc(templateHTML, func(m []byte) []byte {
		sub := refPattern.FindSubmatch(m)
		attr, val := string(sub[1]), string(sub[2])
		if schemePattern.MatchString(val) || strings.HasPrefix(val, "#") {
			return m
		}

		assetPath := ups + config.TemplateDirName + "/" + val
		slog.Debug("Rewrote template asset reference",
			logfields.Asset(assetPath),
			logfields.Template(templatePath),
			slog.String("attr", attr))
		return []byte(fmt.Sprintf(`%s="%s"`, attr, assetPath))
	})
}

// depthBelowRoot counts the directories between the input root and the
// document. Derived independently from the breadcrumb generator's arithmetic;
// the two are pinned against shared fixtures in the tests.
func depthBelowRoot(relPath string) int {
	dir := path.Dir(filepath.ToSlash(relPath))
	if dir == "." || dir == "" {
		return 0
	}
	return strings.Count(dir, "/") + 1
}
