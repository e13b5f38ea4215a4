// Package breadcrumbs renders the navigation trail from the site root down to
// a page's containing directory.
package breadcrumbs

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// RootLabel is the literal label of the site root crumb.
const RootLabel = "root"

// DirDepth returns the number of directories between the input root and the
// document at relPath. Breadcrumb link depth and asset rewrite depth are both
// derived from this quantity.
func DirDepth(relPath string) int {
	dir := path.Dir(filepath.ToSlash(relPath))
	if dir == "." || dir == "" {
		return 0
	}
	return strings.Count(dir, "/") + 1
}

// Generate renders the breadcrumb trail for the document at relPath (relative
// to the input root). The trail covers the document's ancestor directories
// root-first; the page's own name never appears as a crumb, so an index page
// and a sibling page in the same directory share a trail. A document sitting
// directly in the root has no trail and yields the empty string.
//
// Every crumb links upward with as many `../` segments as there are
// directories between the document and that crumb; the current directory
// crumb keeps an empty href. Directory names are emitted verbatim without
// HTML escaping, so a directory named with markup will leak into the page.
func Generate(relPath string) string {
	dir := path.Dir(filepath.ToSlash(relPath))

	crumbs := []string{RootLabel}
	if dir != "." && dir != "" {
		crumbs = append(crumbs, strings.Split(dir, "/")...)
	}

	// A single crumb means the document resolves to the root itself.
	if len(crumbs) == 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="breadcrumbs">`)
	for i, name := range crumbs {
		if i != 0 {
			b.WriteString(" / ")
		}
		href := strings.Repeat("../", len(crumbs)-1-i)
		fmt.Fprintf(&b, `<a href="%s">%s</a>`, href, name)
	}
	b.WriteString("</nav>")
	return b.String()
}
