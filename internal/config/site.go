package config

import "strings"

// Site-wide conventions. These are fixed at compile time; nothing in the
// pipeline mutates them.
const (
	// TemplateDirName is the reserved subdirectory under the input root that
	// holds page templates and template-local assets. It is mirrored into the
	// output root and never treated as page content.
	TemplateDirName = "_templates"

	// DefaultTemplateName is used when a document's frontmatter has no
	// `template` key.
	DefaultTemplateName = "default"

	// TemplateExt is the extension of template markup files inside the
	// template directory.
	TemplateExt = ".html"

	// MarkdownExt is the extension of source documents.
	MarkdownExt = ".md"

	// DatePrefix is prepended to the frontmatter date when substituting
	// TokenDate.
	DatePrefix = "Written "
)

// Substitution tokens recognized in templates. Substitution is literal
// find/replace; a token absent from a template is silently skipped.
const (
	TokenTitle       = "$$DOC_TITLE$$"
	TokenDate        = "$$DOC_DATE$$"
	TokenContent     = "$$DOC_CONTENT$$"
	TokenBreadcrumbs = "$$BREADCRUMBS$$"
)

// passthroughExts are the file types copied byte-for-byte to the output tree.
var passthroughExts = map[string]struct{}{
	".html": {},
	".css":  {},
	".js":   {},
	".png":  {},
	".jpg":  {},
	".svg":  {},
}

// IsPassthroughExt reports whether ext (including the leading dot, any case)
// is copied verbatim to the output tree.
func IsPassthroughExt(ext string) bool {
	_, ok := passthroughExts[strings.ToLower(ext)]
	return ok
}
