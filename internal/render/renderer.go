// Package render turns one markdown document into one output HTML page.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gh-sh4/bloggg/internal/assets"
	"github.com/gh-sh4/bloggg/internal/breadcrumbs"
	"github.com/gh-sh4/bloggg/internal/config"
	"github.com/gh-sh4/bloggg/internal/errors"
	"github.com/gh-sh4/bloggg/internal/frontmatter"
	"github.com/gh-sh4/bloggg/internal/logfields"
	"github.com/gh-sh4/bloggg/internal/markdown"
	"github.com/gh-sh4/bloggg/internal/metrics"
)

// Renderer orchestrates frontmatter parsing, template loading, asset
// rewriting, markdown rendering, and token substitution for single documents.
type Renderer struct {
	cfg *config.Config
	rec metrics.Recorder
}

// New creates a Renderer. A nil recorder falls back to the noop recorder.
func New(cfg *config.Config, rec metrics.Recorder) *Renderer {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Renderer{cfg: cfg, rec: rec}
}

// RenderPage renders the document at relPath (relative to the input root)
// into the mirrored output location with its extension changed to .html,
// creating intermediate directories as needed.
//
// A resolved template that does not exist is a fatal configuration error; the
// caller decides whether that aborts the process (one-shot build) or only the
// current pass (watch mode).
func (r *Renderer) RenderPage(relPath string) error {
	outRel := OutputPath(relPath)
	slog.Info("Rendering page", logfields.File(relPath), logfields.Output(outRel))

	content, err := os.ReadFile(filepath.Join(r.cfg.InputDir, relPath))
	if err != nil {
		r.rec.IncRenderErrors()
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "read document").
			WithContext("file", relPath)
	}

	meta, body, had := frontmatter.Split(content)
	fields := frontmatter.Fields{}
	if had {
		fields, err = frontmatter.Parse(meta)
		if err != nil {
			r.rec.IncRenderErrors()
			return errors.Wrap(err, errors.CategoryRender, errors.SeverityError, "parse frontmatter").
				WithContext("file", relPath)
		}
	}

	page, err := r.renderTemplate(fields, body, relPath)
	if err != nil {
		r.rec.IncRenderErrors()
		return err
	}

	outPath := filepath.Join(r.cfg.OutputDir, outRel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		r.rec.IncRenderErrors()
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create output directory").
			WithContext("file", relPath)
	}
	if err := os.WriteFile(outPath, page, 0o644); err != nil {
		r.rec.IncRenderErrors()
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "write output page").
			WithContext("file", relPath)
	}

	r.rec.IncPagesRendered()
	return nil
}

// renderTemplate loads the resolved template and fills in every token.
func (r *Renderer) renderTemplate(fields frontmatter.Fields, body []byte, relPath string) ([]byte, error) {
	name := fields.Template()
	if name == "" {
		name = config.DefaultTemplateName
	}

	templatePath := filepath.Join(r.cfg.InputDir, config.TemplateDirName, name+config.TemplateExt)
	if _, err := os.Stat(templatePath); err != nil {
		return nil, errors.Wrap(err, errors.CategoryTemplate, errors.SeverityFatal,
			fmt.Sprintf("template %s does not exist", templatePath)).
			WithContext("file", relPath)
	}

	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "read template").
			WithContext("template", templatePath)
	}

	// Asset rewriting happens on the bare template so links generated from
	// the markdown body stay untouched.
	tmpl = assets.Rewrite(tmpl, templatePath, relPath)

	content, err := markdown.Render(body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryRender, errors.SeverityError, "render markdown").
			WithContext("file", relPath)
	}

	date := ""
	if v, ok := fields.Date(); ok {
		date = config.DatePrefix + frontmatter.DateString(v)
	}

	page := string(tmpl)
	page = strings.ReplaceAll(page, config.TokenTitle, fields.Title())
	page = strings.ReplaceAll(page, config.TokenDate, date)
	page = strings.ReplaceAll(page, config.TokenContent, string(content))
	page = strings.ReplaceAll(page, config.TokenBreadcrumbs, breadcrumbs.Generate(relPath))
	return []byte(page), nil
}

// OutputPath maps a source document path to its output page path.
func OutputPath(relPath string) string {
	return strings.TrimSuffix(relPath, filepath.Ext(relPath)) + ".html"
}
