// Package site walks the input tree, dispatching markdown files to the page
// renderer and copying passthrough assets verbatim.
package site

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gh-sh4/bloggg/internal/config"
	"github.com/gh-sh4/bloggg/internal/errors"
	"github.com/gh-sh4/bloggg/internal/logfields"
	"github.com/gh-sh4/bloggg/internal/metrics"
	"github.com/gh-sh4/bloggg/internal/render"
)

// Builder performs full site passes. Passes are idempotent: re-running over
// an existing output tree simply overwrites it.
type Builder struct {
	cfg      *config.Config
	renderer *render.Renderer
	rec      metrics.Recorder
}

// New creates a Builder. A nil recorder falls back to the noop recorder.
func New(cfg *config.Config, renderer *render.Renderer, rec metrics.Recorder) *Builder {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Builder{cfg: cfg, renderer: renderer, rec: rec}
}

// Renderer exposes the page renderer for single-file reprocessing.
func (b *Builder) Renderer() *render.Renderer {
	return b.renderer
}

// Build runs one full pass: passthrough assets, template-local assets, then
// every markdown page. Cancellation is honored between files.
func (b *Builder) Build(ctx context.Context) error {
	start := time.Now()
	err := b.build(ctx)
	b.rec.ObservePassDuration(time.Since(start))

	switch {
	case ctx.Err() != nil:
		b.rec.IncPassOutcome(metrics.OutcomeCanceled)
	case err != nil:
		b.rec.IncPassOutcome(metrics.OutcomeFailed)
	default:
		b.rec.IncPassOutcome(metrics.OutcomeSuccess)
	}
	return err
}

func (b *Builder) build(ctx context.Context) error {
	if err := b.copyPassthrough(ctx); err != nil {
		return err
	}
	if err := b.copyTemplateAssets(ctx); err != nil {
		return err
	}
	return b.renderPages(ctx)
}

// copyPassthrough mirrors passthrough asset files from the input tree into
// the output tree, skipping everything under the template directory.
func (b *Builder) copyPassthrough(ctx context.Context) error {
	return b.walk(ctx, func(rel string) error {
		if InTemplateDir(rel) || !config.IsPassthroughExt(filepath.Ext(rel)) {
			return nil
		}
		return b.copyFile(rel, rel)
	})
}

// copyTemplateAssets mirrors the template directory's non-markup files
// (images, css, js) into the reserved directory at the output root.
func (b *Builder) copyTemplateAssets(ctx context.Context) error {
	templateDir := filepath.Join(b.cfg.InputDir, config.TemplateDirName)
	if _, err := os.Stat(templateDir); os.IsNotExist(err) {
		return nil
	}

	if err := os.MkdirAll(filepath.Join(b.cfg.OutputDir, config.TemplateDirName), 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create output template directory")
	}

	return b.walk(ctx, func(rel string) error {
		if !InTemplateDir(rel) {
			return nil
		}
		ext := filepath.Ext(rel)
		// Template markup stays out of the output; it is consumed at render time.
		if strings.EqualFold(ext, config.TemplateExt) || !config.IsPassthroughExt(ext) {
			return nil
		}
		return b.copyFile(rel, rel)
	})
}

// renderPages renders every markdown document outside the template directory.
func (b *Builder) renderPages(ctx context.Context) error {
	return b.walk(ctx, func(rel string) error {
		if InTemplateDir(rel) || !strings.EqualFold(filepath.Ext(rel), config.MarkdownExt) {
			return nil
		}
		return b.renderer.RenderPage(rel)
	})
}

// walk visits every regular file under the input root, passing its path
// relative to the root. Hidden files are skipped.
func (b *Builder) walk(ctx context.Context, fn func(rel string) error) error {
	root := b.cfg.InputDir
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(rel)
	})
	if err != nil && ctx.Err() == nil {
		if _, ok := err.(*errors.Error); ok {
			return err
		}
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "walk input tree")
	}
	return err
}

// copyFile copies one file byte-for-byte from the input tree to the output
// tree, creating intermediate directories.
func (b *Builder) copyFile(srcRel, dstRel string) error {
	src := filepath.Join(b.cfg.InputDir, srcRel)
	dst := filepath.Join(b.cfg.OutputDir, dstRel)
	slog.Info("Copying asset", logfields.File(srcRel), logfields.Output(dst))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create output directory").
			WithContext("file", srcRel)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "open source file").
			WithContext("file", srcRel)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "create output file").
			WithContext("file", srcRel)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "copy file").
			WithContext("file", srcRel)
	}
	if err := out.Close(); err != nil {
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "flush output file").
			WithContext("file", srcRel)
	}

	b.rec.IncAssetsCopied()
	return nil
}

// InTemplateDir reports whether rel sits inside the reserved template
// directory.
func InTemplateDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	return rel == config.TemplateDirName || strings.HasPrefix(rel, config.TemplateDirName+"/")
}
