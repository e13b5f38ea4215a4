// Package watch re-runs the rendering pipeline when source files change.
//
// Event dispatch is a two-case state machine: a changed markdown file outside
// the template directory re-renders just that page; any other change triggers
// a full (idempotent) site pass. All work funnels through a single worker
// goroutine so passes never overlap over the same output tree.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/gh-sh4/bloggg/internal/config"
	"github.com/gh-sh4/bloggg/internal/errors"
	"github.com/gh-sh4/bloggg/internal/logfields"
	"github.com/gh-sh4/bloggg/internal/site"
)

// rebuildDebounce coalesces bursts of non-markdown events (editor save
// dances, directory copies) into one full pass.
const rebuildDebounce = 300 * time.Millisecond

type actionKind int

const (
	actionRenderOne actionKind = iota
	actionRebuildAll
)

type action struct {
	kind actionKind
	rel  string // document path relative to the input root, for actionRenderOne
}

// Watcher observes the input tree and serializes reprocessing.
type Watcher struct {
	cfg     *config.Config
	builder *site.Builder

	mu       sync.Mutex
	overflow bool // a dropped job degrades to one full rebuild
}

// New creates a Watcher over the given builder.
func New(cfg *config.Config, builder *site.Builder) *Watcher {
	return &Watcher{cfg: cfg, builder: builder}
}

// Run watches until ctx is canceled. A failing pass is reported and watching
// continues; only watcher setup failures are returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.CategoryWatch, errors.SeverityFatal, "create file watcher")
	}
	defer func() { _ = fw.Close() }()

	if err := addDirsRecursive(fw, w.cfg.InputDir); err != nil {
		return errors.Wrap(err, errors.CategoryWatch, errors.SeverityFatal, "watch input tree")
	}

	jobs := make(chan action, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(ctx, jobs)
	}()

	var timerMu sync.Mutex
	var timer *time.Timer
	triggerRebuild := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(rebuildDebounce, func() {
			w.enqueue(jobs, action{kind: actionRebuildAll})
		})
	}

	if w.cfg.RebuildEvery > 0 {
		scheduler, schedErr := gocron.NewScheduler()
		if schedErr != nil {
			slog.Warn("Periodic rebuild disabled", logfields.Error(schedErr))
		} else {
			_, jobErr := scheduler.NewJob(
				gocron.DurationJob(w.cfg.RebuildEvery),
				gocron.NewTask(func() { w.enqueue(jobs, action{kind: actionRebuildAll}) }),
				gocron.WithName("periodic-rebuild"),
			)
			if jobErr != nil {
				slog.Warn("Periodic rebuild disabled", logfields.Error(jobErr))
			} else {
				scheduler.Start()
				defer func() { _ = scheduler.Shutdown() }()
				slog.Info("Periodic rebuild scheduled", "every", w.cfg.RebuildEvery.String())
			}
		}
	}

	slog.Info("Watching for changes", logfields.Path(w.cfg.InputDir))

	for {
		select {
		case <-ctx.Done():
			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timerMu.Unlock()
			wg.Wait()
			slog.Info("Watcher stopped")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fw, ev, jobs, triggerRebuild)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// handleEvent classifies one filesystem event and queues the matching action.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event, jobs chan action, triggerRebuild func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}

	// New directories must be watched before their contents change.
	if ev.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fw, ev.Name)
		}
	}

	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))

	act := classify(w.cfg.InputDir, ev)
	switch act.kind {
	case actionRenderOne:
		w.enqueue(jobs, act)
	case actionRebuildAll:
		triggerRebuild()
	}
}

// classify maps an event to its action. A created or written markdown file
// outside the template directory re-renders alone; everything else (template
// edits, asset changes, removals, renames) reprocesses the whole site.
func classify(root string, ev fsnotify.Event) action {
	rel, err := filepath.Rel(root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return action{kind: actionRebuildAll}
	}

	if strings.EqualFold(filepath.Ext(rel), config.MarkdownExt) &&
		!site.InTemplateDir(rel) &&
		ev.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		return action{kind: actionRenderOne, rel: rel}
	}
	return action{kind: actionRebuildAll}
}

// enqueue adds a job without ever blocking the event loop. When the queue is
// full the job degrades to a single pending full rebuild.
func (w *Watcher) enqueue(jobs chan<- action, act action) {
	select {
	case jobs <- act:
	default:
		slog.Warn("Job queue full; coalescing to full rebuild")
		w.mu.Lock()
		w.overflow = true
		w.mu.Unlock()
	}
}

// worker executes queued actions one at a time.
func (w *Watcher) worker(ctx context.Context, jobs <-chan action) {
	for {
		select {
		case <-ctx.Done():
			return
		case act := <-jobs:
			w.execute(ctx, act)

			w.mu.Lock()
			overflow := w.overflow
			w.overflow = false
			w.mu.Unlock()
			if overflow {
				w.execute(ctx, action{kind: actionRebuildAll})
			}
		}
	}
}

func (w *Watcher) execute(ctx context.Context, act action) {
	if ctx.Err() != nil {
		return
	}

	id := uuid.NewString()
	start := time.Now()

	var err error
	switch act.kind {
	case actionRenderOne:
		slog.Info("Reprocessing changed document", logfields.BuildID(id), logfields.File(act.rel))
		err = w.builder.Renderer().RenderPage(act.rel)
	case actionRebuildAll:
		slog.Info("Reprocessing site", logfields.BuildID(id))
		err = w.builder.Build(ctx)
	}

	if err != nil {
		if ctx.Err() != nil {
			return
		}
		// A failed pass must not take the watcher down.
		slog.Error("Reprocessing failed", logfields.BuildID(id), logfields.Error(err))
		return
	}

	slog.Info("Reprocessing complete",
		logfields.BuildID(id),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
}

func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fw.Add(path); err != nil {
				slog.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent returns true for filesystem events that should not
// trigger reprocessing.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}

	// Editor temp/swap files.
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		(strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#")) {
		return true
	}

	if base == "Thumbs.db" {
		return true
	}

	return false
}
