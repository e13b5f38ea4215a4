// Package metrics defines observability hooks for build passes.
package metrics

import "time"

// Outcome labels for completed passes.
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// Recorder defines observability hooks for build and page metrics.
// Implementations may forward to Prometheus; the NoopRecorder allows optional
// injection without nil checks at call sites.
type Recorder interface {
	ObservePassDuration(d time.Duration)
	IncPassOutcome(outcome string)
	IncPagesRendered()
	IncAssetsCopied()
	IncRenderErrors()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePassDuration(time.Duration) {}
func (NoopRecorder) IncPassOutcome(string)             {}
func (NoopRecorder) IncPagesRendered()                 {}
func (NoopRecorder) IncAssetsCopied()                  {}
func (NoopRecorder) IncRenderErrors()                  {}
