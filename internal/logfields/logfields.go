package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyFile       = "file"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyTemplate   = "template"
	KeyAsset      = "asset"
	KeyBuildID    = "build_id"
	KeyOp         = "op"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Output(o string) slog.Attr       { return slog.String(KeyOutput, o) }
func Template(t string) slog.Attr     { return slog.String(KeyTemplate, t) }
func Asset(a string) slog.Attr        { return slog.String(KeyAsset, a) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
