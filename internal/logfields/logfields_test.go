package logfields

import (
	"fmt"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"File", KeyFile, "page.md", File("page.md")},
		{"Path", KeyPath, "/tmp/in", Path("/tmp/in")},
		{"Output", KeyOutput, "/tmp/out", Output("/tmp/out")},
		{"Template", KeyTemplate, "default", Template("default")},
		{"Asset", KeyAsset, "../_templates/style.css", Asset("../_templates/style.css")},
		{"BuildID", KeyBuildID, "b1", BuildID("b1")},
		{"Op", KeyOp, "CREATE", Op("CREATE")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestError_NilAndNonNil(t *testing.T) {
	if got := Error(nil).Value.String(); got != "" {
		t.Fatalf("expected empty value for nil error, got %q", got)
	}
	if got := Error(fmt.Errorf("boom")).Value.String(); got != "boom" {
		t.Fatalf("expected boom, got %q", got)
	}
}
