// Package frontmatter splits the leading `---` delimited metadata block from
// a markdown document and parses it as YAML.
//
// Matching is deliberately loose: the opening delimiter is the first `---`
// occurrence anywhere in the document and the closing delimiter is the next
// occurrence after it. A document whose body contains a literal `---` before
// any real metadata block is therefore mis-parsed. This is a known false
// positive kept for compatibility rather than guarded against.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var delimiter = []byte("---")

// Split separates the delimited metadata block from the markdown body.
//
// If either delimiter is missing, had is false and body is the full input
// unchanged. A missing block is not an error; it is a valid "no metadata"
// document.
func Split(content []byte) (meta []byte, body []byte, had bool) {
	start := bytes.Index(content, delimiter)
	if start < 0 {
		return nil, content, false
	}
	rest := start + len(delimiter)
	end := bytes.Index(content[rest:], delimiter)
	if end < 0 {
		return nil, content, false
	}
	end += rest
	return content[rest:end], content[end+len(delimiter):], true
}

// Fields is the parsed frontmatter mapping. Unrecognized keys are carried but
// ignored by the renderer.
type Fields map[string]any

// Parse parses raw metadata (without delimiters) into Fields. Empty input
// yields an empty non-nil map.
func Parse(meta []byte) (Fields, error) {
	if len(meta) == 0 {
		return Fields{}, nil
	}

	var fields Fields
	if err := yaml.Unmarshal(meta, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}

// Template returns the trimmed `template` key, or "" when absent.
func (f Fields) Template() string {
	v, ok := f["template"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Title returns the `title` key, or "" when absent.
func (f Fields) Title() string {
	v, ok := f["title"]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// Date returns the `date` key and whether it was present. YAML timestamps
// arrive as time.Time; anything else passes through as-is.
func (f Fields) Date() (any, bool) {
	v, ok := f["date"]
	return v, ok
}

// DateString renders a frontmatter date value the way it is substituted into
// templates: date-only timestamps as 2006-01-02, timestamps with a time of
// day in RFC 3339, strings unchanged.
func DateString(v any) string {
	switch d := v.(type) {
	case time.Time:
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
			return d.Format("2006-01-02")
		}
		return d.Format(time.RFC3339)
	case string:
		return d
	default:
		return fmt.Sprintf("%v", d)
	}
}
