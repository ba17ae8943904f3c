// Package segmenter splits raw multi-record input into candidate JSON
// segments for the normalizer to parse one at a time.
package segmenter

import (
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// objectBoundaryRegex matches the seam between two concatenated JSON
// objects that lack an enclosing array, e.g. `{"a":1},{"b":2}`.
var objectBoundaryRegex = regexp.MustCompile(`}\s*,\s*{`)

// Split returns the candidate segments of text, in input order.
//
// A whole input that is already valid JSON stays a single segment, so a
// multi-line pretty-printed value is never broken apart. Otherwise the
// input is split on line breaks (blank lines dropped), and a single
// non-JSON line is tried as concatenated objects. This is a heuristic,
// not a grammar-aware splitter: the object-boundary split assumes no
// nested value contains the literal seam `},{`.
func Split(text string) []string {
	t := strings.TrimSpace(text)

	if gjson.Valid(t) {
		return []string{t}
	}

	// FieldsFunc handles \n, \r\n and lone \r endings alike and drops the
	// empty pieces between consecutive breaks.
	lines := strings.FieldsFunc(t, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines = slices.DeleteFunc(lines, func(line string) bool {
		return strings.TrimSpace(line) == ""
	})
	if len(lines) > 1 {
		return lines
	}

	if parts := splitConcatenatedObjects(t); len(parts) > 1 {
		return parts
	}

	return []string{t}
}

// splitConcatenatedObjects cuts text at every `},{` seam and restores the
// brace each cut consumed from its neighbours.
func splitConcatenatedObjects(text string) []string {
	parts := objectBoundaryRegex.Split(text, -1)
	if len(parts) < 2 {
		return nil
	}
	segments := make([]string, len(parts))
	for i, part := range parts {
		if i > 0 {
			part = "{" + part
		}
		if i < len(parts)-1 {
			part = part + "}"
		}
		segments[i] = part
	}
	return segments
}
