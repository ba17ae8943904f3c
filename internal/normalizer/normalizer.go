// Package normalizer drives the recovery pipeline: segmentation, strict
// parsing and escape/quote decoding, aggregating everything into a single
// models.Result.
package normalizer

import (
	"fmt"
	"strings"

	"github.com/jnorm/jnorm/internal/decoder"
	"github.com/jnorm/jnorm/internal/models"
	"github.com/jnorm/jnorm/internal/parser"
	"github.com/jnorm/jnorm/internal/segmenter"
)

// snippetLength is how many characters of a failed segment are echoed in
// its diagnostic.
const snippetLength = 200

// LooksLikeJSON reports whether text is bracket-delimited, i.e. shaped
// like a JSON object or array. A cheap shape check, not validation.
func LooksLikeJSON(text string) bool {
	t := strings.TrimSpace(text)
	return (strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}")) ||
		(strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]"))
}

// Normalize converts raw JSON-like text into a Result. It never fails
// outright: every segment that cannot be decoded contributes a diagnostic
// to Result.Errors, and whatever was recovered is still returned. Partial
// success is expected and valid.
func Normalize(text string) models.Result {
	var result models.Result

	// Tolerate a leading byte-order mark from Windows-produced files.
	text = strings.TrimPrefix(text, "\uFEFF")

	// Fast path: input already shaped like a JSON object or array.
	if LooksLikeJSON(text) {
		value, err := parser.ParseString(strings.TrimSpace(text))
		if err == nil {
			result.Primary = value
			result.HasPrimary = true
			return result
		}
		// Keep going: segmentation may still recover the records.
		result.Errors = append(result.Errors, fmt.Sprintf("Parse error: %s", err))
	}

	for _, segment := range segmenter.Split(text) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		value, err := decodeSegment(segment)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Segment failed: %s\nSegment: %s", err, truncate(segment, snippetLength)))
			continue
		}
		result.Entries = append(result.Entries, value)
	}

	switch len(result.Entries) {
	case 0:
		// Primary stays absent; Errors explain why.
	case 1:
		result.Primary = result.Entries[0]
		result.HasPrimary = true
	default:
		arr := make(models.Array, len(result.Entries))
		copy(arr, result.Entries)
		result.Primary = arr
		result.HasPrimary = true
	}

	return result
}

// decodeSegment tries a strict parse for bracket-shaped segments, falling
// back to the escape/quote decoder; anything else goes straight to the
// decoder.
func decodeSegment(segment string) (models.Value, error) {
	if LooksLikeJSON(segment) {
		value, err := parser.ParseString(segment)
		if err == nil {
			return value, nil
		}
		return decoder.Decode(segment)
	}
	return decoder.Decode(segment)
}

// truncate shortens s to at most n characters, rune-safe.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
