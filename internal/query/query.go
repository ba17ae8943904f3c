// Package query provides inspection over an already-normalized value:
// type classification, recursive key/value search, path extraction and
// structural statistics.
//
// Every traversal here uses an explicit stack rather than recursion, so
// adversarially deep values cannot exhaust the goroutine stack.
package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jnorm/jnorm/internal/errors"
	"github.com/jnorm/jnorm/internal/models"
)

// pathTokenRegex splits one dotted path segment into a key and any
// trailing [i] index tokens, e.g. "items[0]" -> "items", "[0]".
var pathTokenRegex = regexp.MustCompile(`[^\[\]]+|\[\d+\]`)

// TypeLabel returns a human-readable classification of value, e.g.
// "object • 3 key(s)" or "boolean". Booleans are always classified as
// boolean, never as number.
func TypeLabel(value models.Value) string {
	switch v := value.(type) {
	case models.Object:
		return fmt.Sprintf("object • %d key(s)", len(v))
	case models.Array:
		return fmt.Sprintf("array • %d item(s)", len(v))
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

// ScalarString returns the search/display text of a scalar value.
func ScalarString(value models.Value) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", value)
	}
}

// searchItem is one unit of pending search work. A key check emits a hit
// when the member key matches; a visit descends into the value.
type searchItem struct {
	node     models.Value
	path     string
	key      string
	keyCheck bool
}

// Search walks value depth-first and returns the path of every node whose
// key or scalar string representation contains query, case-insensitively.
// Paths use dot notation for keys and [i] for array indices. The result is
// de-duplicated with first-occurrence order preserved.
func Search(value models.Value, query string) []string {
	q := strings.ToLower(query)
	var hits []string
	seen := make(map[string]bool)

	emit := func(path string) {
		if !seen[path] {
			seen[path] = true
			hits = append(hits, path)
		}
	}

	stack := []searchItem{{node: value}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.keyCheck {
			if strings.Contains(strings.ToLower(item.key), q) {
				emit(item.path)
			}
			continue
		}

		switch n := item.node.(type) {
		case models.Object:
			// Push in reverse so members pop in document order, each
			// key check immediately before its value.
			for i := len(n) - 1; i >= 0; i-- {
				memberPath := joinKey(item.path, n[i].Key)
				stack = append(stack,
					searchItem{node: n[i].Value, path: memberPath},
					searchItem{key: n[i].Key, path: memberPath, keyCheck: true},
				)
			}
		case models.Array:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, searchItem{
					node: n[i],
					path: fmt.Sprintf("%s[%d]", item.path, i),
				})
			}
		default:
			// Scalar at the root has no path to report.
			if item.path != "" && strings.Contains(strings.ToLower(ScalarString(n)), q) {
				emit(item.path)
			}
		}
	}

	return hits
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// ParsePath tokenizes a dotted/bracketed path string like "items[0].id"
// into key and index tokens: "items", "[0]", "id".
func ParsePath(path string) []string {
	var tokens []string
	for _, segment := range strings.Split(path, ".") {
		tokens = append(tokens, pathTokenRegex.FindAllString(segment, -1)...)
	}
	return tokens
}

// Extract traverses value along path and returns the terminal value. An
// empty path returns value itself. Traversal fails with a PathError naming
// the offending token when a key is missing or an index is out of range.
func Extract(value models.Value, path string) (models.Value, error) {
	current := value
	for _, token := range ParsePath(path) {
		if strings.HasPrefix(token, "[") {
			index, err := strconv.Atoi(token[1 : len(token)-1])
			if err != nil {
				return nil, errors.NewIndexOutOfRangeError(token)
			}
			arr, ok := current.(models.Array)
			if !ok || index >= len(arr) {
				return nil, errors.NewIndexOutOfRangeError(token)
			}
			current = arr[index]
			continue
		}

		obj, ok := current.(models.Object)
		if !ok {
			return nil, errors.NewKeyNotFoundError(token)
		}
		next, found := obj.Get(token)
		if !found {
			return nil, errors.NewKeyNotFoundError(token)
		}
		current = next
	}
	return current, nil
}

// CountNodes visits every node of value and returns per-category counts.
// Containers count once themselves, in addition to their children.
func CountNodes(value models.Value) models.Stats {
	var stats models.Stats

	stack := []models.Value{value}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		stats.TotalNodes++
		switch n := node.(type) {
		case models.Object:
			stats.Objects++
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, n[i].Value)
			}
		case models.Array:
			stats.Arrays++
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, n[i])
			}
		case string:
			stats.Strings++
		case json.Number:
			stats.Numbers++
		case bool:
			stats.Booleans++
		case nil:
			stats.Nulls++
		default:
			stats.Strings++
		}
	}

	return stats
}
