// Package decoder recovers JSON values from segments that failed strict
// parsing because they were wrapped in extra quoting or escaping, or
// prefixed with a log-style record index such as "0: ".
package decoder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jnorm/jnorm/internal/errors"
	"github.com/jnorm/jnorm/internal/models"
	"github.com/jnorm/jnorm/internal/parser"
)

var (
	// indexPrefixRegex matches log-style record prefixes like `0: ` or `12 :`.
	indexPrefixRegex = regexp.MustCompile(`^\s*\d+\s*:\s*`)
	// doubledQuoteRegex matches content wrapped as ""..."", which some log
	// pipelines emit when re-quoting an already quoted blob.
	doubledQuoteRegex = regexp.MustCompile(`^\s*""(.*)""\s*$`)
)

// fallbacks is the recovery chain. Each transform receives the output of
// the previous one, so the chain gets progressively more aggressive. The
// first attempt only trims, so a segment that is already a valid JSON value
// (a quoted plain string, for instance) is never altered.
var fallbacks = []func(string) string{
	strings.TrimSpace,
	stripWrapping,
	collapseDoubledQuotes,
	unescapeBackslashes,
}

// Decode attempts to recover a JSON value from a single raw segment. Each
// fallback transform is applied in turn and the result parsed; the first
// successful parse wins. When a parse yields a string whose content is
// itself JSON, the inner value is returned (double-encoded JSON). If every
// attempt fails, the returned error carries each attempt's parse error,
// joined with " | ".
func Decode(segment string) (models.Value, error) {
	text := segment
	attempts := make([]string, 0, len(fallbacks))

	for _, transform := range fallbacks {
		text = transform(text)
		value, err := parseWithInnerDecode(text)
		if err == nil {
			return value, nil
		}
		attempts = append(attempts, err.Error())
	}

	return nil, errors.NewSegmentError(
		fmt.Sprintf("failed to decode escaped JSON, attempts: %s", strings.Join(attempts, " | ")),
		errors.ErrInvalidJSON,
	)
}

// parseWithInnerDecode parses text strictly, and when the result is a string
// tries a second parse of the string's content. Log pipelines often emit
// JSON double-encoded as a string value inside another JSON string; the
// inner value is what the caller wants. A string whose content is not JSON
// is returned as the plain string.
func parseWithInnerDecode(text string) (models.Value, error) {
	value, err := parser.ParseString(text)
	if err != nil {
		return nil, err
	}
	if s, ok := value.(string); ok {
		if inner, err := parser.ParseString(s); err == nil {
			return inner, nil
		}
		return s, nil
	}
	return value, nil
}

// stripWrapping removes a leading record-index prefix, trims whitespace and
// strips exactly one layer of surrounding double or single quotes.
func stripWrapping(s string) string {
	s = indexPrefixRegex.ReplaceAllString(s, "")
	return stripQuoteLayer(strings.TrimSpace(s))
}

// collapseDoubledQuotes re-trims, strips one residual quote layer and turns
// a ""..."" wrapper into a single quote layer.
func collapseDoubledQuotes(s string) string {
	s = stripQuoteLayer(strings.TrimSpace(s))
	return doubledQuoteRegex.ReplaceAllString(s, `"$1"`)
}

// stripQuoteLayer removes one matching pair of surrounding quotes, if any.
func stripQuoteLayer(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// unescapeBackslashes interprets backslash escape sequences literally
// present in the text, turning e.g. a literal \" into " and \uXXXX into the
// corresponding rune. Sequences that are not standard escapes are kept
// verbatim.
func unescapeBackslashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		case '/':
			b.WriteByte('/')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			if i+4 < len(s) {
				if n, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(n))
					i += 4
					break
				}
			}
			b.WriteString(`\u`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
