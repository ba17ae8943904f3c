// Package render serializes normalized values back to JSON text and
// renders them as an indented text tree.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/jnorm/jnorm/internal/models"
	"github.com/jnorm/jnorm/internal/query"
)

// Compact returns value as compact JSON with no insignificant whitespace.
// Object key order is preserved, number text is emitted verbatim, and
// non-ASCII characters pass through unescaped.
func Compact(value models.Value) string {
	var buf bytes.Buffer
	writeValue(&buf, value)
	return buf.String()
}

// Pretty returns value as JSON indented with two spaces.
func Pretty(value models.Value) string {
	return PrettyIndent(value, 2)
}

// PrettyIndent returns value as JSON indented with the given number of
// spaces per level.
func PrettyIndent(value models.Value, indent int) string {
	if indent <= 0 {
		return Compact(value)
	}
	opts := &pretty.Options{Indent: strings.Repeat(" ", indent)}
	out := pretty.PrettyOptions([]byte(Compact(value)), opts)
	return strings.TrimSuffix(string(out), "\n")
}

// writeValue appends the compact encoding of value to buf. Iterative over
// an explicit stack so nesting depth is not bounded by the goroutine stack.
func writeValue(buf *bytes.Buffer, value models.Value) {
	// A pending unit is either a value to encode or a literal separator.
	type unit struct {
		value   models.Value
		literal string
		isValue bool
	}

	stack := []unit{{value: value, isValue: true}}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !u.isValue {
			buf.WriteString(u.literal)
			continue
		}

		switch v := u.value.(type) {
		case models.Object:
			buf.WriteByte('{')
			pending := make([]unit, 0, 2*len(v)+1)
			pending = append(pending, unit{literal: "}"})
			for i := len(v) - 1; i >= 0; i-- {
				pending = append(pending, unit{value: v[i].Value, isValue: true})
				sep := ""
				if i > 0 {
					sep = ","
				}
				pending = append(pending, unit{literal: sep + encodeString(v[i].Key) + ":"})
			}
			// pending is built back-to-front, matching stack order.
			stack = append(stack, pending...)
		case models.Array:
			buf.WriteByte('[')
			pending := make([]unit, 0, 2*len(v)+1)
			pending = append(pending, unit{literal: "]"})
			for i := len(v) - 1; i >= 0; i-- {
				pending = append(pending, unit{value: v[i], isValue: true})
				if i > 0 {
					pending = append(pending, unit{literal: ","})
				}
			}
			stack = append(stack, pending...)
		case string:
			buf.WriteString(encodeString(v))
		case json.Number:
			buf.WriteString(v.String())
		case bool:
			if v {
				buf.WriteString("true")
			} else {
				buf.WriteString("false")
			}
		case nil:
			buf.WriteString("null")
		default:
			// Unreachable for pipeline-produced values.
			buf.WriteString(encodeString(fmt.Sprintf("%v", v)))
		}
	}
}

// encodeString returns the JSON string literal for s. Only quotes,
// backslashes and control characters are escaped; everything else,
// non-ASCII included, passes through as-is.
func encodeString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Tree renders value as an indented text tree, one node per line. Each
// container member shows its key (or [i]) and type label; scalar leaves
// also show their value. Rendering stops descending at maxDepth levels,
// marking elided subtrees with an ellipsis.
func Tree(value models.Value, maxDepth int) string {
	var b strings.Builder

	type frame struct {
		node  models.Value
		name  string
		depth int
	}

	var stack []frame
	pushChildren := func(node models.Value, depth int) {
		switch n := node.(type) {
		case models.Object:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					node:  n[i].Value,
					name:  fmt.Sprintf("%q", n[i].Key),
					depth: depth,
				})
			}
		case models.Array:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					node:  n[i],
					name:  fmt.Sprintf("[%d]", i),
					depth: depth,
				})
			}
		}
	}

	// The root itself gets no line unless it is a scalar.
	switch value.(type) {
	case models.Object, models.Array:
		pushChildren(value, 0)
	default:
		fmt.Fprintf(&b, "%s  (%s)\n", Compact(value), query.TypeLabel(value))
		return b.String()
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		indent := strings.Repeat("  ", f.depth)
		switch f.node.(type) {
		case models.Object, models.Array:
			if maxDepth > 0 && f.depth+1 >= maxDepth {
				fmt.Fprintf(&b, "%s%s  (%s) …\n", indent, f.name, query.TypeLabel(f.node))
				continue
			}
			fmt.Fprintf(&b, "%s%s  (%s)\n", indent, f.name, query.TypeLabel(f.node))
			pushChildren(f.node, f.depth+1)
		default:
			fmt.Fprintf(&b, "%s%s  (%s): %s\n", indent, f.name, query.TypeLabel(f.node), Compact(f.node))
		}
	}

	return b.String()
}
