// Package parser wraps strict JSON parsing into the models.Value
// representation, preserving object key order and number text.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/jnorm/jnorm/internal/errors"
	"github.com/jnorm/jnorm/internal/models"
)

// maxDepth bounds object/array nesting so adversarial input cannot
// exhaust the stack.
const maxDepth = 10000

// Parse decodes exactly one JSON value from reader. It accepts the standard
// JSON grammar only: objects, arrays, strings, numbers (including exponent
// forms), booleans and null. Anything after the first value is an error.
func Parse(reader io.Reader) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber() // keep the source text of every number

	value, err := parseValue(dec, 0)
	if err != nil {
		return nil, err
	}

	// Strict mode: exactly one value, nothing but whitespace after it.
	if tok, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return nil, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
		}
		return nil, errors.NewParsingError(
			fmt.Sprintf("trailing data after first JSON value: %v", tok),
			errors.ErrTrailingData,
		)
	}

	return value, nil
}

// ParseString parses JSON from a string
func ParseString(text string) (models.Value, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(text))
}

func parseValue(dec *json.Decoder, depth int) (models.Value, error) {
	if depth > maxDepth {
		return nil, errors.NewParsingError(
			fmt.Sprintf("nesting deeper than %d levels", maxDepth),
			errors.ErrTooDeep,
		)
	}

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("unexpected end of JSON input", errors.ErrEmptyInput)
		}
		return nil, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec, depth)
		case '[':
			return parseArray(dec, depth)
		}
		// The decoder only hands out a closing delimiter where it is
		// legal, so this is unreachable in practice.
		return nil, errors.NewParsingError(
			fmt.Sprintf("unexpected delimiter %q", t.String()),
			errors.ErrInvalidJSON,
		)
	case string:
		return t, nil
	case json.Number:
		return t, nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	default:
		return nil, errors.NewParsingError(
			fmt.Sprintf("unsupported token type %T", tok),
			errors.ErrInvalidJSON,
		)
	}
}

func parseObject(dec *json.Decoder, depth int) (models.Value, error) {
	obj := models.Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.NewParsingError(
				fmt.Sprintf("object key is not a string: %v", keyTok),
				errors.ErrInvalidJSON,
			)
		}
		value, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		obj = append(obj, models.Member{Key: key, Value: value})
	}
	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
	}
	return obj, nil
}

func parseArray(dec *json.Decoder, depth int) (models.Value, error) {
	arr := models.Array{}
	for dec.More() {
		value, err := parseValue(dec, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}
	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, errors.NewParsingError(err.Error(), errors.ErrInvalidJSON)
	}
	return arr, nil
}
