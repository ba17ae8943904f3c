package decoder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnorm/jnorm/internal/models"
)

func TestDecode_DoubleEncodedJSON(t *testing.T) {
	// A JSON string literal whose content is itself JSON text.
	segment := `"{\"key\":\"AIRCRAFT\",\"value\":false}"`

	value, err := Decode(segment)
	require.NoError(t, err)

	obj, ok := value.(models.Object)
	require.True(t, ok, "expected an object, got %T", value)

	key, found := obj.Get("key")
	require.True(t, found)
	assert.Equal(t, "AIRCRAFT", key)

	val, found := obj.Get("value")
	require.True(t, found)
	assert.Equal(t, false, val)
}

func TestDecode_IndexPrefixedDoubleQuoted(t *testing.T) {
	segment := `0: ""{\"key\":\"AIRCRAFT\"}""`

	value, err := Decode(segment)
	require.NoError(t, err)

	obj, ok := value.(models.Object)
	require.True(t, ok, "expected an object, got %T", value)

	key, found := obj.Get("key")
	require.True(t, found)
	assert.Equal(t, "AIRCRAFT", key)
}

func TestDecode_IndexPrefixVariants(t *testing.T) {
	tests := []struct {
		name    string
		segment string
	}{
		{name: "tight prefix", segment: `0: {"a":1}`},
		{name: "spaced prefix", segment: `  12 : {"a":1}`},
		{name: "no space after colon", segment: `3:{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Decode(tt.segment)
			require.NoError(t, err)
			obj, ok := value.(models.Object)
			require.True(t, ok)
			a, found := obj.Get("a")
			require.True(t, found)
			assert.Equal(t, json.Number("1"), a)
		})
	}
}

func TestDecode_SingleQuoteWrapper(t *testing.T) {
	value, err := Decode(`'{"a": true}'`)
	require.NoError(t, err)

	obj, ok := value.(models.Object)
	require.True(t, ok)
	a, found := obj.Get("a")
	require.True(t, found)
	assert.Equal(t, true, a)
}

func TestDecode_EscapedWithIndexAndExponent(t *testing.T) {
	segment := `0: ""{\"key\":\"AIRCRAFT\",\"value\":false,\"metadata\":{\"score\":2.779960632324219E-4}}""`

	value, err := Decode(segment)
	require.NoError(t, err)

	obj := value.(models.Object)
	meta, found := obj.Get("metadata")
	require.True(t, found)
	score, found := meta.(models.Object).Get("score")
	require.True(t, found)
	assert.Equal(t, json.Number("2.779960632324219E-4"), score)
}

func TestDecode_PlainStringStaysString(t *testing.T) {
	// The string's content is not JSON, so the outer string is the value.
	value, err := Decode(`"just some words"`)
	require.NoError(t, err)
	assert.Equal(t, "just some words", value)
}

func TestDecode_WellFormedInputNotMangled(t *testing.T) {
	value, err := Decode(`{"text": "a \"quoted\" word"}`)
	require.NoError(t, err)

	obj := value.(models.Object)
	text, found := obj.Get("text")
	require.True(t, found)
	assert.Equal(t, `a "quoted" word`, text)
}

func TestDecode_FailureJoinsAttemptErrors(t *testing.T) {
	_, err := Decode(`not json at all`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), " | ", "diagnostic should chain each attempt's error")
}

func TestUnescapeBackslashes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "escaped quotes", input: `{\"a\":1}`, want: `{"a":1}`},
		{name: "escaped backslash", input: `a\\b`, want: `a\b`},
		{name: "newline and tab", input: `a\nb\tc`, want: "a\nb\tc"},
		{name: "unicode escape", input: `\u00e9`, want: "é"},
		{name: "invalid unicode kept", input: `\uzzzz`, want: `\uzzzz`},
		{name: "unknown escape kept", input: `\q`, want: `\q`},
		{name: "no escapes", input: "plain", want: "plain"},
		{name: "trailing backslash", input: `end\`, want: `end\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, unescapeBackslashes(tt.input))
		})
	}
}

func TestStripWrapping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "index prefix", input: `0: {"a":1}`, want: `{"a":1}`},
		{name: "outer double quotes", input: `"{}"`, want: `{}`},
		{name: "outer single quotes", input: `'{}'`, want: `{}`},
		{name: "one layer only", input: `""x""`, want: `"x"`},
		{name: "mismatched quotes kept", input: `"x'`, want: `"x'`},
		{name: "colon without digits kept", input: `a: 1`, want: `a: 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripWrapping(tt.input))
		})
	}
}

func TestCollapseDoubledQuotes(t *testing.T) {
	// After one residual layer is stripped, ""x"" collapses to "x".
	assert.Equal(t, `"{}"`, collapseDoubledQuotes(`""{}""`))
}
