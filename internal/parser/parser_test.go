package parser

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/jnorm/jnorm/internal/errors"
	"github.com/jnorm/jnorm/internal/models"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	value, err := ParseString(jsonStr)

	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expected := models.Object{
		{Key: "name", Value: "John Doe"},
		{Key: "age", Value: json.Number("30")},
		{Key: "isStudent", Value: false},
		{Key: "city", Value: nil},
	}

	actual, ok := value.(models.Object)
	if !ok {
		t.Fatalf("ParseString() value is not a models.Object, got %T", value)
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("ParseString() = %v, want %v", actual, expected)
	}
}

func TestParse_PreservesKeyOrder(t *testing.T) {
	jsonStr := `{"z": 1, "a": 2, "m": 3}`
	value, err := ParseString(jsonStr)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	obj := value.(models.Object)
	want := []string{"z", "a", "m"}
	if got := obj.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseString() key order = %v, want %v", got, want)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	jsonStr := `[1, "test", true, null, 3.14]`
	value, err := ParseString(jsonStr)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	expected := models.Array{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	actual, ok := value.(models.Array)
	if !ok {
		t.Fatalf("ParseString() value is not a models.Array, got %T", value)
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("ParseString() = %v, want %v", actual, expected)
	}
}

func TestParse_NestedStructure(t *testing.T) {
	jsonStr := `{"user": {"tags": ["a", "b"], "meta": {"active": true}}}`
	value, err := ParseString(jsonStr)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	obj := value.(models.Object)
	user, ok := obj.Get("user")
	if !ok {
		t.Fatal("ParseString() missing key 'user'")
	}
	tags, ok := user.(models.Object).Get("tags")
	if !ok {
		t.Fatal("ParseString() missing key 'tags'")
	}
	if !reflect.DeepEqual(tags, models.Array{"a", "b"}) {
		t.Errorf("ParseString() tags = %v, want [a b]", tags)
	}
}

func TestParse_NumberFormPreserved(t *testing.T) {
	// Exponent forms must survive as written, not be rewritten as floats.
	jsonStr := `{"score": 2.779960632324219E-4, "count": 42}`
	value, err := ParseString(jsonStr)
	if err != nil {
		t.Fatalf("ParseString() error = %v, wantErr nil", err)
	}

	score, _ := value.(models.Object).Get("score")
	num, ok := score.(json.Number)
	if !ok {
		t.Fatalf("ParseString() score is not a json.Number, got %T", score)
	}
	if num.String() != "2.779960632324219E-4" {
		t.Errorf("ParseString() score text = %q, want %q", num.String(), "2.779960632324219E-4")
	}
}

func TestParse_ScalarRoots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Value
	}{
		{name: "string", input: `"hello"`, want: "hello"},
		{name: "number", input: `12.5`, want: json.Number("12.5")},
		{name: "boolean", input: `true`, want: true},
		{name: "null", input: `null`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) error = %v, wantErr nil", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty input", input: "", wantErr: errors.ErrEmptyInput},
		{name: "whitespace only", input: "   \n\t ", wantErr: errors.ErrEmptyInput},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`, wantErr: errors.ErrTrailingData},
		{name: "trailing garbage", input: `{"a": 1} nonsense`, wantErr: nil},
		{name: "unterminated object", input: `{"a": 1`, wantErr: nil},
		{name: "bare word", input: `hello`, wantErr: nil},
		{name: "single quotes", input: `{'a': 1}`, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) error = nil, want an error", tt.input)
			}
			if tt.wantErr != nil && !stderrors.Is(err, tt.wantErr) {
				t.Errorf("ParseString(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestParse_Reader(t *testing.T) {
	value, err := Parse(strings.NewReader(`[true, false]`))
	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}
	if !reflect.DeepEqual(value, models.Array{true, false}) {
		t.Errorf("Parse() = %v, want [true false]", value)
	}
}
