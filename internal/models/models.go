package models

// Value is a generic type to represent any JSON value.
// It holds one of: Object, Array, string, json.Number, bool, or nil (for JSON null).
// Numbers are always json.Number so that integer, floating and exponent
// forms survive a parse/serialize round trip unchanged.
type Value interface{}

// Member is a single key/value entry in an Object.
type Member struct {
	Key   string
	Value Value
}

// Object represents a JSON object as an ordered sequence of members.
// A slice of pairs rather than a map, so that key order from the input
// is preserved through rendering and search.
type Object []Member

// Get returns the value for key and whether the key is present.
func (o Object) Get(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the object's keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Array represents a JSON array, which is a slice of Values.
type Array []Value

// Result is the outcome of normalizing one raw input.
//
// Invariants: if Entries has more than one item, Primary is an Array
// wrapping Entries in original order; if exactly one, Primary equals that
// entry; if no entries and no whole-input parse succeeded, HasPrimary is
// false and Errors is non-empty (for non-blank input).
type Result struct {
	// Primary is the single recovered value, only meaningful when HasPrimary.
	Primary Value
	// HasPrimary distinguishes "no value recovered" from a recovered JSON null.
	HasPrimary bool
	// Entries holds the individually recovered records for multi-record input.
	Entries []Value
	// Errors holds one diagnostic per segment that could not be decoded.
	Errors []string
}

// Stats holds per-category node counts for a Value tree.
// Every visited node, containers included, counts exactly once.
type Stats struct {
	Objects    int
	Arrays     int
	Strings    int
	Numbers    int
	Booleans   int
	Nulls      int
	TotalNodes int
}
