package parsing

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Value is a read-only view over one untyped JSON value. Lookups never fail:
// a missing key yields a Value for which Exists reports false.
type Value struct {
	res gjson.Result
}

// Parse parses a JSON document. Invalid JSON is reported as a *ParseError.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, &ParseError{Message: "record is not valid JSON"}
	}
	return Value{res: gjson.ParseBytes(data)}, nil
}

// ParseString parses a JSON document, returning a missing Value when it is invalid.
func ParseString(s string) Value {
	if !gjson.Valid(s) {
		return Value{}
	}
	return Value{res: gjson.Parse(s)}
}

// ValueOf wraps a decoded Go value (maps, slices, scalars) as a Value.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case Value:
		return t
	case gjson.Result:
		return Value{res: t}
	case json.RawMessage:
		return ParseString(string(t))
	}
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}
	}
	return Value{res: gjson.ParseBytes(data)}
}

// Exists reports whether the value is present, including an explicit null.
func (v Value) Exists() bool {
	return v.res.Exists()
}

// IsNull reports whether the value is missing or an explicit null.
func (v Value) IsNull() bool {
	return !v.res.Exists() || v.res.Type == gjson.Null
}

// IsObject reports whether the value is a JSON object.
func (v Value) IsObject() bool {
	return v.res.IsObject()
}

// IsString reports whether the value is a JSON string.
func (v Value) IsString() bool {
	return v.res.Type == gjson.String
}

// IsArray reports whether the value is a JSON array.
func (v Value) IsArray() bool {
	return v.res.IsArray()
}

// Truthy follows loose truthiness: missing, null, false, 0 and "" are false,
// every object and array is true.
func (v Value) Truthy() bool {
	switch v.res.Type {
	case gjson.True:
		return true
	case gjson.String:
		return v.res.Str != ""
	case gjson.Number:
		return v.res.Num != 0
	case gjson.JSON:
		return true
	default:
		return false
	}
}

// Get returns the member named key. Non-object values have no members.
func (v Value) Get(key string) Value {
	if !v.res.IsObject() {
		return Value{}
	}
	return Value{res: v.res.Get(gjson.Escape(key))}
}

// Str resolves the first candidate key whose cleaned string value is non-empty.
func (v Value) Str(keys ...string) string {
	for _, key := range keys {
		if s := v.Get(key).clean(); s != "" {
			return s
		}
	}
	return ""
}

// List resolves the first candidate key holding a non-empty array.
func (v Value) List(keys ...string) []Value {
	for _, key := range keys {
		if items := v.Get(key).Array(); len(items) > 0 {
			return items
		}
	}
	return []Value{}
}

// Object resolves the first candidate key holding an object with at least one member.
func (v Value) Object(keys ...string) Value {
	for _, key := range keys {
		if obj := v.Get(key); obj.Len() > 0 && obj.IsObject() {
			return obj
		}
	}
	return Value{}
}

// Array returns the elements of an array value, or an empty slice for anything else.
func (v Value) Array() []Value {
	if !v.res.IsArray() {
		return []Value{}
	}
	raw := v.res.Array()
	out := make([]Value, len(raw))
	for i, r := range raw {
		out[i] = Value{res: r}
	}
	return out
}

// Items returns the decoded elements of an array value, or an empty slice.
func (v Value) Items() []any {
	if !v.res.IsArray() {
		return []any{}
	}
	items, ok := v.res.Value().([]any)
	if !ok {
		return []any{}
	}
	return items
}

// Len returns the number of members of an object or elements of an array.
func (v Value) Len() int {
	if !v.res.IsObject() && !v.res.IsArray() {
		return 0
	}
	n := 0
	v.res.ForEach(func(_, _ gjson.Result) bool {
		n++
		return true
	})
	return n
}

// Interface returns the decoded Go value: map[string]any, []any, float64, string, bool or nil.
func (v Value) Interface() any {
	if !v.res.Exists() {
		return nil
	}
	return v.res.Value()
}

// Map returns the decoded members of an object value, or nil.
func (v Value) Map() map[string]any {
	m, ok := v.Interface().(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// Raw returns the raw JSON text of the value.
func (v Value) Raw() string {
	return v.res.Raw
}

// String returns the cleaned scalar form of the value.
func (v Value) String() string {
	return v.clean()
}

// MarshalJSON emits the raw JSON text, or null when the value is missing.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.res.Exists() || v.res.Raw == "" {
		return []byte("null"), nil
	}
	return []byte(v.res.Raw), nil
}

// UnmarshalJSON keeps a copy of the raw JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) clean() string {
	switch v.res.Type {
	case gjson.String:
		return cleanString(v.res.Str)
	case gjson.Number:
		return formatNumber(v.res.Num)
	default:
		return ""
	}
}
