// Package parsing provides total, schema-tolerant accessors over untyped portfolio records.
package parsing

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// notApplicable is the placeholder some record sources use for blank fields
const notApplicable = "N/A"

// CleanStr coerces a field value into a clean scalar string.
// nil and unsupported types yield "", strings are trimmed with "N/A" collapsing to "",
// and numbers are rendered in their shortest decimal form.
func CleanStr(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return cleanString(v)
	case Value:
		return v.clean()
	case gjson.Result:
		return Value{res: v}.clean()
	case json.Number:
		return cleanString(v.String())
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return formatNumber(v)
	default:
		return ""
	}
}

// SafeArray returns value as an ordered sequence, or an empty sequence when it is not one.
func SafeArray(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	case Value:
		return v.Items()
	case gjson.Result:
		return Value{res: v}.Items()
	case string, []byte:
		return []any{}
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func cleanString(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.EqualFold(trimmed, notApplicable) {
		return ""
	}
	return trimmed
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CleanStrValue is CleanStr specialised to Value, for use as a mapping function
func CleanStrValue(v Value) string {
	return v.clean()
}
