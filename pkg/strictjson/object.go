package strictjson

import (
	"encoding/json"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/jsonpath"
)

type pair struct {
	key   string
	value any
}

// Object is a decoded JSON object. Keys are unique and keep document order.
type Object struct {
	keys   []string
	values map[string]any
}

// newObject materialises one JSON object from its key/value pairs, failing
// if any key occurs more than once.
func newObject(pairs []pair, path *jsonpath.Path) (*Object, error) {
	counts := make(map[string]int, len(pairs))
	var dups []string
	for _, p := range pairs {
		counts[p.key]++
		if counts[p.key] == 2 {
			dups = append(dups, p.key)
		}
	}
	if len(dups) > 0 {
		return nil, errors.At(errors.ErrCodeDuplicateKey, path,
			"Duplicate keys are not allowed in a JSON message. Duplicates: %s", quoteAll(dups))
	}

	o := &Object{
		keys:   make([]string, 0, len(pairs)),
		values: make(map[string]any, len(pairs)),
	}
	for _, p := range pairs {
		o.keys = append(o.keys, p.key)
		o.values[p.key] = p.value
	}
	return o, nil
}

// NewObject builds an Object from alternating keys and values. It is meant
// for tests and panics on an odd argument count or a non-string key.
func NewObject(kv ...any) *Object {
	if len(kv)%2 != 0 {
		panic("strictjson: NewObject needs key/value pairs")
	}
	pairs := make([]pair, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		pairs = append(pairs, pair{key: kv[i].(string), value: kv[i+1]})
	}
	o, err := newObject(pairs, nil)
	if err != nil {
		panic(err)
	}
	return o
}

// Get returns the value for key. A JSON null is reported as (nil, true).
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Lookup returns the value for key, treating a JSON null the same as a
// missing key.
func (o *Object) Lookup(key string) (any, bool) {
	v, ok := o.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// All iterates over key/value pairs in document order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// Int reports v as an int when it is a JSON integer that fits in an int.
// Floats (including 60.0), strings and booleans are rejected; use
// [IsInteger] to tell an out of range integer from a non-integer.
func Int(v any) (int, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(n.String(), 10, 0)
	if err != nil {
		return 0, false
	}
	return int(i), true
}

// IsInteger reports whether v is written as a JSON integer, whatever its
// magnitude.
func IsInteger(v any) bool {
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	s := strings.TrimPrefix(n.String(), "-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// TypeName names the JSON type of a decoded value for error messages.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func quoteAll(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = strconv.Quote(k)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
