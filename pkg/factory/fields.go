package factory

import (
	"strconv"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/jsonpath"
	"github.com/starrupture/srfactory/pkg/strictjson"
)

// Field accessors shared by the node constructors. Missing keys are reported
// at the owning object's path, present but invalid values at the key's path.

func malformed(path *jsonpath.Path, format string, args ...any) error {
	return errors.At(errors.ErrCodeMalformed, path, format, args...)
}

func asObject(v any, path *jsonpath.Path, what string) (*strictjson.Object, error) {
	obj, ok := v.(*strictjson.Object)
	if !ok {
		return nil, malformed(path, "A %s must be a JSON object, found %s.", what, strictjson.TypeName(v))
	}
	return obj, nil
}

// requiredString returns a populated string value.
func requiredString(obj *strictjson.Object, key string, path *jsonpath.Path, what string) (string, error) {
	v, ok := obj.Lookup(key)
	if !ok {
		return "", malformed(path, "A %s must define '%s' with a non-empty string value.", what, key)
	}
	s, ok := v.(string)
	if !ok || errors.Blank(s) {
		return "", malformed(path.Descend(key), "A %s must define '%s' with a non-empty string value.", what, key)
	}
	return s, nil
}

// requiredInt returns an integer value of at least min.
func requiredInt(obj *strictjson.Object, key string, min int, path *jsonpath.Path, what string) (int, error) {
	v, ok := obj.Lookup(key)
	if !ok {
		return 0, malformed(path, "A %s must define '%s' with an integer value of at least %d.", what, key, min)
	}
	n, ok := strictjson.Int(v)
	if !ok && strictjson.IsInteger(v) {
		return 0, malformed(path.Descend(key), "The %s value '%s' of %s is out of range.", key, v, what)
	}
	if !ok || n < min {
		return 0, malformed(path.Descend(key), "A %s must define '%s' with an integer value of at least %d.", what, key, min)
	}
	return n, nil
}

// requiredObject returns a JSON object value.
func requiredObject(obj *strictjson.Object, key string, path *jsonpath.Path, what string) (*strictjson.Object, error) {
	v, ok := obj.Lookup(key)
	if !ok {
		return nil, malformed(path, "A %s must define '%s' as a JSON object.", what, key)
	}
	o, ok := v.(*strictjson.Object)
	if !ok {
		return nil, malformed(path.Descend(key), "A %s must define '%s' as a JSON object, found %s.",
			what, key, strictjson.TypeName(v))
	}
	return o, nil
}

// optionalObject returns nil for a missing section and an error for a
// present section that is not an object.
func optionalObject(obj *strictjson.Object, key string, path *jsonpath.Path, what string) (*strictjson.Object, error) {
	v, ok := obj.Lookup(key)
	if !ok {
		return nil, nil
	}
	o, ok := v.(*strictjson.Object)
	if !ok {
		return nil, malformed(path.Descend(key), "When a %s defines '%s', it must be a JSON object, found %s.",
			what, key, strictjson.TypeName(v))
	}
	return o, nil
}

// requiredList returns a non-empty array value.
func requiredList(obj *strictjson.Object, key string, path *jsonpath.Path, what string) ([]any, error) {
	v, ok := obj.Lookup(key)
	if !ok {
		return nil, malformed(path, "A %s must define '%s' as a non-empty list.", what, key)
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, malformed(path.Descend(key), "A %s must define '%s' as a non-empty list.", what, key)
	}
	return list, nil
}

// stringList converts a list whose elements must all be populated strings.
func stringList(list []any, path *jsonpath.Path, key, what string) ([]string, error) {
	out := make([]string, 0, len(list))
	for i, v := range list {
		s, ok := v.(string)
		if !ok || errors.Blank(s) {
			return nil, malformed(path.Descend(strconv.Itoa(i)),
				"A %s must define '%s' as a list of non-empty strings.", what, key)
		}
		out = append(out, s)
	}
	return out, nil
}

// sourceList reads an optional list of source ids. A missing key means the
// source kind is unused; a present key must hold a non-empty list of
// populated strings. An empty list is an error, not "no sources".
func sourceList(obj *strictjson.Object, key string, path *jsonpath.Path, what string) ([]string, error) {
	v, ok := obj.Lookup(key)
	if !ok {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, malformed(path.Descend(key),
			"When '%s' is specified by a %s, it must be a non-empty list of strings.", key, what)
	}
	ids := make([]string, 0, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok || errors.Blank(s) {
			return nil, malformed(path.Descend(key).Descend(strconv.Itoa(i)),
				"When '%s' is specified by a %s, it must be a non-empty list of strings.", key, what)
		}
		ids = append(ids, s)
	}
	return ids, nil
}
