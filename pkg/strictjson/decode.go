// Package strictjson decodes JSON documents into ordered objects while
// rejecting objects that repeat a key.
//
// encoding/json silently keeps the last value when an object repeats a key.
// For hand-written layout files that is almost always a copy and paste
// mistake, so [Decode] fails instead and names every repeated key.
//
// Decoded values are one of:
//   - *Object for JSON objects (key order preserved)
//   - []any for JSON arrays
//   - string, bool, nil
//   - json.Number for numbers, so integers stay distinguishable from floats
//
// Duplicates are only checked within a single object. The same key may
// appear at different nesting levels: {"a":1, "b":{"a":2}} is accepted.
package strictjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/jsonpath"
)

// Decode reads exactly one JSON document from r.
//
// Returns an error with code INVALID_JSON for input that is not UTF-8,
// syntax errors, an empty input or data following the document, and
// DUPLICATE_KEY when any object repeats a key. Errors carry the path of the
// object being decoded.
func Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read JSON document")
	}
	// encoding/json replaces invalid bytes with U+FFFD, which would alter ids.
	if off := invalidUTF8(data); off >= 0 {
		return nil, errors.New(errors.ErrCodeInvalidJSON, "invalid UTF-8 at offset %d", off)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, nil)
	if err != nil {
		return nil, err
	}

	tok, err := dec.Token()
	if err == io.EOF {
		return v, nil
	}
	if err != nil {
		return nil, invalid(err, nil)
	}
	return nil, errors.New(errors.ErrCodeInvalidJSON,
		"unexpected %v after the end of the JSON document", tok)
}

func decodeValue(dec *json.Decoder, path *jsonpath.Path) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, invalid(err, path)
	}

	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return decodeObject(dec, path)
		case '[':
			return decodeArray(dec, path)
		default:
			return nil, errors.At(errors.ErrCodeInvalidJSON, path, "unexpected %q", delim.String())
		}
	}
	return tok, nil
}

func decodeObject(dec *json.Decoder, path *jsonpath.Path) (*Object, error) {
	var pairs []pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalid(err, path)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.At(errors.ErrCodeInvalidJSON, path, "object key %v is not a string", tok)
		}
		v, err := decodeValue(dec, path.Descend(key))
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{key: key, value: v})
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, invalid(err, path)
	}
	return newObject(pairs, path)
}

func decodeArray(dec *json.Decoder, path *jsonpath.Path) ([]any, error) {
	values := []any{}
	for i := 0; dec.More(); i++ {
		v, err := decodeValue(dec, path.Descend(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, invalid(err, path)
	}
	return values, nil
}

// invalidUTF8 returns the offset of the first byte that is not valid UTF-8,
// or -1.
func invalidUTF8(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func invalid(err error, path *jsonpath.Path) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	var msg string
	if se, ok := err.(*json.SyntaxError); ok {
		msg = fmt.Sprintf("invalid JSON at offset %d", se.Offset)
	} else {
		msg = "invalid JSON"
	}
	return &errors.Error{
		Code:    errors.ErrCodeInvalidJSON,
		Message: msg,
		Path:    path,
		Cause:   err,
	}
}
