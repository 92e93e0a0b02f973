package calc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/starrupture/srfactory/pkg/errors"
)

// Request asks for a production rate of one item.
type Request struct {
	Item     string
	IPM      int
	Machines int
	Supplies []Supply
}

// Supply is an existing source of Item at a position in the recipe chain.
//
// ForItem names the chain from the requested item down to the consumer, so
// ["iron plate"] supplies the machines making the requested iron plate and
// ["iron plate", "iron ingot"] the ingot smelters below them.
type Supply struct {
	ForItem []string `json:"for_item" yaml:"for_item"`
	Item    string   `json:"provided_item" yaml:"provided_item"`
	IPM     int      `json:"provided_ipm" yaml:"provided_ipm"`
}

type requestFile struct {
	Request struct {
		Item           string `json:"item" yaml:"item"`
		ItemsPerMinute int    `json:"items_per_minute" yaml:"items_per_minute"`
	} `json:"request" yaml:"request"`
	Inputs []Supply `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// ReadRequest reads a request file. JSON and YAML are both accepted; a
// document starting with '{' is read as JSON. Unknown keys are rejected.
func ReadRequest(r io.Reader) (Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Request{}, errors.Wrap(errors.ErrCodeInternal, err, "read request")
	}

	var f requestFile
	if isJSON(data) {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	}
	if err != nil {
		if err == io.EOF {
			return Request{}, errors.New(errors.ErrCodeInvalidRequest, "request is empty")
		}
		return Request{}, errors.Wrap(errors.ErrCodeInvalidRequest, err, "parse request")
	}

	req := Request{Item: f.Request.Item, IPM: f.Request.ItemsPerMinute, Supplies: f.Inputs}
	if err := req.validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func (r Request) validate() error {
	if r.Item == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "request has no item")
	}
	if r.IPM < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "items_per_minute must not be negative, got %d", r.IPM)
	}
	for i, s := range r.Supplies {
		switch {
		case len(s.ForItem) == 0:
			return errors.New(errors.ErrCodeInvalidRequest, "input %d has no for_item chain", i)
		case s.ForItem[0] != r.Item:
			return errors.New(errors.ErrCodeInvalidRequest,
				"input %d: for_item must start with the requested item '%s', got '%s'", i, r.Item, s.ForItem[0])
		case s.Item == "":
			return errors.New(errors.ErrCodeInvalidRequest, "input %d has no provided_item", i)
		case s.IPM < 1:
			return errors.New(errors.ErrCodeInvalidRequest, "input %d: provided_ipm must be at least 1, got %d", i, s.IPM)
		}
	}
	return nil
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimLeftFunc(data, unicode.IsSpace)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// WriteRequest writes a JSON request template for item. With withInputs
// set, the template carries one example supply to fill in.
func WriteRequest(w io.Writer, item string, ipm int, withInputs bool) error {
	var f requestFile
	f.Request.Item = item
	f.Request.ItemsPerMinute = ipm
	if withInputs {
		f.Inputs = []Supply{{ForItem: []string{item}, Item: "", IPM: 0}}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return nil
}
