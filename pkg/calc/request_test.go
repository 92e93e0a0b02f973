package calc

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/starrupture/srfactory/pkg/errors"
)

func TestReadRequest(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "json",
			doc: `{
  "request": {"item": "iron plate", "items_per_minute": 26},
  "inputs": [
    {"for_item": ["iron plate"], "provided_item": "iron ingot", "provided_ipm": 20}
  ]
}`,
		},
		{
			name: "yaml",
			doc: `request:
  item: iron plate
  items_per_minute: 26
inputs:
  - for_item: [iron plate]
    provided_item: iron ingot
    provided_ipm: 20
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ReadRequest(strings.NewReader(tt.doc))
			if err != nil {
				t.Fatalf("ReadRequest: %v", err)
			}
			if req.Item != "iron plate" || req.IPM != 26 {
				t.Errorf("request = %+v", req)
			}
			if len(req.Supplies) != 1 {
				t.Fatalf("supplies = %+v", req.Supplies)
			}
			s := req.Supplies[0]
			if !slices.Equal(s.ForItem, []string{"iron plate"}) || s.Item != "iron ingot" || s.IPM != 20 {
				t.Errorf("supply = %+v", s)
			}
		})
	}
}

func TestReadRequestInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty"},
		{"unknown json key", `{"request": {"item": "iron plate", "rate": 5}}`, "parse request"},
		{"unknown yaml key", "request:\n  item: iron plate\n  rate: 5\n", "parse request"},
		{"bad json", `{"request": `, "parse request"},
		{"no item", `{"request": {"items_per_minute": 5}}`, "no item"},
		{"negative rate", `{"request": {"item": "x", "items_per_minute": -1}}`, "negative"},
		{"empty chain", `{"request": {"item": "x"}, "inputs": [{"for_item": [], "provided_item": "y", "provided_ipm": 1}]}`, "no for_item"},
		{"chain not rooted", `{"request": {"item": "x"}, "inputs": [{"for_item": ["z"], "provided_item": "y", "provided_ipm": 1}]}`, "must start with"},
		{"no provided item", `{"request": {"item": "x"}, "inputs": [{"for_item": ["x"], "provided_ipm": 1}]}`, "no provided_item"},
		{"zero supply", `{"request": {"item": "x"}, "inputs": [{"for_item": ["x"], "provided_item": "y"}]}`, "at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRequest(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidRequest) {
				t.Errorf("code = %s, want INVALID_REQUEST", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteRequest(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRequest(&buf, "iron plate", 26, false); err != nil {
		t.Fatalf("WriteRequest: %v", err)
	}
	want := `{
  "request": {
    "item": "iron plate",
    "items_per_minute": 26
  }
}
`
	if buf.String() != want {
		t.Errorf("template =\n%s\nwant\n%s", buf.String(), want)
	}

	req, err := ReadRequest(&buf)
	if err != nil {
		t.Fatalf("ReadRequest of template: %v", err)
	}
	if req.Item != "iron plate" || req.IPM != 26 || len(req.Supplies) != 0 {
		t.Errorf("request = %+v", req)
	}
}

func TestWriteRequestWithInputs(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRequest(&buf, "iron plate", 13, true); err != nil {
		t.Fatalf("WriteRequest: %v", err)
	}
	for _, key := range []string{`"inputs"`, `"for_item": [`, `"iron plate"`, `"provided_item": ""`, `"provided_ipm": 0`} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("template missing %s:\n%s", key, buf.String())
		}
	}
}
