package factory

import (
	"strings"
	"testing"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/strictjson"
)

// fakeCatalogue is an in-memory Catalogue.
type fakeCatalogue struct {
	items map[string][]string // item -> recipe inputs
	raw   map[string]bool     // "item;variant"
}

func newFakeCatalogue() *fakeCatalogue {
	return &fakeCatalogue{items: map[string][]string{}, raw: map[string]bool{}}
}

func (c *fakeCatalogue) item(name string, inputs ...string) *fakeCatalogue {
	c.items[name] = inputs
	return c
}

func (c *fakeCatalogue) rawItem(name, variant string) *fakeCatalogue {
	c.raw[name+";"+variant] = true
	return c
}

func (c *fakeCatalogue) HasItem(name string) bool {
	_, ok := c.items[name]
	return ok
}

func (c *fakeCatalogue) HasRawItem(name, variant string) bool {
	return c.raw[name+";"+variant]
}

func (c *fakeCatalogue) RecipeInputs(name string) []string { return c.items[name] }

// ironCatalogue knows iron ore, iron ingot and copper ore.
func ironCatalogue() *fakeCatalogue {
	return newFakeCatalogue().
		item("iron ingot", "iron ore").
		item("iron plate", "iron ingot").
		item("copper ingot", "copper ore").
		rawItem("iron ore", "normal").
		rawItem("iron ore", "pure").
		rawItem("copper ore", "normal")
}

func decode(t *testing.T, doc string) any {
	t.Helper()
	v, err := strictjson.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return v
}

func loadDoc(t *testing.T, cat Catalogue, doc string) (*Network, error) {
	t.Helper()
	return NewLoader(cat, nil).Read(strings.NewReader(doc))
}

func mustLoad(t *testing.T, cat Catalogue, doc string) *Network {
	t.Helper()
	n, err := loadDoc(t, cat, doc)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return n
}

// wantErr checks code, path and message fragments of a load failure.
func wantErr(t *testing.T, err error, code errors.Code, path string, fragments ...string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := errors.GetCode(err); got != code {
		t.Fatalf("code = %s, want %s (%v)", got, code, err)
	}
	if got := errors.PathString(err); got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	msg := errors.UserMessage(err)
	for _, f := range fragments {
		if !strings.Contains(msg, f) {
			t.Errorf("message %q does not contain %q", msg, f)
		}
	}
}

// site wraps factory JSON into a one-site document.
func site(factories string) string {
	return `{"sites": {"s1": {"teleporter": "", "heat_limit": 1000, "heat_current": 1, "factories": {` +
		factories + `}}}}`
}

const ironFactory = `"f1": {
	"purpose": "iron",
	"machines": {
		"m1": {"item": "iron ore", "variant": "normal"},
		"m2": {"item": "iron ingot", "inputs": [{"from_machine_id": ["m1"], "rate_limit_ipm": 60}]}
	}
}`
