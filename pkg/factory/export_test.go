package factory

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const exportDoc = `{"sites": {"s1": {"teleporter": "tp", "heat_limit": 1000, "heat_current": 3, "factories": {
	"f1": {
		"purpose": "ingots",
		"machines": {
			"m1": {"item": "iron ore", "variant": "normal"},
			"m2": {"item": "iron ingot", "inputs": [{"from_machine_id": ["m1"], "rate_limit_ipm": 60}]}
		},
		"outputs": {"o1": {"dispatched_item": "iron ingot", "rate_limit_ipm": 30, "sources": [{"from_storage_id": ["st1"], "rate_limit_ipm": 30}]}},
		"storage": {"st1": {"items": ["iron ingot"], "num_stacks": 2, "inputs": [{"from_machine_id": ["m2"], "rate_limit_ipm": 60}]}}
	},
	"f2": {
		"purpose": "plates",
		"machines": {"m1": {"item": "iron plate", "inputs": [{"from_factory_input_id": ["i1"], "rate_limit_ipm": 30}]}},
		"inputs": {"i1": {"site_id": "s1", "factory_id": "f1", "factory_output_id": "o1"}}
	}
}}}}`

func TestWriteJSONRoundTrip(t *testing.T) {
	n := mustLoad(t, ironCatalogue(), exportDoc)

	var first bytes.Buffer
	if err := WriteJSON(n, &first); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	again := mustLoad(t, ironCatalogue(), first.String())
	var second bytes.Buffer
	if err := WriteJSON(again, &second); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip changed output:\n%s\n---\n%s", first.String(), second.String())
	}

	out := first.String()
	if strings.Index(out, `"m1"`) > strings.Index(out, `"m2"`) {
		t.Error("machine order not preserved")
	}
	if !strings.Contains(out, `"from_factory_input_id": [`) {
		t.Errorf("factory input source missing:\n%s", out)
	}
	if strings.Contains(out, `"variant": ""`) {
		t.Error("crafter written with a variant")
	}
}

func TestWriteYAML(t *testing.T) {
	n := mustLoad(t, ironCatalogue(), exportDoc)

	var buf bytes.Buffer
	if err := WriteYAML(n, &buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode || doc.Content[0].Value != "sites" {
		t.Fatalf("unexpected root:\n%s", buf.String())
	}

	var decoded struct {
		Sites map[string]struct {
			Teleporter  string `yaml:"teleporter"`
			HeatCurrent int    `yaml:"heat_current"`
			Factories   map[string]struct {
				Purpose string `yaml:"purpose"`
			} `yaml:"factories"`
		} `yaml:"sites"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	s1 := decoded.Sites["s1"]
	if s1.Teleporter != "tp" || s1.HeatCurrent != 3 {
		t.Errorf("s1 = %+v", s1)
	}
	if s1.Factories["f2"].Purpose != "plates" {
		t.Errorf("f2 purpose = %q", s1.Factories["f2"].Purpose)
	}

	out := buf.String()
	if strings.Index(out, "f1:") > strings.Index(out, "f2:") {
		t.Error("factory order not preserved")
	}
}
