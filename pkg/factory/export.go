package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes n in the layout document format accepted by
// [Loader.Read]. Ids and entries keep their document order, so a written
// network loads back identically.
func WriteJSON(n *Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(encodeNetwork(n)); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes n as YAML using the same structure as [WriteJSON].
func WriteYAML(n *Network, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encodeNetwork(n)); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	return enc.Close()
}

// fields is an object whose keys keep insertion order in both encodings.
type fields struct {
	keys []string
	vals []any
}

func (f *fields) set(key string, v any) *fields {
	f.keys = append(f.keys, key)
	f.vals = append(f.vals, v)
	return f
}

// MarshalJSON implements json.Marshaler.
func (f *fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(f.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (f *fields) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, k := range f.keys {
		var val yaml.Node
		if err := val.Encode(f.vals[i]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val)
	}
	return node, nil
}

func encodeNetwork(n *Network) *fields {
	sites := &fields{}
	for _, s := range n.Sites {
		factories := &fields{}
		for _, f := range s.Factories {
			factories.set(f.ID, encodeFactory(f))
		}
		sites.set(s.ID, (&fields{}).
			set("teleporter", s.Teleporter).
			set("heat_limit", s.HeatLimit).
			set("heat_current", s.HeatCurrent).
			set("factories", factories))
	}
	return (&fields{}).set(rootKey, sites)
}

func encodeFactory(f *Factory) *fields {
	out := (&fields{}).set("purpose", f.Purpose)

	machines := &fields{}
	for _, m := range f.Machines {
		mf := (&fields{}).set("item", m.Item)
		if m.IsExtractor() {
			mf.set("variant", m.Variant)
		} else {
			inputs := make([]any, 0, len(m.Inputs))
			for _, in := range m.Inputs {
				inputs = append(inputs, encodeSupply(in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs, in.RateLimitIPM))
			}
			mf.set("inputs", inputs)
		}
		machines.set(m.ID, mf)
	}
	out.set("machines", machines)

	if len(f.Inputs) > 0 {
		inputs := &fields{}
		for _, in := range f.Inputs {
			inputs.set(in.ID, (&fields{}).
				set("site_id", in.SiteID).
				set("factory_id", in.FactoryID).
				set("factory_output_id", in.OutputID))
		}
		out.set("inputs", inputs)
	}

	if len(f.Outputs) > 0 {
		outputs := &fields{}
		for _, o := range f.Outputs {
			sources := make([]any, 0, len(o.Sources))
			for _, src := range o.Sources {
				sources = append(sources, encodeSupply(src.FromMachineIDs, nil, src.FromStorageIDs, src.RateLimitIPM))
			}
			outputs.set(o.ID, (&fields{}).
				set("dispatched_item", o.DispatchedItem).
				set("rate_limit_ipm", o.RateLimitIPM).
				set("sources", sources))
		}
		out.set("outputs", outputs)
	}

	if len(f.Storage) > 0 {
		storage := &fields{}
		for _, s := range f.Storage {
			inputs := make([]any, 0, len(s.Inputs))
			for _, in := range s.Inputs {
				inputs = append(inputs, encodeSupply(in.FromMachineIDs, nil, in.FromStorageIDs, in.RateLimitIPM))
			}
			storage.set(s.ID, (&fields{}).
				set("items", s.Items).
				set("num_stacks", s.NumStacks).
				set("inputs", inputs))
		}
		out.set("storage", storage)
	}

	return out
}

func encodeSupply(machineIDs, inputIDs, storageIDs []string, rate int) *fields {
	f := &fields{}
	if machineIDs != nil {
		f.set("from_machine_id", machineIDs)
	}
	if inputIDs != nil {
		f.set("from_factory_input_id", inputIDs)
	}
	if storageIDs != nil {
		f.set("from_storage_id", storageIDs)
	}
	return f.set("rate_limit_ipm", rate)
}
