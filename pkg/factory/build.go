package factory

import (
	"slices"
	"strconv"
	"strings"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/jsonpath"
	"github.com/starrupture/srfactory/pkg/strictjson"
)

const rootKey = "sites"

// Build constructs a Network from a decoded document of the shape
//
//	{"sites": {site_id: {"teleporter": ..., "factories": {...}}}}
//
// and indexes its outputs. Build checks structure only; cross references
// and item compatibility are checked by [Validate].
//
// The first violation aborts the build. No partially built network is
// returned.
func Build(doc any) (*Network, error) {
	root, ok := doc.(*strictjson.Object)
	if !ok {
		return nil, malformed(nil, "The JSON document must be an object, found %s.", strictjson.TypeName(doc))
	}

	path := jsonpath.Root(rootKey)
	v, ok := root.Lookup(rootKey)
	if !ok {
		return nil, malformed(path, "JSON missing root level '%s' entry.", rootKey)
	}
	sites, err := asObject(v, path, "'sites' entry")
	if err != nil {
		return nil, err
	}

	n := &Network{}
	err = eachEntry(sites, path, "site", func(id string, p *jsonpath.Path, obj *strictjson.Object) error {
		site, err := newSite(p, id, obj)
		if err != nil {
			return err
		}
		return n.AddSite(site)
	})
	if err != nil {
		return nil, err
	}

	n.Outputs, err = IndexOutputs(n)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// eachEntry walks an object whose keys are ids and whose values are
// objects describing the identified entity.
func eachEntry(section *strictjson.Object, path *jsonpath.Path, kind string,
	fn func(id string, p *jsonpath.Path, obj *strictjson.Object) error) error {
	for id, v := range section.All() {
		if err := errors.ValidateID(kind, id, path); err != nil {
			return err
		}
		p := path.Descend(id)
		obj, err := asObject(v, p, kind)
		if err != nil {
			return err
		}
		if err := fn(id, p, obj); err != nil {
			return err
		}
	}
	return nil
}

func newSite(path *jsonpath.Path, id string, obj *strictjson.Object) (*Site, error) {
	const what = "site"

	v, ok := obj.Lookup("teleporter")
	if !ok {
		return nil, malformed(path, "A %s must define 'teleporter' with a string value (which may be empty).", what)
	}
	teleporter, ok := v.(string)
	if !ok {
		return nil, malformed(path.Descend("teleporter"),
			"A %s must define 'teleporter' with a string value (which may be empty).", what)
	}
	heatLimit, err := requiredInt(obj, "heat_limit", 1000, path, what)
	if err != nil {
		return nil, err
	}
	heatCurrent, err := requiredInt(obj, "heat_current", 1, path, what)
	if err != nil {
		return nil, err
	}

	site := &Site{
		ID:          id,
		Teleporter:  strings.TrimSpace(teleporter),
		HeatLimit:   heatLimit,
		HeatCurrent: heatCurrent,
		Path:        path,
	}

	factories, err := requiredObject(obj, "factories", path, what)
	if err != nil {
		return nil, err
	}
	err = eachEntry(factories, path.Descend("factories"), "factory",
		func(fid string, p *jsonpath.Path, fobj *strictjson.Object) error {
			f, err := newFactory(p, site, fid, fobj)
			if err != nil {
				return err
			}
			return site.AddFactory(f)
		})
	if err != nil {
		return nil, err
	}
	return site, nil
}

func newFactory(path *jsonpath.Path, site *Site, id string, obj *strictjson.Object) (*Factory, error) {
	const what = "factory"

	purpose, err := requiredString(obj, "purpose", path, what)
	if err != nil {
		return nil, err
	}
	f := &Factory{Site: site, ID: id, Purpose: purpose, Path: path}

	machines, err := requiredObject(obj, "machines", path, what)
	if err != nil {
		return nil, err
	}
	err = eachEntry(machines, path.Descend("machines"), "machine",
		func(mid string, p *jsonpath.Path, mobj *strictjson.Object) error {
			m, err := newMachine(p, f, mid, mobj)
			if err != nil {
				return err
			}
			return f.AddMachine(m)
		})
	if err != nil {
		return nil, err
	}

	// inputs, outputs and storage are optional sections.
	inputs, err := optionalObject(obj, "inputs", path, what)
	if err != nil {
		return nil, err
	}
	if inputs != nil {
		err = eachEntry(inputs, path.Descend("inputs"), "factory input",
			func(iid string, p *jsonpath.Path, iobj *strictjson.Object) error {
				in, err := newInput(p, f, iid, iobj)
				if err != nil {
					return err
				}
				return f.AddInput(in)
			})
		if err != nil {
			return nil, err
		}
	}

	outputs, err := optionalObject(obj, "outputs", path, what)
	if err != nil {
		return nil, err
	}
	if outputs != nil {
		err = eachEntry(outputs, path.Descend("outputs"), "factory output",
			func(oid string, p *jsonpath.Path, oobj *strictjson.Object) error {
				out, err := newOutput(p, f, oid, oobj)
				if err != nil {
					return err
				}
				return f.AddOutput(out)
			})
		if err != nil {
			return nil, err
		}
	}

	storage, err := optionalObject(obj, "storage", path, what)
	if err != nil {
		return nil, err
	}
	if storage != nil {
		err = eachEntry(storage, path.Descend("storage"), "factory storage",
			func(sid string, p *jsonpath.Path, sobj *strictjson.Object) error {
				s, err := newStorage(p, f, sid, sobj)
				if err != nil {
					return err
				}
				return f.AddStorage(s)
			})
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

func newMachine(path *jsonpath.Path, f *Factory, id string, obj *strictjson.Object) (*Machine, error) {
	const what = "factory machine"

	item, err := requiredString(obj, "item", path, what)
	if err != nil {
		return nil, err
	}
	variant, hasVariant := obj.Lookup("variant")
	_, hasInputs := obj.Lookup("inputs")

	switch {
	case hasVariant && hasInputs:
		return nil, malformed(path, "A %s may only define either 'variant' or 'inputs' but not both.", what)
	case !hasVariant && !hasInputs:
		return nil, malformed(path, "A %s must define one of 'variant' or 'inputs'.", what)
	}

	m := &Machine{Factory: f, ID: id, Item: item, Path: path}
	if hasVariant {
		s, ok := variant.(string)
		if !ok || errors.Blank(s) {
			return nil, malformed(path.Descend("variant"),
				"When 'variant' is specified for a %s, it must be a non-empty string.", what)
		}
		m.Variant = s
		return m, nil
	}

	list, err := requiredList(obj, "inputs", path, what)
	if err != nil {
		return nil, err
	}
	inputsPath := path.Descend("inputs")
	for i, v := range list {
		in, err := newMachineInput(inputsPath.Descend(strconv.Itoa(i)), v, "factory machine input", true)
		if err != nil {
			return nil, err
		}
		m.Inputs = append(m.Inputs, in)
	}
	return m, nil
}

// newMachineInput builds a supply line for a machine or, with
// allowFactoryInputs false, for a storage.
func newMachineInput(path *jsonpath.Path, v any, what string, allowFactoryInputs bool) (*MachineInput, error) {
	obj, err := asObject(v, path, what)
	if err != nil {
		return nil, err
	}

	_, hasMachine := obj.Lookup("from_machine_id")
	_, hasInput := obj.Lookup("from_factory_input_id")
	_, hasStorage := obj.Lookup("from_storage_id")

	if hasInput && !allowFactoryInputs {
		return nil, malformed(path.Descend("from_factory_input_id"),
			"A %s may not specify 'from_factory_input_id'; only 'from_machine_id' and 'from_storage_id' are allowed.", what)
	}
	if !hasMachine && !hasInput && !hasStorage {
		if allowFactoryInputs {
			return nil, malformed(path,
				"A %s must specify at least one of 'from_machine_id', 'from_factory_input_id', 'from_storage_id'.", what)
		}
		return nil, malformed(path, "A %s must specify at least one of 'from_machine_id', 'from_storage_id'.", what)
	}

	rate, err := requiredInt(obj, "rate_limit_ipm", 1, path, what)
	if err != nil {
		return nil, err
	}
	in := &MachineInput{RateLimitIPM: rate, Path: path}
	if in.FromMachineIDs, err = sourceList(obj, "from_machine_id", path, what); err != nil {
		return nil, err
	}
	if in.FromFactoryInputIDs, err = sourceList(obj, "from_factory_input_id", path, what); err != nil {
		return nil, err
	}
	if in.FromStorageIDs, err = sourceList(obj, "from_storage_id", path, what); err != nil {
		return nil, err
	}
	return in, nil
}

func newStorage(path *jsonpath.Path, f *Factory, id string, obj *strictjson.Object) (*Storage, error) {
	const what = "factory storage"

	list, err := requiredList(obj, "items", path, what)
	if err != nil {
		return nil, err
	}
	items, err := stringList(list, path.Descend("items"), "items", what)
	if err != nil {
		return nil, err
	}
	stacks, err := requiredInt(obj, "num_stacks", 1, path, what)
	if err != nil {
		return nil, err
	}
	inputs, err := requiredList(obj, "inputs", path, what)
	if err != nil {
		return nil, err
	}

	s := &Storage{Factory: f, ID: id, Items: items, NumStacks: stacks, Path: path}
	inputsPath := path.Descend("inputs")
	for i, v := range inputs {
		in, err := newMachineInput(inputsPath.Descend(strconv.Itoa(i)), v, "factory storage input", false)
		if err != nil {
			return nil, err
		}
		// Other storages may feed this one, but never itself.
		if slices.Contains(in.FromStorageIDs, id) {
			return nil, errors.At(errors.ErrCodeSelfReference, in.Path,
				"Factory storage '%s' may not define itself as an input.", id)
		}
		s.Inputs = append(s.Inputs, in)
	}
	return s, nil
}

func newInput(path *jsonpath.Path, f *Factory, id string, obj *strictjson.Object) (*Input, error) {
	const what = "factory input"

	in := &Input{Factory: f, ID: id, Path: path}
	for _, field := range []struct {
		key string
		dst *string
	}{
		{"site_id", &in.SiteID},
		{"factory_id", &in.FactoryID},
		{"factory_output_id", &in.OutputID},
	} {
		s, err := requiredString(obj, field.key, path, what)
		if err != nil {
			return nil, err
		}
		if err := errors.ValidateID(field.key, s, path.Descend(field.key)); err != nil {
			return nil, err
		}
		*field.dst = s
	}

	if in.SiteID == f.Site.ID && in.FactoryID == f.ID {
		return nil, errors.At(errors.ErrCodeSelfReference, path,
			"Factory input '%s' specifies a connection to an output within its own factory."+
				" Only links to other factories are allowed.", id)
	}
	return in, nil
}

func newOutput(path *jsonpath.Path, f *Factory, id string, obj *strictjson.Object) (*Output, error) {
	const what = "factory output"

	item, err := requiredString(obj, "dispatched_item", path, what)
	if err != nil {
		return nil, err
	}
	rate, err := requiredInt(obj, "rate_limit_ipm", 1, path, what)
	if err != nil {
		return nil, err
	}
	list, err := requiredList(obj, "sources", path, what)
	if err != nil {
		return nil, err
	}

	out := &Output{Factory: f, ID: id, DispatchedItem: item, RateLimitIPM: rate, Path: path}
	sourcesPath := path.Descend("sources")
	for i, v := range list {
		src, err := newOutputSource(sourcesPath.Descend(strconv.Itoa(i)), v)
		if err != nil {
			return nil, err
		}
		out.Sources = append(out.Sources, src)
	}
	return out, nil
}

func newOutputSource(path *jsonpath.Path, v any) (*OutputSource, error) {
	in, err := newMachineInput(path, v, "factory output source", false)
	if err != nil {
		return nil, err
	}
	return &OutputSource{
		FromMachineIDs: in.FromMachineIDs,
		FromStorageIDs: in.FromStorageIDs,
		RateLimitIPM:   in.RateLimitIPM,
		Path:           in.Path,
	}, nil
}
