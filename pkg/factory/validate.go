package factory

import (
	"slices"

	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/jsonpath"
)

// Catalogue is the read-only item lookup a network is validated against.
// It must not change while a load is in progress.
type Catalogue interface {
	// HasItem reports whether name is a craftable item.
	HasItem(name string) bool
	// HasRawItem reports whether name can be extracted from a node of variant.
	HasRawItem(name, variant string) bool
	// RecipeInputs returns the item names needed to craft name.
	RecipeInputs(name string) []string
}

// Pass identifies one stage of [Validate].
type Pass int

const (
	PassItems Pass = iota + 1
	PassConnections
	PassFlow
)

func (p Pass) String() string {
	switch p {
	case PassItems:
		return "item existence"
	case PassConnections:
		return "connectivity"
	case PassFlow:
		return "flow compatibility"
	default:
		return "unknown"
	}
}

// Passes lists the validation passes in the order they run.
var Passes = []Pass{PassItems, PassConnections, PassFlow}

// Validate runs every pass in order and returns the first failure. Each
// pass relies on the ones before it, so later passes never see a network
// an earlier pass rejected.
func Validate(n *Network, cat Catalogue) error {
	for _, p := range Passes {
		if err := RunPass(p, n, cat); err != nil {
			return err
		}
	}
	return nil
}

// RunPass runs a single validation pass. Callers running passes by hand
// must run them in [Passes] order.
func RunPass(p Pass, n *Network, cat Catalogue) error {
	switch p {
	case PassItems:
		return checkItemsExist(n, cat)
	case PassConnections:
		return checkConnections(n)
	case PassFlow:
		return checkFlow(n, cat)
	default:
		return errors.New(errors.ErrCodeInternal, "unknown validation pass %d", int(p))
	}
}

// checkItemsExist ensures every machine's item (and variant, for raw
// extractors) exists in the catalogue.
func checkItemsExist(n *Network, cat Catalogue) error {
	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, m := range f.Machines {
				if m.IsExtractor() {
					if !cat.HasRawItem(m.Item, m.Variant) {
						return errors.At(errors.ErrCodeUnknownItem, m.Path,
							"Machine '%s' specifies raw item '%s' with variant '%s' that does not exist in the data definitions.",
							m.ID, m.Item, m.Variant)
					}
					continue
				}
				if !cat.HasItem(m.Item) {
					return errors.At(errors.ErrCodeUnknownItem, m.Path,
						"Machine '%s' specifies item '%s' that does not exist in the data definitions.",
						m.ID, m.Item)
				}
			}
		}
	}
	return nil
}

// checkConnections ensures every source id names an entity of the same
// factory, and every factory input names an existing factory output.
func checkConnections(n *Network) error {
	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, m := range f.Machines {
				for _, in := range m.Inputs {
					if err := checkSources(f, in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs, in.Path); err != nil {
						return err
					}
				}
			}
			for _, s := range f.Storage {
				for _, in := range s.Inputs {
					if err := checkSources(f, in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs, in.Path); err != nil {
						return err
					}
				}
			}
			for _, out := range f.Outputs {
				for _, src := range out.Sources {
					if err := checkSources(f, src.FromMachineIDs, nil, src.FromStorageIDs, src.Path); err != nil {
						return err
					}
				}
			}
		}
	}

	if n.Outputs == nil {
		idx, err := IndexOutputs(n)
		if err != nil {
			return err
		}
		n.Outputs = idx
	}

	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, in := range f.Inputs {
				if _, ok := n.Outputs.Resolve(in); !ok {
					return errors.At(errors.ErrCodeDanglingReference, in.Path,
						"Factory '%s' factory input '%s' references a factory output '%s' that doesn't exist.",
						f.ID, in.ID, in.OutputKey())
				}
			}
		}
	}
	return nil
}

func checkSources(f *Factory, machineIDs, inputIDs, storageIDs []string, path *jsonpath.Path) error {
	for _, id := range machineIDs {
		if _, ok := f.Machine(id); !ok {
			return errors.At(errors.ErrCodeDanglingReference, path,
				"Connection specified by from_machine_id '%s' references a machine that doesn't exist within the same factory.", id)
		}
	}
	for _, id := range storageIDs {
		if _, ok := f.StorageByID(id); !ok {
			return errors.At(errors.ErrCodeDanglingReference, path,
				"Connection specified by from_storage_id '%s' references a storage that doesn't exist within the same factory.", id)
		}
	}
	for _, id := range inputIDs {
		if _, ok := f.Input(id); !ok {
			return errors.At(errors.ErrCodeDanglingReference, path,
				"Connection specified by from_factory_input_id '%s' references a factory input that doesn't exist within the same factory.", id)
		}
	}
	return nil
}

// checkFlow ensures every producer feeding a consumer supplies an item the
// consumer accepts. It assumes checkConnections has passed.
func checkFlow(n *Network, cat Catalogue) error {
	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, m := range f.Machines {
				if m.IsExtractor() {
					continue
				}
				c := consumer{
					factory:  f,
					outputs:  n.Outputs,
					required: cat.RecipeInputs(m.Item),
					desc:     "machine '" + m.ID + "'",
				}
				for _, in := range m.Inputs {
					if err := c.check(in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs, in.Path); err != nil {
						return err
					}
				}
			}
		}
	}

	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, out := range f.Outputs {
				c := consumer{
					factory:  f,
					outputs:  n.Outputs,
					required: []string{out.DispatchedItem},
					desc:     "factory output '" + out.ID + "'",
				}
				for _, src := range out.Sources {
					if err := c.check(src.FromMachineIDs, nil, src.FromStorageIDs, src.Path); err != nil {
						return err
					}
				}
			}
		}
	}

	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, s := range f.Storage {
				c := consumer{
					factory:  f,
					outputs:  n.Outputs,
					required: s.Items,
					desc:     "factory storage '" + s.ID + "'",
				}
				for _, in := range s.Inputs {
					if err := c.check(in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs, in.Path); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// consumer is a machine, storage or output with the set of items it accepts.
type consumer struct {
	factory  *Factory
	outputs  *OutputIndex
	required []string
	desc     string
}

func (c consumer) check(machineIDs, inputIDs, storageIDs []string, path *jsonpath.Path) error {
	for _, id := range machineIDs {
		m, ok := c.factory.Machine(id)
		if !ok {
			return unresolved("machine", id, path)
		}
		if !slices.Contains(c.required, m.Item) {
			return errors.At(errors.ErrCodeTypeMismatch, path,
				"The item produced by machine '%s' cannot be used by %s.\nExpecting one of %q but delivering '%s'.",
				id, c.desc, c.required, m.Item)
		}
	}

	for _, id := range storageIDs {
		s, ok := c.factory.StorageByID(id)
		if !ok {
			return unresolved("storage", id, path)
		}
		// A multi-item storage only needs to offer some accepted item.
		if !slices.ContainsFunc(s.Items, func(item string) bool { return slices.Contains(c.required, item) }) {
			return errors.At(errors.ErrCodeTypeMismatch, path,
				"The item supplied by storage '%s' cannot be used by %s.\nExpecting one of %q but delivering %q.",
				id, c.desc, c.required, s.Items)
		}
	}

	for _, id := range inputIDs {
		in, ok := c.factory.Input(id)
		if !ok {
			return unresolved("factory input", id, path)
		}
		out, ok := c.outputs.Resolve(in)
		if !ok {
			return unresolved("factory output", in.OutputKey(), path)
		}
		if !slices.Contains(c.required, out.DispatchedItem) {
			return errors.At(errors.ErrCodeTypeMismatch, path,
				"The item dispatched by output '%s' cannot be used by %s.\nExpecting one of %q but delivering '%s'.",
				in.OutputKey(), c.desc, c.required, out.DispatchedItem)
		}
	}
	return nil
}

// unresolved reports a reference the connectivity pass should have caught.
func unresolved(kind, id string, path *jsonpath.Path) error {
	return errors.At(errors.ErrCodeInternal, path,
		"%s '%s' is unresolved; connectivity must be validated before flow compatibility.", kind, id)
}
