package factory

import (
	"github.com/starrupture/srfactory/pkg/errors"
	"github.com/starrupture/srfactory/pkg/jsonpath"
)

// Network is a fully loaded factory layout: every site and the index of
// factory outputs used to resolve cross-factory links.
type Network struct {
	Sites   []*Site
	Outputs *OutputIndex

	siteIDs map[string]bool
}

// Site is a group of factories near one teleporter.
type Site struct {
	ID string
	// Teleporter is empty when the site has none.
	Teleporter  string
	HeatLimit   int
	HeatCurrent int
	Factories   []*Factory
	Path        *jsonpath.Path

	factoryIDs map[string]bool
}

// Factory is a set of connected machines. Machine, storage, input and output
// ids are unique within one factory.
type Factory struct {
	Site     *Site
	ID       string
	Purpose  string
	Machines []*Machine
	Storage  []*Storage
	Inputs   []*Input
	Outputs  []*Output
	Path     *jsonpath.Path

	machines map[string]*Machine
	storage  map[string]*Storage
	inputs   map[string]*Input
	outputs  map[string]*Output
}

// Machine produces one item. It is either a raw extractor (Variant set) or
// a crafter (Inputs set), never both.
type Machine struct {
	Factory *Factory
	ID      string
	Item    string
	// Variant is the purity of the resource node for raw extractors.
	Variant string
	// Inputs lists the item suppliers of a crafter.
	Inputs []*MachineInput
	Path   *jsonpath.Path
}

// IsExtractor reports whether the machine extracts a raw item.
func (m *Machine) IsExtractor() bool { return m.Variant != "" }

// MachineInput is one supply line into a machine or storage. At least one of
// the id lists is set; each set list is non-empty.
type MachineInput struct {
	FromMachineIDs      []string
	FromFactoryInputIDs []string
	FromStorageIDs      []string
	RateLimitIPM        int
	Path                *jsonpath.Path
}

// Storage buffers items. It never sources from factory inputs and never
// lists itself in FromStorageIDs.
type Storage struct {
	Factory   *Factory
	ID        string
	Items     []string
	NumStacks int
	Inputs    []*MachineInput
	Path      *jsonpath.Path
}

// Input receives items from an output of another factory.
type Input struct {
	Factory   *Factory
	ID        string
	SiteID    string
	FactoryID string
	OutputID  string
	Path      *jsonpath.Path
}

// OutputKey returns the index key of the output this input draws from.
func (in *Input) OutputKey() string {
	return OutputKey(in.SiteID, in.FactoryID, in.OutputID)
}

// Output dispatches one item to other factories.
type Output struct {
	Factory        *Factory
	ID             string
	DispatchedItem string
	RateLimitIPM   int
	Sources        []*OutputSource
	Path           *jsonpath.Path
}

// OutputSource is one supply line into an output.
type OutputSource struct {
	FromMachineIDs []string
	FromStorageIDs []string
	RateLimitIPM   int
	Path           *jsonpath.Path
}

// AddSite appends a site, rejecting a repeated site id.
func (n *Network) AddSite(s *Site) error {
	if n.siteIDs == nil {
		n.siteIDs = make(map[string]bool)
	}
	if n.siteIDs[s.ID] {
		return errors.At(errors.ErrCodeDuplicateKey, s.Path, "Site ID '%s' is duplicate.", s.ID)
	}
	n.siteIDs[s.ID] = true
	n.Sites = append(n.Sites, s)
	return nil
}

// Site returns the site with the given id.
func (n *Network) Site(id string) (*Site, bool) {
	for _, s := range n.Sites {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// AddFactory appends a factory, rejecting a repeated factory id.
func (s *Site) AddFactory(f *Factory) error {
	if s.factoryIDs == nil {
		s.factoryIDs = make(map[string]bool)
	}
	if s.factoryIDs[f.ID] {
		return errors.At(errors.ErrCodeDuplicateKey, f.Path,
			"Factory ID '%s' is duplicate within site '%s'.", f.ID, s.ID)
	}
	s.factoryIDs[f.ID] = true
	s.Factories = append(s.Factories, f)
	return nil
}

// Factory returns the factory with the given id.
func (s *Site) Factory(id string) (*Factory, bool) {
	for _, f := range s.Factories {
		if f.ID == id {
			return f, true
		}
	}
	return nil, false
}

func (f *Factory) duplicate(kind, id string, path *jsonpath.Path) error {
	return errors.At(errors.ErrCodeDuplicateKey, path,
		"%s ID '%s' is duplicate within factory '%s'.", kind, id, f.ID)
}

// AddMachine appends a machine, rejecting a repeated machine id.
func (f *Factory) AddMachine(m *Machine) error {
	if f.machines == nil {
		f.machines = make(map[string]*Machine)
	}
	if _, ok := f.machines[m.ID]; ok {
		return f.duplicate("Machine", m.ID, m.Path)
	}
	f.machines[m.ID] = m
	f.Machines = append(f.Machines, m)
	return nil
}

// AddStorage appends a storage, rejecting a repeated storage id.
func (f *Factory) AddStorage(s *Storage) error {
	if f.storage == nil {
		f.storage = make(map[string]*Storage)
	}
	if _, ok := f.storage[s.ID]; ok {
		return f.duplicate("Storage", s.ID, s.Path)
	}
	f.storage[s.ID] = s
	f.Storage = append(f.Storage, s)
	return nil
}

// AddInput appends a factory input, rejecting a repeated input id.
func (f *Factory) AddInput(in *Input) error {
	if f.inputs == nil {
		f.inputs = make(map[string]*Input)
	}
	if _, ok := f.inputs[in.ID]; ok {
		return f.duplicate("Factory input", in.ID, in.Path)
	}
	f.inputs[in.ID] = in
	f.Inputs = append(f.Inputs, in)
	return nil
}

// AddOutput appends a factory output, rejecting a repeated output id.
func (f *Factory) AddOutput(out *Output) error {
	if f.outputs == nil {
		f.outputs = make(map[string]*Output)
	}
	if _, ok := f.outputs[out.ID]; ok {
		return f.duplicate("Factory output", out.ID, out.Path)
	}
	f.outputs[out.ID] = out
	f.Outputs = append(f.Outputs, out)
	return nil
}

// Machine returns the machine with the given id.
func (f *Factory) Machine(id string) (*Machine, bool) {
	m, ok := f.machines[id]
	return m, ok
}

// StorageByID returns the storage with the given id.
func (f *Factory) StorageByID(id string) (*Storage, bool) {
	s, ok := f.storage[id]
	return s, ok
}

// Input returns the factory input with the given id.
func (f *Factory) Input(id string) (*Input, bool) {
	in, ok := f.inputs[id]
	return in, ok
}

// Output returns the factory output with the given id.
func (f *Factory) Output(id string) (*Output, bool) {
	out, ok := f.outputs[id]
	return out, ok
}
