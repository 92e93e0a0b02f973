// Package calc works out the machines needed to produce an item at a
// requested rate.
//
// [Calculate] walks the recipe chain of the requested item through the
// catalogue. Every crafted item becomes a [Node] whose required rate is the
// parent's machine ratio times the recipe's per-machine input rate; raw
// items end the chain. Supplies already available at a point in the chain
// are subtracted before the walk descends, so a fully supplied branch is not
// expanded at all.
//
// The result is both a tree (how the machines connect) and a flat list of
// [Line] totals per item, each priced with the building cost from the
// catalogue.
package calc

import (
	"math"
	"sort"
	"strings"

	"github.com/starrupture/srfactory/pkg/catalogue"
	"github.com/starrupture/srfactory/pkg/errors"
)

// MaxDepth bounds the recipe walk. A deeper chain means the catalogue's
// recipes form a cycle.
const MaxDepth = 100

// RawVariant is the resource node purity assumed for raw inputs.
const RawVariant = "normal"

// chainSeparator joins the item names of a position in the recipe chain.
const chainSeparator = ";"

// Node is one group of identical machines in the production tree, or an
// existing supply standing in for machines.
type Node struct {
	Building      string
	Item          string
	PerMachineIPM int
	RequiredIPM   float64
	// Supplied marks an existing supply of PerMachineIPM items per minute.
	// It has no building, cost or inputs.
	Supplied bool
	Cost     catalogue.BuildCost
	Inputs   []*Node
}

// Ratio returns the fractional number of machines the required rate needs.
func (n *Node) Ratio() float64 {
	return ratio(n.RequiredIPM, n.PerMachineIPM)
}

// Machines returns the number of machines to build: the ratio rounded up,
// at least one. Supplies need none.
func (n *Node) Machines() int {
	if n.Supplied {
		return 0
	}
	return machinesFor(n.Ratio())
}

// ProvidedIPM returns the rate the built machines deliver.
func (n *Node) ProvidedIPM() int {
	if n.Supplied {
		return n.PerMachineIPM
	}
	return n.Machines() * n.PerMachineIPM
}

// Line totals one item across the whole tree.
type Line struct {
	Item          string
	Building      string
	PerMachineIPM int
	RequiredIPM   float64
	Cost          catalogue.BuildCost
}

// Ratio returns the fractional number of machines for the item.
func (l Line) Ratio() float64 { return ratio(l.RequiredIPM, l.PerMachineIPM) }

// Machines returns the ratio rounded up, at least one.
func (l Line) Machines() int { return machinesFor(l.Ratio()) }

func ratio(required float64, perMachine int) float64 {
	if perMachine <= 0 {
		return 0
	}
	return required / float64(perMachine)
}

func machinesFor(r float64) int {
	return max(1, int(math.Ceil(r)))
}

// Plan is the result of [Calculate].
type Plan struct {
	Item string
	IPM  int
	Root *Node
	// Lines holds one total per item, sorted by name ignoring case.
	Lines []Line
}

// Heat returns the heat cost of every machine in Lines.
func (p *Plan) Heat() int {
	var heat int
	for _, l := range p.Lines {
		heat += l.Cost.Heat
	}
	return heat
}

// Calculate builds the production plan for req.
//
// The requested rate is, in order of precedence: Machines times the output
// of one machine, IPM, or the output of one machine when IPM is below 1.
func Calculate(cat *catalogue.Catalogue, req Request) (*Plan, error) {
	it, ok := cat.Item(req.Item)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownItem,
			"Item '%s' does not exist in the data definitions.", req.Item)
	}

	ipm := req.IPM
	switch {
	case req.Machines > 0:
		ipm = it.ItemsPerMinute * req.Machines
	case ipm < 1:
		ipm = it.ItemsPerMinute
	}
	ipm = max(ipm, 1)

	w := &walker{
		cat:      cat,
		supplies: supplyIndex(req.Supplies),
		lines:    make(map[string]*Line),
	}
	w.require(req.Item, float64(ipm))
	root, err := w.item(req.Item, float64(ipm), req.Item, 1)
	if err != nil {
		return nil, err
	}
	if err := w.price(root); err != nil {
		return nil, err
	}

	plan := &Plan{Item: req.Item, IPM: ipm, Root: root}
	for _, l := range w.lines {
		b, ok := cat.Building(l.Building)
		if !ok {
			return nil, unknownBuilding(l.Building)
		}
		l.Cost = b.CostOf(l.Machines())
		plan.Lines = append(plan.Lines, *l)
	}
	sort.Slice(plan.Lines, func(i, j int) bool {
		a, b := strings.ToLower(plan.Lines[i].Item), strings.ToLower(plan.Lines[j].Item)
		if a != b {
			return a < b
		}
		return plan.Lines[i].Item < plan.Lines[j].Item
	})
	return plan, nil
}

// supplyIndex keys supplies by chain position, then by supplied item.
func supplyIndex(supplies []Supply) map[string]map[string]int {
	idx := make(map[string]map[string]int)
	for _, s := range supplies {
		key := strings.Join(s.ForItem, chainSeparator)
		if idx[key] == nil {
			idx[key] = make(map[string]int)
		}
		idx[key][s.Item] = s.IPM
	}
	return idx
}

type walker struct {
	cat      *catalogue.Catalogue
	supplies map[string]map[string]int
	lines    map[string]*Line
}

func (w *walker) line(item string) *Line {
	l, ok := w.lines[item]
	if !ok {
		l = &Line{Item: item}
		w.lines[item] = l
	}
	return l
}

func (w *walker) produce(item, building string, perMachine int) {
	l := w.line(item)
	if l.Building == "" {
		l.Building = building
	}
	l.PerMachineIPM = perMachine
}

func (w *walker) require(item string, ipm float64) {
	w.line(item).RequiredIPM += ipm
}

// item expands the crafted item name at the chain position chain.
func (w *walker) item(name string, required float64, chain string, depth int) (*Node, error) {
	if depth > MaxDepth {
		return nil, errors.New(errors.ErrCodeInvalidCatalogue,
			"The recipe chain below '%s' is deeper than %d items; the recipes form a cycle.", chain, MaxDepth)
	}
	it, ok := w.cat.Item(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownItem,
			"Item '%s' does not exist in the data definitions.", name)
	}
	recipe := w.cat.Recipe(name)
	if len(recipe) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalogue,
			"Item '%s' has no recipe inputs in the data definitions.", name)
	}

	w.produce(name, it.Building, it.ItemsPerMinute)
	n := &Node{Building: it.Building, Item: name, PerMachineIPM: it.ItemsPerMinute, RequiredIPM: required}

	for _, ri := range recipe {
		need := float64(ri.RequiredPerMinute) * n.Ratio()
		if have := w.supplies[chain][ri.InputName]; have > 0 {
			n.Inputs = append(n.Inputs, &Node{Item: ri.InputName, PerMachineIPM: have, Supplied: true})
			need -= float64(have)
			if need <= 0 {
				continue
			}
		}
		w.require(ri.InputName, need)

		var (
			child *Node
			err   error
		)
		if w.cat.IsRaw(ri.InputName) {
			child, err = w.raw(ri.InputName, need)
		} else {
			child, err = w.item(ri.InputName, need, chain+chainSeparator+ri.InputName, depth+1)
		}
		if err != nil {
			return nil, err
		}
		n.Inputs = append(n.Inputs, child)
	}
	return n, nil
}

func (w *walker) raw(name string, required float64) (*Node, error) {
	r, ok := w.cat.RawItem(name, RawVariant)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownItem,
			"Raw item '%s' with variant '%s' does not exist in the data definitions.", name, RawVariant)
	}
	w.produce(name, r.Building, r.ItemsPerMinute)
	return &Node{Building: r.Building, Item: name, PerMachineIPM: r.ItemsPerMinute, RequiredIPM: required}, nil
}

// price fills in the building cost of every machine group under n.
func (w *walker) price(n *Node) error {
	if !n.Supplied {
		b, ok := w.cat.Building(n.Building)
		if !ok {
			return unknownBuilding(n.Building)
		}
		n.Cost = b.CostOf(n.Machines())
	}
	for _, in := range n.Inputs {
		if err := w.price(in); err != nil {
			return err
		}
	}
	return nil
}

func unknownBuilding(name string) error {
	return errors.New(errors.ErrCodeInvalidCatalogue,
		"Building '%s' does not exist in the data definitions.", name)
}
