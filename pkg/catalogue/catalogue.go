// Package catalogue loads the StarRupture item and building definitions and
// exposes the lookup tables a factory layout is validated against.
//
// The definitions live in four semicolon-delimited CSV files, each starting
// with a header row:
//
//	items:     item_name;num_produced;period_seconds;factory;items_per_minute
//	inputs:    item_name;input_name;num_required;period_seconds;required_per_minute
//	raw:       item_name;variant;num_produced;period_seconds;factory;items_per_minute
//	buildings: building_name;heat_cost;bbm;ibm;qbm
//
// A [Catalogue] is read-only once loaded and safe for concurrent readers.
package catalogue

import (
	"fmt"
	"slices"
)

// Item is a craftable item and the building that produces it.
type Item struct {
	Name           string
	NumProduced    int
	PeriodSeconds  float64
	Building       string
	ItemsPerMinute int
}

// RecipeInput is one ingredient of an item's recipe.
type RecipeInput struct {
	ItemName          string
	InputName         string
	NumRequired       int
	PeriodSeconds     float64
	RequiredPerMinute int
}

// RawItem is an item extracted from a resource node of a given variant
// (node purity, e.g. "normal").
type RawItem struct {
	Name           string
	Variant        string
	NumProduced    int
	PeriodSeconds  int
	Building       string
	ItemsPerMinute int
}

// Material types used to pay for buildings.
const (
	MaterialBBM = "bbm"
	MaterialIBM = "ibm"
	MaterialQBM = "qbm"
)

// Building is a placeable building and its construction cost.
type Building struct {
	Name         string
	HeatCost     int
	MaterialType string
	Cost         int
}

// BuildCost is what placing a number of buildings takes.
type BuildCost struct {
	Heat     int
	Amount   int
	Material string
}

// String renders the material cost, e.g. "20 bbm".
func (c BuildCost) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Material)
}

// CostOf returns the cost of placing n buildings of type b.
func (b Building) CostOf(n int) BuildCost {
	return BuildCost{Heat: b.HeatCost * n, Amount: b.Cost * n, Material: b.MaterialType}
}

// Catalogue holds the loaded definitions and the derived lookups.
type Catalogue struct {
	Items     []Item
	Inputs    []RecipeInput
	RawItems  []RawItem
	Buildings []Building

	items     map[string]Item
	raw       map[rawKey]RawItem
	rawNames  map[string]bool
	recipes   map[string][]RecipeInput
	buildings map[string]Building
}

type rawKey struct{ name, variant string }

// New builds a Catalogue from already-parsed definitions.
func New(items []Item, inputs []RecipeInput, raw []RawItem, buildings []Building) *Catalogue {
	c := &Catalogue{
		Items:     items,
		Inputs:    inputs,
		RawItems:  raw,
		Buildings: buildings,
		items:     make(map[string]Item, len(items)),
		raw:       make(map[rawKey]RawItem, len(raw)),
		rawNames:  make(map[string]bool, len(raw)),
		recipes:   make(map[string][]RecipeInput),
		buildings: make(map[string]Building, len(buildings)),
	}
	for _, it := range items {
		c.items[it.Name] = it
	}
	for _, r := range raw {
		c.raw[rawKey{r.Name, r.Variant}] = r
		c.rawNames[r.Name] = true
	}
	// The first row for an item/input pair wins.
	for _, ri := range inputs {
		dup := slices.ContainsFunc(c.recipes[ri.ItemName], func(have RecipeInput) bool {
			return have.InputName == ri.InputName
		})
		if !dup {
			c.recipes[ri.ItemName] = append(c.recipes[ri.ItemName], ri)
		}
	}
	for _, b := range buildings {
		c.buildings[b.Name] = b
	}
	return c
}

// HasItem reports whether name is a craftable item.
func (c *Catalogue) HasItem(name string) bool {
	_, ok := c.items[name]
	return ok
}

// Item returns the craftable item called name.
func (c *Catalogue) Item(name string) (Item, bool) {
	it, ok := c.items[name]
	return it, ok
}

// HasRawItem reports whether name can be extracted from a node of variant.
func (c *Catalogue) HasRawItem(name, variant string) bool {
	_, ok := c.raw[rawKey{name, variant}]
	return ok
}

// RawItem returns the raw item called name extracted from a node of variant.
func (c *Catalogue) RawItem(name, variant string) (RawItem, bool) {
	r, ok := c.raw[rawKey{name, variant}]
	return r, ok
}

// IsRaw reports whether name is extracted rather than crafted.
func (c *Catalogue) IsRaw(name string) bool { return c.rawNames[name] }

// Recipe returns the ingredients of name in catalogue order, one per input
// item. Raw items have no recipe and return nil.
func (c *Catalogue) Recipe(name string) []RecipeInput {
	return slices.Clone(c.recipes[name])
}

// RecipeInputs returns the names of the items needed to craft name, in
// catalogue order. Raw items have no recipe and return nil.
func (c *Catalogue) RecipeInputs(name string) []string {
	recipe := c.recipes[name]
	if recipe == nil {
		return nil
	}
	names := make([]string, len(recipe))
	for i, ri := range recipe {
		names[i] = ri.InputName
	}
	return names
}

// Building returns the building definition for name.
func (c *Catalogue) Building(name string) (Building, bool) {
	b, ok := c.buildings[name]
	return b, ok
}

// ValidItems returns every known item name, craftable and raw, sorted.
func (c *Catalogue) ValidItems() []string {
	seen := make(map[string]bool, len(c.items)+len(c.rawNames))
	for name := range c.items {
		seen[name] = true
	}
	for name := range c.rawNames {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
