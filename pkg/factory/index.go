package factory

import (
	"strings"

	"github.com/starrupture/srfactory/pkg/errors"
)

// OutputKey identifies a single factory output across the whole network.
// Ids never contain the separator, so the key is unambiguous.
func OutputKey(siteID, factoryID, outputID string) string {
	return strings.Join([]string{siteID, factoryID, outputID}, errors.KeySeparator)
}

// OutputIndex maps "site;factory;output" keys to outputs.
type OutputIndex struct {
	outputs map[string]*Output
	keys    []string
}

// IndexOutputs indexes every output of the network. It must run after the
// whole tree is built so that inputs may reference outputs declared later.
func IndexOutputs(n *Network) (*OutputIndex, error) {
	idx := &OutputIndex{outputs: make(map[string]*Output)}
	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, out := range f.Outputs {
				key := OutputKey(site.ID, f.ID, out.ID)
				// Ids are unique per scope already; this only guards the invariant.
				if _, ok := idx.outputs[key]; ok {
					return nil, errors.At(errors.ErrCodeDuplicateKey, out.Path,
						"Factory output ID '%s' is duplicate within factory '%s' and site '%s'.",
						out.ID, f.ID, site.ID)
				}
				idx.outputs[key] = out
				idx.keys = append(idx.keys, key)
			}
		}
	}
	return idx, nil
}

// Get returns the output stored under key.
func (idx *OutputIndex) Get(key string) (*Output, bool) {
	if idx == nil {
		return nil, false
	}
	out, ok := idx.outputs[key]
	return out, ok
}

// Resolve returns the output an input draws from.
func (idx *OutputIndex) Resolve(in *Input) (*Output, bool) {
	return idx.Get(in.OutputKey())
}

// Keys returns the indexed keys in document order.
func (idx *OutputIndex) Keys() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.keys...)
}

// Len returns the number of indexed outputs.
func (idx *OutputIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

// DispatchedItem returns the item delivered to a factory input by the
// output it is linked to.
func (n *Network) DispatchedItem(in *Input) (string, bool) {
	out, ok := n.Outputs.Resolve(in)
	if !ok {
		return "", false
	}
	return out.DispatchedItem, true
}
