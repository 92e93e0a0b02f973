// Package factory models a StarRupture factory layout and loads it from a
// JSON document.
//
// # Overview
//
// A layout is a tree of [Site] values, each holding named [Factory] values.
// A factory contains machines, storage, factory inputs and factory outputs.
// Production links only point upward within one factory; the single
// cross-factory link is a factory input naming an output elsewhere by its
// (site, factory, output) triple.
//
// # Loading
//
// [Loader.Read] runs the complete pipeline:
//
//	strict decode → Build → IndexOutputs → Validate
//
// The decode step rejects duplicate object keys. [Build] checks shape and
// scope-local id uniqueness. [Validate] runs three ordered passes:
//
//  1. [PassItems]: every machine item (and raw variant) is in the catalogue
//  2. [PassConnections]: every source id and input triple resolves
//  3. [PassFlow]: every producer delivers an item its consumer accepts
//
// The first failure aborts the load and is returned as an
// [errors.Error] carrying the JSON path of the offending node.
//
// # Export
//
// [WriteJSON] and [WriteYAML] write a loaded network back out in document
// order.
package factory
