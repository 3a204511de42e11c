// Package fwp models the objects of the platform packet-filtering engine:
// layers, sublayers, providers, filters, match conditions and weights.
//
// # Overview
//
// The engine evaluates connection-establishment decisions at named layers,
// one per address family. Filters are grouped into sublayers, which are the
// unit of bulk add/replace, and break ties within a sublayer by weight.
// Every object carries a stable GUID key so that re-adding an object with
// the same key replaces it instead of duplicating it.
//
// # Key Types
//
//   - [Filter]: one compiled rule descriptor (key, layer, sublayer, weight, action)
//   - [Condition]: a match predicate; a [ConditionSet] is an ordered conjunction
//   - [ObjectInstaller]: the boundary through which compiled filters are submitted
//
// This package holds value types only; rule compilation lives in
// internal/rules and the engine model in internal/engine.
package fwp
