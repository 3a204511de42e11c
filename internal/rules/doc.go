// Package rules compiles declarative relay policies into concrete filter
// objects for the packet-filtering engine.
//
// # Architecture
//
//	policy.Descriptor → rule builder → (fwp.Filter, fwp.ConditionSet) → fwp.ObjectInstaller
//
// Each builder resolves the enforcement layer from the relay's address
// family, the sublayer from the policy classification and the protocol
// predicate from the policy protocol, then submits exactly one filter
// through the installer boundary. Builders hold no mutable shared state;
// a compilation pass builds a full policy set and submits each rule in
// sequence (see [Batch]).
//
// Out-of-enum values reaching a resolver are code-contract breaks and
// panic immediately; they are never recovered or defaulted.
package rules
