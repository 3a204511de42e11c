package fwp

import (
	"github.com/google/uuid"
)

// Family identifies the address family a layer evaluates.
type Family uint8

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	}
	return "unknown"
}

// LayerID identifies an enforcement layer in the filtering engine.
type LayerID uuid.UUID

// SublayerID identifies a priority group of filters managed as a unit.
type SublayerID uuid.UUID

// ProviderID identifies the provider that owns a set of filters.
type ProviderID uuid.UUID

// FilterKey is the stable identity of one filter. Re-adding a filter with
// the same key replaces the previous instance.
type FilterKey uuid.UUID

func (l LayerID) String() string    { return uuid.UUID(l).String() }
func (s SublayerID) String() string { return uuid.UUID(s).String() }
func (p ProviderID) String() string { return uuid.UUID(p).String() }
func (k FilterKey) String() string  { return uuid.UUID(k).String() }

// IsZero reports whether the key is unset.
func (k FilterKey) IsZero() bool { return uuid.UUID(k) == uuid.Nil }

// Connection-establishment (ALE auth connect) layers, one per address family.
// The GUID values are the engine's well-known layer identifiers.
var (
	LayerALEAuthConnectV4 = LayerID(uuid.MustParse("c38d57d1-05a7-4c33-904f-7fbceee60e82"))
	LayerALEAuthConnectV6 = LayerID(uuid.MustParse("4a72393b-319f-44bc-84c3-ba54dcb3b6b4"))
)

// LayerFamily returns the address family evaluated at the given layer.
// The layer set is closed; an unknown layer is a programming error.
func LayerFamily(l LayerID) Family {
	switch l {
	case LayerALEAuthConnectV4:
		return FamilyIPv4
	case LayerALEAuthConnectV6:
		return FamilyIPv6
	}
	panic("fwp: unknown layer " + l.String())
}

// KnownLayer reports whether l is one of the engine's well-known layers.
func KnownLayer(l LayerID) bool {
	return l == LayerALEAuthConnectV4 || l == LayerALEAuthConnectV6
}

// LayerName returns a short diagnostic name for a well-known layer.
func LayerName(l LayerID) string {
	switch l {
	case LayerALEAuthConnectV4:
		return "ale_auth_connect_v4"
	case LayerALEAuthConnectV6:
		return "ale_auth_connect_v6"
	}
	return l.String()
}

// WeightClass is the relative priority of a filter within its sublayer.
// The engine resolves ties between filters matching the same traffic by
// evaluating the highest weight class first.
type WeightClass uint8

const (
	WeightClassMin WeightClass = 0
	WeightClassMed WeightClass = 8
	WeightClassMax WeightClass = 15
)

// String returns the weight class name.
func (w WeightClass) String() string {
	switch w {
	case WeightClassMin:
		return "min"
	case WeightClassMed:
		return "medium"
	case WeightClassMax:
		return "max"
	}
	return "custom"
}

// Action is the verdict a filter applies to matching traffic.
type Action uint8

const (
	ActionPermit Action = iota
	ActionBlock
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionPermit:
		return "permit"
	case ActionBlock:
		return "block"
	}
	return "unknown"
}
