package rules

import (
	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/identity"
	"grimm.is/relayfw/internal/metrics"
	"grimm.is/relayfw/internal/policy"
)

// Rule is one compiled firewall rule. Apply builds the rule's filter
// objects and submits them through the installer, propagating its result
// unchanged.
type Rule interface {
	Apply(installer fwp.ObjectInstaller) bool
}

const (
	permitRelayName        = "Permit outbound connections to VPN relay"
	permitRelayDescription = "This filter is part of a rule that permits communication with a VPN relay"
)

// PermitVpnRelay permits outbound connection establishment from the policy's
// client application to the relay address:port over the policy's protocol.
//
// Distinct relay rule kinds (entry, exit) share this whole algorithm and
// differ only in the stable identity they are constructed with.
type PermitVpnRelay struct {
	key fwp.FilterKey
	reg *identity.Registry
	pol policy.Descriptor
}

// NewPermitEntryRelay builds the permit rule for the tunnel's entry relay.
func NewPermitEntryRelay(reg *identity.Registry, pol policy.Descriptor) *PermitVpnRelay {
	return newPermitVpnRelay(reg.FilterPermitEntryRelay(), reg, pol)
}

// NewPermitExitRelay builds the permit rule for the tunnel's exit relay.
func NewPermitExitRelay(reg *identity.Registry, pol policy.Descriptor) *PermitVpnRelay {
	return newPermitVpnRelay(reg.FilterPermitExitRelay(), reg, pol)
}

// NewPermitNamedRelay builds a permit rule keyed by an arbitrary stable name.
func NewPermitNamedRelay(name string, reg *identity.Registry, pol policy.Descriptor) *PermitVpnRelay {
	return newPermitVpnRelay(reg.FilterKey(name), reg, pol)
}

func newPermitVpnRelay(key fwp.FilterKey, reg *identity.Registry, pol policy.Descriptor) *PermitVpnRelay {
	return &PermitVpnRelay{key: key, reg: reg, pol: pol}
}

// Apply compiles the single permit filter and submits it. The layer is
// resolved once from the relay address; it fixes both the enforcement point
// and the legal family of the remote-address condition.
func (r *PermitVpnRelay) Apply(installer fwp.ObjectInstaller) bool {
	layer := LayerForAddress(r.pol.Relay)

	filter := fwp.Filter{
		Key:         r.key,
		Name:        permitRelayName,
		Description: permitRelayDescription,
		Provider:    r.reg.Provider(),
		Layer:       layer,
		Sublayer:    SublayerForClass(r.reg, r.pol.Class),
		// Relay permits are security-critical allow rules; maximum weight
		// so no narrower rule in the same sublayer can shadow them.
		Weight: fwp.WeightClassMax,
		Action: fwp.ActionPermit,
	}

	conditions := fwp.ConditionSet{
		fwp.MatchRemoteAddress(r.pol.Relay),
		fwp.MatchRemotePort(r.pol.Port),
		ProtocolCondition(r.pol.Protocol),
		fwp.MatchApplication(r.pol.Client),
	}

	ok := installer.AddFilter(filter, conditions)
	if ok {
		metrics.Get().FiltersCompiled.WithLabelValues(r.pol.Class.String()).Inc()
	} else {
		metrics.Get().InstallFailures.Inc()
	}
	return ok
}
