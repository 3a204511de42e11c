// Package identity mints the stable GUID tokens that tie compiled filter
// objects to their semantic policies. Tokens are derived deterministically
// (UUIDv5 over a fixed namespace), so re-deriving the token for the same
// logical policy always yields the same value and the engine replaces rather
// than duplicates on recompilation. The rest of the system treats this
// package as an opaque token source.
package identity

import (
	"github.com/google/uuid"

	"grimm.is/relayfw/internal/fwp"
)

// namespace roots all derived tokens. Changing it would re-key every
// installed object, so it is fixed for the lifetime of the product.
var namespace = uuid.MustParse("8e9ff90b-1946-48c5-b126-ccf1b2c39f0a")

// Well-known object names. The derived GUID is a pure function of the name,
// so these strings are part of the product's persistent identity.
const (
	nameProvider     = "provider"
	nameSublayerBase = "sublayer/baseline"
	nameSublayerDns  = "sublayer/dns"
	nameFilterEntry  = "filter/baseline/permit-vpn-entry-relay"
	nameFilterExit   = "filter/baseline/permit-vpn-exit-relay"
)

// Registry is the stable-identity source injected into rule builders.
type Registry struct {
	ns uuid.UUID
}

// NewRegistry returns the product's identity registry.
func NewRegistry() *Registry {
	return &Registry{ns: namespace}
}

func (r *Registry) derive(name string) uuid.UUID {
	return uuid.NewSHA1(r.ns, []byte(name))
}

// Provider returns the provider token owning all filters of this product.
func (r *Registry) Provider() fwp.ProviderID {
	return fwp.ProviderID(r.derive(nameProvider))
}

// SublayerBaseline returns the sublayer token for general traffic permits.
func (r *Registry) SublayerBaseline() fwp.SublayerID {
	return fwp.SublayerID(r.derive(nameSublayerBase))
}

// SublayerDns returns the sublayer token for DNS-leak-prevention permits.
func (r *Registry) SublayerDns() fwp.SublayerID {
	return fwp.SublayerID(r.derive(nameSublayerDns))
}

// FilterPermitEntryRelay returns the stable key of the entry-relay permit.
func (r *Registry) FilterPermitEntryRelay() fwp.FilterKey {
	return fwp.FilterKey(r.derive(nameFilterEntry))
}

// FilterPermitExitRelay returns the stable key of the exit-relay permit.
func (r *Registry) FilterPermitExitRelay() fwp.FilterKey {
	return fwp.FilterKey(r.derive(nameFilterExit))
}

// FilterKey derives the stable key for an arbitrary named filter. Used for
// rule kinds that are configured rather than built in. The "custom" prefix
// keeps configured names out of the built-in key space.
func (r *Registry) FilterKey(name string) fwp.FilterKey {
	return fwp.FilterKey(r.derive("filter/custom/" + name))
}
