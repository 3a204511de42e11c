package fwp

import (
	"fmt"

	"github.com/google/uuid"
)

// Filter is one compiled packet-filter descriptor. It is a plain value;
// submitting it to the engine is the installer's job.
type Filter struct {
	Key         FilterKey
	Name        string
	Description string
	Provider    ProviderID
	Layer       LayerID
	Sublayer    SublayerID
	Weight      WeightClass
	Action      Action
}

// Validate checks structural completeness of the descriptor.
func (f Filter) Validate() error {
	if f.Key.IsZero() {
		return fmt.Errorf("filter has no key")
	}
	if f.Name == "" {
		return fmt.Errorf("filter %s has no name", f.Key)
	}
	if uuid.UUID(f.Layer) == uuid.Nil {
		return fmt.Errorf("filter %s has no layer", f.Key)
	}
	if uuid.UUID(f.Sublayer) == uuid.Nil {
		return fmt.Errorf("filter %s has no sublayer", f.Key)
	}
	if !KnownLayer(f.Layer) {
		return fmt.Errorf("filter %s references unknown layer %s", f.Key, f.Layer)
	}
	return nil
}
