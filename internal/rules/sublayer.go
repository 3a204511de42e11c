package rules

import (
	"fmt"

	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/identity"
	"grimm.is/relayfw/internal/policy"
)

// SublayerForClass maps a policy classification to its installed sublayer
// token. Keeping rule families in separate sublayers lets one family be
// bulk-replaced without disturbing the others. The classification
// enumeration is closed; any other value is a programming error and panics.
func SublayerForClass(reg *identity.Registry, c policy.Classification) fwp.SublayerID {
	switch c {
	case policy.ClassBaseline:
		return reg.SublayerBaseline()
	case policy.ClassDns:
		return reg.SublayerDns()
	}
	panic(fmt.Sprintf("rules: no sublayer for classification %v", c))
}
