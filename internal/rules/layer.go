package rules

import (
	"fmt"
	"net/netip"

	"grimm.is/relayfw/internal/fwp"
)

// LayerForAddress returns the connection-establishment layer that evaluates
// the given address's family. Choosing the layer here also fixes which
// address-condition family is legal for the filter; callers must not
// re-derive it. An invalid address is a programming error and panics.
func LayerForAddress(addr netip.Addr) fwp.LayerID {
	switch {
	case addr.Is4() || addr.Is4In6():
		return fwp.LayerALEAuthConnectV4
	case addr.Is6():
		return fwp.LayerALEAuthConnectV6
	}
	panic(fmt.Sprintf("rules: no layer for address %q", addr))
}
