package rules

import (
	"fmt"

	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/policy"
)

// ProtocolCondition translates a policy protocol into the engine's
// transport-protocol-equals predicate. The protocol enumeration is closed;
// any other value is a programming error and panics.
func ProtocolCondition(p policy.Protocol) fwp.Condition {
	switch p {
	case policy.ProtocolTCP:
		return fwp.MatchProtocolTCP()
	case policy.ProtocolUDP:
		return fwp.MatchProtocolUDP()
	}
	panic(fmt.Sprintf("rules: no condition for protocol %v", p))
}
