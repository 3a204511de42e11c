package fwp

import (
	"fmt"
	"net/netip"
	"strings"
)

// Condition is one match predicate evaluated against connection-establishment
// metadata. Conditions in a set are conjoined: all must match.
type Condition interface {
	// Field returns the stable field name, used for rendering and diffing.
	Field() string
	// Value returns the rendered match value.
	Value() string
}

// ConditionSet is an ordered sequence of conjoined conditions. Order has no
// semantic effect but is kept stable for deterministic diagnostics.
type ConditionSet []Condition

// String renders the set as "field=value field=value ...".
func (cs ConditionSet) String() string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		parts = append(parts, c.Field()+"="+c.Value())
	}
	return strings.Join(parts, " ")
}

// RemoteAddress matches the remote (destination) address of a connection.
type RemoteAddress struct {
	Addr netip.Addr
}

// MatchRemoteAddress builds a remote-address-equals condition.
func MatchRemoteAddress(addr netip.Addr) RemoteAddress {
	return RemoteAddress{Addr: addr}
}

// Family returns the address family of the match value. 4-in-6 mapped
// addresses are treated as IPv4.
func (c RemoteAddress) Family() Family {
	if c.Addr.Is4() || c.Addr.Is4In6() {
		return FamilyIPv4
	}
	return FamilyIPv6
}

func (c RemoteAddress) Field() string { return "remote_ip" }
func (c RemoteAddress) Value() string { return c.Addr.Unmap().String() }

// RemotePort matches the remote (destination) transport port.
type RemotePort struct {
	Port uint16
}

// MatchRemotePort builds a remote-port-equals condition.
func MatchRemotePort(port uint16) RemotePort {
	return RemotePort{Port: port}
}

func (c RemotePort) Field() string { return "remote_port" }
func (c RemotePort) Value() string { return fmt.Sprintf("%d", c.Port) }

// IP protocol numbers matched by TransportProtocol conditions.
const (
	ipProtoTCP = 6
	ipProtoUDP = 17
)

// TransportProtocol matches the IP transport protocol number.
type TransportProtocol struct {
	Number uint8
}

// MatchProtocolTCP builds a protocol-equals-TCP condition.
func MatchProtocolTCP() TransportProtocol {
	return TransportProtocol{Number: ipProtoTCP}
}

// MatchProtocolUDP builds a protocol-equals-UDP condition.
func MatchProtocolUDP() TransportProtocol {
	return TransportProtocol{Number: ipProtoUDP}
}

func (c TransportProtocol) Field() string { return "protocol" }

func (c TransportProtocol) Value() string {
	switch c.Number {
	case ipProtoTCP:
		return "tcp"
	case ipProtoUDP:
		return "udp"
	}
	return fmt.Sprintf("%d", c.Number)
}

// Application matches the originating application by executable path.
type Application struct {
	Path string
}

// MatchApplication builds an originating-application-equals condition.
func MatchApplication(path string) Application {
	return Application{Path: path}
}

func (c Application) Field() string { return "application" }
func (c Application) Value() string { return c.Path }

// ValidateConditions checks that a condition set is legal for the given
// layer: any remote-address condition must match the layer's address family.
func ValidateConditions(layer LayerID, cs ConditionSet) error {
	family := LayerFamily(layer)
	for _, c := range cs {
		addr, ok := c.(RemoteAddress)
		if !ok {
			continue
		}
		if !addr.Addr.IsValid() {
			return fmt.Errorf("invalid remote address condition")
		}
		if addr.Family() != family {
			return fmt.Errorf("remote address %s is %s but layer %s evaluates %s",
				addr.Value(), addr.Family(), LayerName(layer), family)
		}
	}
	return nil
}
