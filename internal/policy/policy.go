// Package policy defines the declarative network-access policy model:
// immutable value types describing what a rule permits, independent of how
// the filtering engine enforces it.
package policy

import (
	"fmt"
	"net/netip"
	"strings"
)

// Protocol is the transport protocol of a permitted connection.
// The enumeration is closed; resolvers treat any other value as a
// programming error.
type Protocol uint8

const (
	ProtocolTCP Protocol = iota
	ProtocolUDP
)

// String returns the lower-case protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "tcp"
	case ProtocolUDP:
		return "udp"
	}
	return fmt.Sprintf("protocol(%d)", uint8(p))
}

// ParseProtocol parses a protocol name from configuration.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "tcp":
		return ProtocolTCP, nil
	case "udp":
		return ProtocolUDP, nil
	}
	return 0, fmt.Errorf("unknown protocol %q (want tcp or udp)", s)
}

// Classification assigns a rule to its functional family. It selects the
// sublayer only, so one family can be bulk-replaced without disturbing the
// others. Closed enumeration.
type Classification uint8

const (
	ClassBaseline Classification = iota
	ClassDns
)

// String returns the lower-case classification name.
func (c Classification) String() string {
	switch c {
	case ClassBaseline:
		return "baseline"
	case ClassDns:
		return "dns"
	}
	return fmt.Sprintf("classification(%d)", uint8(c))
}

// ParseClassification parses a classification name from configuration.
func ParseClassification(s string) (Classification, error) {
	switch strings.ToLower(s) {
	case "baseline":
		return ClassBaseline, nil
	case "dns":
		return ClassDns, nil
	}
	return 0, fmt.Errorf("unknown classification %q (want baseline or dns)", s)
}

// Descriptor fully specifies one permit-rule instance: allow the client
// application to reach the relay address:port over the given protocol.
// Immutable once constructed; owned by the caller.
type Descriptor struct {
	Relay    netip.Addr
	Port     uint16
	Protocol Protocol
	Client   string
	Class    Classification
}

// Validate checks the descriptor against the policy input domain.
func (d Descriptor) Validate() error {
	if !d.Relay.IsValid() {
		return fmt.Errorf("relay address is not set")
	}
	if d.Port == 0 {
		return fmt.Errorf("relay port must be 1-65535")
	}
	if d.Client == "" {
		return fmt.Errorf("client application path is not set")
	}
	if !isAbsolutePath(d.Client) {
		return fmt.Errorf("client application path %q is not absolute", d.Client)
	}
	return nil
}

// isAbsolutePath accepts Unix-style and Windows-style absolute paths; the
// client executable may live on either platform convention.
func isAbsolutePath(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	if len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/') {
		drive := p[0]
		return (drive >= 'A' && drive <= 'Z') || (drive >= 'a' && drive <= 'z')
	}
	return false
}
