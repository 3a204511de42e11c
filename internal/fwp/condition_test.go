package fwp

import (
	"net/netip"
	"testing"
)

func TestLayerFamily(t *testing.T) {
	if LayerFamily(LayerALEAuthConnectV4) != FamilyIPv4 {
		t.Error("v4 layer should evaluate IPv4")
	}
	if LayerFamily(LayerALEAuthConnectV6) != FamilyIPv6 {
		t.Error("v6 layer should evaluate IPv6")
	}

	defer func() {
		if recover() == nil {
			t.Error("unknown layer should panic")
		}
	}()
	LayerFamily(LayerID{})
}

func TestRemoteAddressFamily(t *testing.T) {
	tests := []struct {
		addr     string
		expected Family
	}{
		{"203.0.113.5", FamilyIPv4},
		{"::ffff:203.0.113.5", FamilyIPv4}, // 4-in-6 mapped
		{"2001:db8::1", FamilyIPv6},
	}

	for _, tc := range tests {
		t.Run(tc.addr, func(t *testing.T) {
			c := MatchRemoteAddress(netip.MustParseAddr(tc.addr))
			if c.Family() != tc.expected {
				t.Errorf("Family() = %v, expected %v", c.Family(), tc.expected)
			}
		})
	}
}

func TestConditionRendering(t *testing.T) {
	cs := ConditionSet{
		MatchRemoteAddress(netip.MustParseAddr("203.0.113.5")),
		MatchRemotePort(443),
		MatchProtocolTCP(),
		MatchApplication("/usr/bin/vpn-client"),
	}

	want := "remote_ip=203.0.113.5 remote_port=443 protocol=tcp application=/usr/bin/vpn-client"
	if got := cs.String(); got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}

	if got := MatchProtocolUDP().Value(); got != "udp" {
		t.Errorf("UDP condition renders %q", got)
	}
	// Mapped addresses render in v4 notation
	mapped := MatchRemoteAddress(netip.MustParseAddr("::ffff:10.0.0.1"))
	if got := mapped.Value(); got != "10.0.0.1" {
		t.Errorf("mapped address renders %q", got)
	}
}

func TestValidateConditions(t *testing.T) {
	v4 := MatchRemoteAddress(netip.MustParseAddr("203.0.113.5"))
	v6 := MatchRemoteAddress(netip.MustParseAddr("2001:db8::1"))

	if err := ValidateConditions(LayerALEAuthConnectV4, ConditionSet{v4}); err != nil {
		t.Errorf("v4 address on v4 layer should validate: %v", err)
	}
	if err := ValidateConditions(LayerALEAuthConnectV6, ConditionSet{v6}); err != nil {
		t.Errorf("v6 address on v6 layer should validate: %v", err)
	}
	if err := ValidateConditions(LayerALEAuthConnectV4, ConditionSet{v6}); err == nil {
		t.Error("v6 address on v4 layer should be rejected")
	}
	if err := ValidateConditions(LayerALEAuthConnectV6, ConditionSet{v4}); err == nil {
		t.Error("v4 address on v6 layer should be rejected")
	}

	// Sets without an address condition are always fine
	if err := ValidateConditions(LayerALEAuthConnectV4, ConditionSet{MatchRemotePort(443)}); err != nil {
		t.Errorf("address-free set should validate: %v", err)
	}
}

func TestFilterValidate(t *testing.T) {
	valid := Filter{
		Key:      FilterKey{1},
		Name:     "test",
		Layer:    LayerALEAuthConnectV4,
		Sublayer: SublayerID{2},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid filter rejected: %v", err)
	}

	missingKey := valid
	missingKey.Key = FilterKey{}
	if err := missingKey.Validate(); err == nil {
		t.Error("filter without key should be rejected")
	}

	badLayer := valid
	badLayer.Layer = LayerID{9}
	if err := badLayer.Validate(); err == nil {
		t.Error("filter with unknown layer should be rejected")
	}
}
