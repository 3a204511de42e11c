package engine

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/identity"
	"grimm.is/relayfw/internal/policy"
	"grimm.is/relayfw/internal/rules"
)

func newTestEngine(t *testing.T) (*Engine, *identity.Registry) {
	t.Helper()
	reg := identity.NewRegistry()
	e := New(nil)
	Bootstrap(e, reg, "Relaywall")
	return e, reg
}

func testPolicy(addr string, class policy.Classification) policy.Descriptor {
	return policy.Descriptor{
		Relay:    netip.MustParseAddr(addr),
		Port:     443,
		Protocol: policy.ProtocolTCP,
		Client:   "/usr/bin/vpn-client",
		Class:    class,
	}
}

func TestAddFilterReplacesByKey(t *testing.T) {
	e, reg := newTestEngine(t)

	require.True(t, rules.NewPermitExitRelay(reg, testPolicy("203.0.113.5", policy.ClassBaseline)).Apply(e))
	require.Equal(t, 1, e.FilterCount())

	// Recompiling the same logical policy with a new address replaces the
	// installed filter instead of adding a second one.
	require.True(t, rules.NewPermitExitRelay(reg, testPolicy("198.51.100.9", policy.ClassBaseline)).Apply(e))
	assert.Equal(t, 1, e.FilterCount())

	inst, ok := e.Filter(reg.FilterPermitExitRelay())
	require.True(t, ok)
	assert.Contains(t, inst.Conditions.String(), "198.51.100.9")
}

func TestAddFilterRejectsUnknownSublayer(t *testing.T) {
	reg := identity.NewRegistry()
	e := New(nil)
	e.AddProvider(reg.Provider(), "Relaywall")
	// No sublayers registered.

	ok := rules.NewPermitExitRelay(reg, testPolicy("203.0.113.5", policy.ClassBaseline)).Apply(e)
	assert.False(t, ok)
	assert.Equal(t, 0, e.FilterCount())
}

func TestAddFilterRejectsFamilyMismatch(t *testing.T) {
	e, reg := newTestEngine(t)

	f := fwp.Filter{
		Key:      reg.FilterPermitExitRelay(),
		Name:     "bad",
		Provider: reg.Provider(),
		Layer:    fwp.LayerALEAuthConnectV4,
		Sublayer: reg.SublayerBaseline(),
		Weight:   fwp.WeightClassMax,
		Action:   fwp.ActionPermit,
	}
	conds := fwp.ConditionSet{
		fwp.MatchRemoteAddress(netip.MustParseAddr("2001:db8::1")),
	}

	assert.False(t, e.AddFilter(f, conds), "v6 address on the v4 layer must be rejected")
	assert.Equal(t, 0, e.FilterCount())
}

func TestRemoveSublayerIsolation(t *testing.T) {
	e, reg := newTestEngine(t)

	require.True(t, rules.NewPermitEntryRelay(reg, testPolicy("203.0.113.5", policy.ClassBaseline)).Apply(e))
	require.True(t, rules.NewPermitExitRelay(reg, testPolicy("203.0.113.6", policy.ClassBaseline)).Apply(e))
	require.True(t, rules.NewPermitNamedRelay("dns-guard", reg, testPolicy("10.64.0.1", policy.ClassDns)).Apply(e))
	require.Equal(t, 3, e.FilterCount())

	// Replacing the DNS family must not disturb baseline filters.
	removed := e.RemoveSublayer(reg.SublayerDns())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, e.FilterCount())

	_, ok := e.Filter(reg.FilterPermitEntryRelay())
	assert.True(t, ok)
	_, ok = e.Filter(reg.FilterPermitExitRelay())
	assert.True(t, ok)
	_, ok = e.Filter(reg.FilterKey("dns-guard"))
	assert.False(t, ok)
}

func TestTxnCommit(t *testing.T) {
	e, reg := newTestEngine(t)

	tx := e.Begin()
	require.True(t, rules.NewPermitEntryRelay(reg, testPolicy("203.0.113.5", policy.ClassBaseline)).Apply(tx))
	require.True(t, rules.NewPermitExitRelay(reg, testPolicy("2001:db8::1", policy.ClassBaseline)).Apply(tx))

	// Nothing lands until commit.
	assert.Equal(t, 0, e.FilterCount())
	require.NoError(t, tx.Commit())
	assert.Equal(t, 2, e.FilterCount())
}

func TestTxnAbortDiscards(t *testing.T) {
	e, reg := newTestEngine(t)

	tx := e.Begin()
	require.True(t, rules.NewPermitEntryRelay(reg, testPolicy("203.0.113.5", policy.ClassBaseline)).Apply(tx))
	tx.Abort()

	assert.Equal(t, 0, e.FilterCount())
	assert.Error(t, tx.Commit(), "finished transaction cannot commit")
}

func TestTxnStageRejectsInvalid(t *testing.T) {
	e, reg := newTestEngine(t)

	tx := e.Begin()
	f := fwp.Filter{
		Key:      reg.FilterPermitExitRelay(),
		Name:     "bad",
		Provider: reg.Provider(),
		Layer:    fwp.LayerALEAuthConnectV6,
		Sublayer: reg.SublayerBaseline(),
	}
	conds := fwp.ConditionSet{fwp.MatchRemoteAddress(netip.MustParseAddr("10.0.0.1"))}

	assert.False(t, tx.AddFilter(f, conds))
	require.NoError(t, tx.Commit())
	assert.Equal(t, 0, e.FilterCount())
}

func TestRenderDeterministic(t *testing.T) {
	build := func() *Engine {
		e, reg := newTestEngine(t)
		require.True(t, rules.NewPermitEntryRelay(reg, testPolicy("203.0.113.5", policy.ClassBaseline)).Apply(e))
		require.True(t, rules.NewPermitNamedRelay("dns-guard", reg, testPolicy("10.64.0.1", policy.ClassDns)).Apply(e))
		return e
	}

	a := build().Render()
	b := build().Render()
	assert.Equal(t, a, b)
	assert.Contains(t, a, `sublayer "baseline"`)
	assert.Contains(t, a, `sublayer "dns"`)
	assert.Contains(t, a, "remote_ip = 203.0.113.5")
	assert.Contains(t, a, "ale_auth_connect_v4")
}
