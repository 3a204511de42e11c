package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/relayfw/internal/config"
	"grimm.is/relayfw/internal/fwp"
	"grimm.is/relayfw/internal/identity"
	"grimm.is/relayfw/internal/policy"
)

// failAfter accepts n submissions, then fails.
type failAfter struct {
	captureInstaller
	n int
}

func (f *failAfter) AddFilter(filter fwp.Filter, cs fwp.ConditionSet) bool {
	if len(f.filters) >= f.n {
		return false
	}
	return f.captureInstaller.AddFilter(filter, cs)
}

func TestBatchApply(t *testing.T) {
	reg := identity.NewRegistry()
	inst := &captureInstaller{}

	b := NewBatch(nil)
	b.Add(NewPermitEntryRelay(reg, exitPolicy()))

	pol := exitPolicy()
	pol.Class = policy.ClassDns
	pol.Port = 53
	pol.Protocol = policy.ProtocolUDP
	b.Add(NewPermitNamedRelay("dns-relay", reg, pol))

	require.Equal(t, 2, b.Len())
	assert.True(t, b.Apply(inst))
	assert.Len(t, inst.filters, 2)
}

func TestBatchStopsAtFirstFailure(t *testing.T) {
	reg := identity.NewRegistry()
	inst := &failAfter{n: 1}

	b := NewBatch(nil)
	b.Add(
		NewPermitEntryRelay(reg, exitPolicy()),
		NewPermitExitRelay(reg, exitPolicy()),
		NewPermitNamedRelay("extra", reg, exitPolicy()),
	)

	assert.False(t, b.Apply(inst))
	// The failing rule never partially applies, and later rules are not
	// attempted.
	assert.Len(t, inst.filters, 1)
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Client: "/usr/bin/vpn-client",
		Relays: []config.Relay{
			{Name: "se-sto-001", Kind: "entry", Address: "203.0.113.5", Port: 443},
			{Name: "se-got-002", Kind: "exit", Address: "2001:db8::1", Port: 443, Protocol: "udp"},
			{Name: "dns-guard", Address: "10.64.0.1", Port: 53, Protocol: "udp", Classification: "dns"},
		},
	}
	require.NoError(t, cfg.Validate())

	reg := identity.NewRegistry()
	ruleSet, err := FromConfig(cfg, reg)
	require.NoError(t, err)
	require.Len(t, ruleSet, 3)

	inst := &captureInstaller{}
	for _, r := range ruleSet {
		require.True(t, r.Apply(inst))
	}

	assert.Equal(t, reg.FilterPermitEntryRelay(), inst.filters[0].Key)
	assert.Equal(t, reg.FilterPermitExitRelay(), inst.filters[1].Key)
	assert.Equal(t, reg.FilterKey("dns-guard"), inst.filters[2].Key)
	assert.Equal(t, reg.SublayerDns(), inst.filters[2].Sublayer)

	// The default client path flows into the application condition.
	appCond := inst.conds[0][3]
	assert.Equal(t, "/usr/bin/vpn-client", appCond.Value())
}

func TestFromConfigRejectsBadRelay(t *testing.T) {
	cfg := &config.Config{
		Relays: []config.Relay{
			{Name: "broken", Address: "not-an-ip", Port: 443, Client: "/usr/bin/vpn"},
		},
	}
	_, err := FromConfig(cfg, identity.NewRegistry())
	assert.Error(t, err)
}
