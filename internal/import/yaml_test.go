package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grimm.is/relayfw/internal/config"
)

const sampleInventory = `
client: /usr/bin/vpn-client
relays:
  - name: se-sto-001
    kind: entry
    address: 203.0.113.5
    port: 443
    protocol: tcp
  - address: 2001:db8::1
    port: 51820
    protocol: udp
  - name: dns-guard
    address: 10.64.0.1
    port: 53
    protocol: udp
    classification: dns
`

func TestParseInventory(t *testing.T) {
	inv, err := ParseInventory([]byte(sampleInventory))
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/vpn-client", inv.Client)
	require.Len(t, inv.Relays, 3)
	assert.Equal(t, "se-sto-001", inv.Relays[0].Name)
	assert.Equal(t, "dns", inv.Relays[2].Classification)
}

func TestParseInventoryRejectsUnknownField(t *testing.T) {
	_, err := ParseInventory([]byte("relays:\n  - hostname: se-sto-001\n"))
	assert.Error(t, err, "strict decoding catches misspelled fields")
}

func TestToConfigNamesUnnamedRelays(t *testing.T) {
	inv, err := ParseInventory([]byte(sampleInventory))
	require.NoError(t, err)

	cfg, err := inv.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, "relay-2", cfg.Relays[1].Name)
}

func TestToConfigRejectsInvalidRelay(t *testing.T) {
	inv := &Inventory{
		Client: "/usr/bin/vpn-client",
		Relays: []InventoryRelay{{Name: "bad", Address: "not-an-ip", Port: 443}},
	}
	_, err := inv.ToConfig()
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	out, err := Convert([]byte(sampleInventory))
	require.NoError(t, err)

	cfg, err := config.LoadBytes("converted.hcl", out)
	require.NoError(t, err)
	require.Len(t, cfg.Relays, 3)
	assert.Equal(t, "entry", cfg.Relays[0].Kind)
	assert.Equal(t, "2001:db8::1", cfg.Relays[1].Address)
}
