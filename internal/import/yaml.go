// Package imports converts foreign relay inventories into policy HCL.
//
// The supported input is a YAML inventory, the format relay directories
// commonly export:
//
//	client: /usr/bin/vpn-client
//	relays:
//	  - name: se-sto-001
//	    kind: entry
//	    address: 203.0.113.5
//	    port: 443
//	    protocol: tcp
package imports

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"grimm.is/relayfw/internal/config"
)

// Inventory is a parsed YAML relay inventory.
type Inventory struct {
	Client string           `yaml:"client"`
	Relays []InventoryRelay `yaml:"relays"`
}

// InventoryRelay is one relay entry in an inventory.
type InventoryRelay struct {
	Name           string `yaml:"name"`
	Kind           string `yaml:"kind"`
	Address        string `yaml:"address"`
	Port           int    `yaml:"port"`
	Protocol       string `yaml:"protocol"`
	Client         string `yaml:"client"`
	Classification string `yaml:"classification"`
	Description    string `yaml:"description"`
}

// ParseInventory decodes a YAML relay inventory.
func ParseInventory(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.UnmarshalStrict(data, &inv); err != nil {
		return nil, fmt.Errorf("failed to parse inventory: %w", err)
	}
	return &inv, nil
}

// ToConfig converts the inventory into a validated policy Config. Relays
// without a name get a positional one so the HCL labels stay unique.
func (inv *Inventory) ToConfig() (*config.Config, error) {
	cfg := &config.Config{Client: inv.Client}
	for i, r := range inv.Relays {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("relay-%d", i+1)
		}
		cfg.Relays = append(cfg.Relays, config.Relay{
			Name:           name,
			Kind:           r.Kind,
			Address:        r.Address,
			Port:           r.Port,
			Protocol:       r.Protocol,
			Client:         r.Client,
			Classification: r.Classification,
			Description:    r.Description,
		})
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Convert parses a YAML inventory and renders it as policy HCL.
func Convert(data []byte) ([]byte, error) {
	inv, err := ParseInventory(data)
	if err != nil {
		return nil, err
	}
	cfg, err := inv.ToConfig()
	if err != nil {
		return nil, err
	}
	return config.Serialize(cfg), nil
}
