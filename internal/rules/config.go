package rules

import (
	"fmt"
	"strings"

	"grimm.is/relayfw/internal/config"
	"grimm.is/relayfw/internal/identity"
)

// FromConfig compiles a loaded policy file into an ordered rule set. The
// relay's kind selects the stable identity the rule is constructed with;
// unnamed kinds derive their identity from the relay name.
func FromConfig(cfg *config.Config, reg *identity.Registry) ([]Rule, error) {
	out := make([]Rule, 0, len(cfg.Relays))
	for _, r := range cfg.Relays {
		pol, err := r.Descriptor(cfg.Client)
		if err != nil {
			return nil, fmt.Errorf("relay %q: %w", r.Name, err)
		}

		switch strings.ToLower(r.Kind) {
		case "entry":
			out = append(out, NewPermitEntryRelay(reg, pol))
		case "exit":
			out = append(out, NewPermitExitRelay(reg, pol))
		case "":
			out = append(out, NewPermitNamedRelay(r.Name, reg, pol))
		default:
			return nil, fmt.Errorf("relay %q: unknown kind %q", r.Name, r.Kind)
		}
	}
	return out, nil
}
