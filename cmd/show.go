package cmd

import (
	"fmt"

	"grimm.is/relayfw/internal/brand"
	"grimm.is/relayfw/internal/config"
	"grimm.is/relayfw/internal/engine"
	"grimm.is/relayfw/internal/identity"
	"grimm.is/relayfw/internal/logging"
	"grimm.is/relayfw/internal/rules"
)

// RunShow compiles the policy file and prints the resulting filter objects.
func RunShow(policyFile string) error {
	cfg, err := config.LoadFile(policyFile)
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	eng, err := compileEngine(cfg)
	if err != nil {
		return err
	}
	fmt.Print(eng.Render())
	return nil
}

// compileEngine compiles a policy set into a fresh in-memory engine through
// one transaction.
func compileEngine(cfg *config.Config) (*engine.Engine, error) {
	log := logging.Default()
	reg := identity.NewRegistry()

	eng := engine.New(log)
	engine.Bootstrap(eng, reg, brand.Name)

	ruleSet, err := rules.FromConfig(cfg, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to build rules: %w", err)
	}

	batch := rules.NewBatch(log)
	batch.Add(ruleSet...)

	tx := eng.Begin()
	if !batch.Apply(tx) {
		tx.Abort()
		return nil, fmt.Errorf("rule compilation failed")
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rules: %w", err)
	}
	return eng, nil
}
