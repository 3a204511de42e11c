package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"grimm.is/relayfw/internal/brand"
	"grimm.is/relayfw/internal/config"
)

// RunCheck validates the policy file syntax and semantics.
func RunCheck(policyFile string, verbose bool) error {
	if len(policyFile) == 0 {
		return fmt.Errorf("usage: %s check [-v] <policy-file>\nExample: %s check -v /etc/relayfw/policy.hcl", brand.BinaryName, brand.BinaryName)
	}

	cfg, err := config.LoadFile(policyFile)
	if err != nil {
		return fmt.Errorf("policy invalid: %w", err)
	}

	fmt.Printf("Policy valid!\n")
	fmt.Printf("Relays: %d\n", len(cfg.Relays))

	if verbose {
		fmt.Println()
		printSummary(cfg)

		eng, err := compileEngine(cfg)
		if err != nil {
			return err
		}
		fmt.Println("\nCompiled filters:")
		fmt.Print(eng.Render())
	}

	return nil
}

func printSummary(cfg *config.Config) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tKIND\tADDRESS\tPORT\tPROTO\tCLASS")
	for _, r := range cfg.Relays {
		kind := r.Kind
		if kind == "" {
			kind = "-"
		}
		proto := r.Protocol
		if proto == "" {
			proto = "tcp"
		}
		class := r.Classification
		if class == "" {
			class = "baseline"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", r.Name, kind, r.Address, r.Port, proto, class)
	}
	w.Flush()
}
