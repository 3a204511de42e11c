package cmd

import (
	"fmt"
	"os"

	imports "grimm.is/relayfw/internal/import"
)

// RunImport converts a YAML relay inventory to policy HCL. The result goes
// to stdout, or to outFile when given.
func RunImport(inventoryFile, outFile string) error {
	data, err := os.ReadFile(inventoryFile)
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}

	hclData, err := imports.Convert(data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if outFile == "" {
		fmt.Print(string(hclData))
		return nil
	}
	if err := os.WriteFile(outFile, hclData, 0644); err != nil {
		return fmt.Errorf("failed to write policy: %w", err)
	}
	fmt.Printf("Wrote %s\n", outFile)
	return nil
}
