package cmd

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"grimm.is/relayfw/internal/config"
)

// RunDiff compiles two policy files and prints a unified diff of the
// resulting filter sets. Returns an error when they differ, so scripts can
// use the exit code.
func RunDiff(fileA, fileB string) error {
	renderA, err := renderPolicy(fileA)
	if err != nil {
		return err
	}
	renderB, err := renderPolicy(fileB)
	if err != nil {
		return err
	}

	if renderA == renderB {
		fmt.Println("No changes detected.")
		return nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(renderA),
		B:        difflib.SplitLines(renderB),
		FromFile: fileA,
		ToFile:   fileB,
		Context:  3,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	fmt.Print(text)

	return fmt.Errorf("compiled filter sets differ")
}

func renderPolicy(path string) (string, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	eng, err := compileEngine(cfg)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return eng.Render(), nil
}
