package main

import (
	"flag"
	"fmt"
	"os"

	"grimm.is/relayfw/cmd"
	"grimm.is/relayfw/internal/brand"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		verbose := checkFlags.Bool("v", false, "Print summary and compiled filters")
		checkFlags.Parse(os.Args[2:])
		if err := cmd.RunCheck(checkFlags.Arg(0), *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "show":
		showFlags := flag.NewFlagSet("show", flag.ExitOnError)
		showFlags.Parse(os.Args[2:])
		policyFile := showFlags.Arg(0)
		if policyFile == "" {
			policyFile = brand.DefaultConfigPath()
		}
		if err := cmd.RunShow(policyFile); err != nil {
			fmt.Fprintf(os.Stderr, "Show failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		diffFlags.Parse(os.Args[2:])
		if diffFlags.NArg() != 2 {
			fmt.Fprintf(os.Stderr, "usage: %s diff <policy-a> <policy-b>\n", brand.BinaryName)
			os.Exit(1)
		}
		if err := cmd.RunDiff(diffFlags.Arg(0), diffFlags.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "import":
		importFlags := flag.NewFlagSet("import", flag.ExitOnError)
		outFile := importFlags.String("o", "", "Write policy HCL to this file instead of stdout")
		importFlags.Parse(os.Args[2:])
		if err := cmd.RunImport(importFlags.Arg(0), *outFile); err != nil {
			fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
			os.Exit(1)
		}

	case "version":
		fmt.Printf("%s %s (%s)\n", brand.Name, brand.Version, brand.GitCommit)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf("%s - %s\n\n", brand.Name, brand.Description)
	fmt.Printf("Usage: %s <command> [options]\n\n", brand.BinaryName)
	fmt.Println("Commands:")
	fmt.Println("  check [-v] <policy-file>     Validate a policy file")
	fmt.Println("  show [policy-file]           Compile a policy and print the filter objects")
	fmt.Println("  diff <policy-a> <policy-b>   Diff the compiled filter sets of two policies")
	fmt.Println("  import [-o out] <inventory>  Convert a YAML relay inventory to policy HCL")
	fmt.Println("  version                      Print version information")
}
