package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/molviz/internal/bonds"
	"github.com/Faultbox/molviz/internal/config"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/pkg/pdb"
)

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	flags := config.RegisterFlags(fs)
	cfg := setup(fs, flags, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: molviz info <file.pdb>...")
		os.Exit(1)
	}

	opts, err := cfg.LoaderOptions()
	if err != nil {
		fatalf("%v", err)
	}

	failed := false
	for i, path := range fs.Args() {
		if i > 0 {
			fmt.Println()
		}
		if err := printInfo(path, opts.Model, opts.Bonds); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func printInfo(path string, model int, bondOpts bonds.Options) error {
	s, err := pdb.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("Structure: %s\n", s.Name)
	fmt.Printf("Models:    %d\n", len(s.Models))
	fmt.Printf("Atoms:     %d\n", s.AtomCount())
	fmt.Printf("CONECT:    %d\n", len(s.Bonds))
	fmt.Printf("Chains:    %d\n", len(s.Chains))
	fmt.Printf("Helices:   %d\n", len(s.Helices))
	fmt.Printf("Sheets:    %d\n", len(s.Sheets))

	if len(s.Models) > 1 {
		fmt.Println()
		fmt.Println("Models:")
		for i, m := range s.Models {
			label := "-"
			if m.HasSerial {
				label = fmt.Sprint(m.Serial)
			}
			fmt.Printf("  %3d  serial %-5s %d atoms\n", i, label, len(m.Atoms))
		}
	}

	if model < 0 || model >= len(s.Models) {
		return nil
	}
	atoms := s.Models[model].Atoms
	res := bonds.Infer(atoms, s.Bonds, bondOpts)
	diag := bonds.Diagnose(atoms, res.Connectivity)

	fmt.Println()
	fmt.Printf("Bonds (model %d):\n", model)
	fmt.Printf("  inferred  %d\n", res.Inferred)
	fmt.Printf("  explicit  %d\n", res.Explicit)
	fmt.Printf("  rejected  %d\n", res.Rejected)
	fmt.Printf("  max/atom  %d\n", diag.MaxBonds)
	fmt.Printf("  unbonded  %d\n", len(diag.Unbonded))
	return nil
}
