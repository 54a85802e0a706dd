// molviz is a CLI utility for turning PDB files into ball-and-stick scenes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/molviz/internal/config"
	"github.com/Faultbox/molviz/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "build", "b":
		cmdBuild(args)
	case "inspect", "i":
		cmdInspect(args)
	case "watch", "w":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`molviz - PDB to ball-and-stick scene converter

Usage:
  molviz <command> [options]

Commands:
  info <file.pdb>...                 Show models, atoms, bonds and annotations
  build [-o dir] <file.pdb>...       Build scenes and write <name>.json + <name>.bin
  inspect <name.json>                Print the node tree of a built scene
  watch [-o dir] <dir>               Rebuild PDB files in dir when they change

Common options:
  -config <file>   Config file (.yaml, .yml or .toml)
  -color <scheme>  Bond colors: element, residue, structure, chain, none
  -ball <shape>    Atom primitive: box, icosahedron
  -worker, -sync   Build behind the worker boundary, or in-process
  -debug           Debug logging

Examples:
  molviz info 1crn.pdb
  molviz build -o out -color chain 1crn.pdb 4hhb.pdb.gz
  molviz inspect out/1crn.json
  molviz watch -o out ./structures`)
}

// setup parses args, loads the configuration and initializes the logger.
func setup(fs *flag.FlagSet, flags *config.Flags, args []string) *config.Config {
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
		fileCfg.JSON = cfg.Logging.JSON
	}
	if err := logger.InitWithFileConfig(cfg.Logging.Level, fileCfg, true); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)

	return cfg
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	logger.Sync()
	os.Exit(1)
}
