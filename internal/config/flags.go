package config

import "flag"

// Flags holds the command-line overrides shared by the molviz commands.
type Flags struct {
	Config   string
	Debug    bool
	LogFile  string
	Color    string
	Shape    string
	Model    int
	Limit    int
	Verbose  bool
	Worker   bool
	NoWorker bool
	NoMerge  bool
}

// RegisterFlags defines the shared flags on fs. Call fs.Parse before Load.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file (.yaml, .yml or .toml)")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log", "", "Also write logs to this file")
	fs.StringVar(&f.Color, "color", "", "Bond color scheme: element, residue, structure, chain, none")
	fs.StringVar(&f.Shape, "ball", "", "Ball primitive: box, icosahedron")
	fs.IntVar(&f.Model, "model", -1, "Model index to build")
	fs.IntVar(&f.Limit, "limit", 0, "Vertex limit per mesh")
	fs.BoolVar(&f.Verbose, "v", false, "Log empty meshes and bond diagnostics")
	fs.BoolVar(&f.Worker, "worker", false, "Build behind the worker boundary")
	fs.BoolVar(&f.NoWorker, "sync", false, "Build in the calling goroutine")
	fs.BoolVar(&f.NoMerge, "no-merge", false, "One mesh per atom and bond")
	return f
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return f.Config
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Build.Verbose = true
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Color != "" {
		cfg.Build.ColorScheme = f.Color
	}
	if f.Shape != "" {
		cfg.Build.BallShape = f.Shape
	}
	if f.Model >= 0 {
		cfg.Build.Model = f.Model
	}
	if f.Limit > 0 {
		cfg.Build.MeshVertexLimit = f.Limit
	}
	if f.Verbose {
		cfg.Build.Verbose = true
	}
	if f.Worker {
		cfg.Transport.UseWorker = true
	}
	if f.NoWorker {
		cfg.Transport.UseWorker = false
	}
	if f.NoMerge {
		cfg.Build.MergeLikeAtoms = false
	}
}
