package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/molviz/internal/config"
	"github.com/Faultbox/molviz/internal/geometry"
	"github.com/Faultbox/molviz/internal/loader"
	"github.com/Faultbox/molviz/internal/logger"
	"github.com/Faultbox/molviz/internal/transport"
	"github.com/Faultbox/molviz/internal/wire"
	"github.com/Faultbox/molviz/pkg/pdb"
)

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	outDir := fs.String("o", ".", "Output directory")
	jobs := fs.Int("j", runtime.GOMAXPROCS(0), "Files built at once")
	flags := config.RegisterFlags(fs)
	cfg := setup(fs, flags, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: molviz build [-o dir] <file.pdb>...")
		os.Exit(1)
	}

	client, err := cfg.NewClient()
	if err != nil {
		fatalf("%v", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*jobs, 1))
	for _, path := range fs.Args() {
		g.Go(func() error {
			jsonPath, sum, err := buildOne(ctx, client, cfg, path, *outDir)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("Built: %s (%d meshes, %d vertices)\n", jsonPath, sum.Meshes, sum.Vertices)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fatalf("%v", err)
	}
}

// buildOne builds path through client, normalizes it for presentation and
// writes the serialized scene to outDir.
func buildOne(ctx context.Context, client *transport.Client, cfg *config.Config, path, outDir string) (string, geometry.Summary, error) {
	name := pdb.StructureName(path)

	var r transport.Result
	select {
	case r = <-client.Load(ctx, transport.Request{Name: name, Path: path}):
	case <-ctx.Done():
		return "", geometry.Summary{}, ctx.Err()
	}
	if r.Err != nil {
		return "", geometry.Summary{}, r.Err
	}
	for _, skipped := range r.Skipped {
		logger.Warn("part of scene dropped", zap.String("file", path), zap.Error(skipped))
	}

	if err := loader.Normalize(r.Tree, cfg.Transforms, name); err != nil {
		return "", geometry.Summary{}, err
	}

	lib, buf := wire.Serialize(r.Tree)
	jsonPath, err := wire.WriteFiles(outDir, name, lib, buf)
	if err != nil {
		return "", geometry.Summary{}, err
	}

	logger.Debug("scene written",
		zap.String("file", path),
		zap.String("output", jsonPath),
		zap.Int("bytes", len(buf)))

	return jsonPath, geometry.Summarize(r.Tree), nil
}
