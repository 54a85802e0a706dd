package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/molviz/internal/config"
	"github.com/Faultbox/molviz/internal/logger"
)

// settleDelay is how long a file must stay quiet before it is rebuilt.
const settleDelay = 250 * time.Millisecond

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	outDir := fs.String("o", "", "Output directory (default: the watched directory)")
	initial := fs.Bool("initial", true, "Build every PDB file once at startup")
	flags := config.RegisterFlags(fs)
	cfg := setup(fs, flags, args)
	defer logger.Sync()

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: molviz watch [-o dir] <dir>")
		os.Exit(1)
	}
	dir := fs.Arg(0)
	if *outDir == "" {
		*outDir = dir
	}

	client, err := cfg.NewClient()
	if err != nil {
		fatalf("%v", err)
	}
	defer client.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fatalf("creating watcher: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		fatalf("watching %s: %v", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rebuild := func(path string) {
		jsonPath, sum, err := buildOne(ctx, client, cfg, path, *outDir)
		if err != nil {
			logger.Error("rebuild failed", zap.String("file", path), zap.Error(err))
			return
		}
		fmt.Printf("Built: %s (%d meshes, %d vertices)\n", jsonPath, sum.Meshes, sum.Vertices)
	}

	if *initial {
		entries, err := os.ReadDir(dir)
		if err != nil {
			fatalf("%v", err)
		}
		for _, e := range entries {
			if !e.IsDir() && isStructureFile(e.Name()) {
				rebuild(filepath.Join(dir, e.Name()))
			}
		}
	}

	logger.Info("watching for changes", zap.String("dir", dir), zap.String("output", *outDir))
	watchLoop(ctx, watcher, rebuild)
}

// watchLoop collects change events and rebuilds each touched file once it
// has been quiet for settleDelay.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, rebuild func(string)) {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if isStructureFile(ev.Name) {
				pending[ev.Name] = time.Now()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))

		case now := <-ticker.C:
			var due []string
			for path, last := range pending {
				if now.Sub(last) >= settleDelay {
					due = append(due, path)
				}
			}
			slices.Sort(due)
			for _, path := range due {
				delete(pending, path)
				rebuild(path)
			}
		}
	}
}

// isStructureFile reports whether name looks like a PDB document.
func isStructureFile(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".gz")
	return strings.HasSuffix(name, ".pdb") || strings.HasSuffix(name, ".ent")
}
