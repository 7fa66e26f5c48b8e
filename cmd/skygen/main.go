// Command skygen renders procedural sky backgrounds to PNG files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/skygen"
	"github.com/gogpu/skygen/internal/preview"
	"github.com/gogpu/skygen/surface"
)

type options struct {
	width, height int
	configPath    string
	output        string
	seed          uint64
	count         int
	variant       string
	corrected     bool
	backend       string
	preview       int
	verbose       bool
}

func main() {
	var o options
	flag.IntVar(&o.width, "width", 800, "image width")
	flag.IntVar(&o.height, "height", 600, "image height")
	flag.StringVar(&o.configPath, "config", "config/sky.yaml", "YAML config file (missing file uses defaults)")
	flag.StringVar(&o.output, "output", "sky.png", "output file; batches insert the index before the extension")
	flag.Uint64Var(&o.seed, "seed", 0, "random seed (0 picks a fresh seed per sky)")
	flag.IntVar(&o.count, "count", 1, "number of skies to render")
	flag.StringVar(&o.variant, "variant", "", "override the config variant (refined or legacy)")
	flag.BoolVar(&o.corrected, "corrected", false, "densify with corrected averaging")
	flag.StringVar(&o.backend, "backend", "", "output surface backend: "+strings.Join(surface.Backends(), ", ")+" (default: best available)")
	flag.IntVar(&o.preview, "preview", 0, "print a terminal preview this many columns wide")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	skygen.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	if o.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", o.count)
	}

	if o.backend != "" && !slices.Contains(surface.Backends(), o.backend) {
		return &surface.BackendNotFoundError{Name: o.backend, Known: surface.Backends()}
	}

	cfg, err := skygen.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.variant != "" {
		cfg.Variant = o.variant
	}
	if o.corrected {
		cfg.CorrectedAveraging = true
	}
	slog.Info("config loaded",
		"path", o.configPath,
		"variant", cfg.Variant,
		"size", fmt.Sprintf("%dx%d", o.width, o.height),
		"count", o.count,
	)

	textures := skygen.NewTextureCache(0)
	skies := make([]*skygen.Sky, o.count)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range o.count {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			opts := []skygen.Option{
				skygen.WithTextureCache(textures),
				skygen.WithKey(keyFor(i, o.count)),
			}
			if o.seed != 0 {
				opts = append(opts, skygen.WithSeed(o.seed+uint64(i)))
			}
			if o.backend != "" {
				opts = append(opts, skygen.WithBackend(o.backend))
			}

			gen, err := skygen.New(o.width, o.height, cfg, opts...)
			if err != nil {
				return err
			}
			sky, err := gen.Generate()
			if err != nil {
				return fmt.Errorf("generating sky %d: %w", i+1, err)
			}

			path := outputFor(o.output, i, o.count)
			if err := sky.SavePNG(path); err != nil {
				return fmt.Errorf("saving %s: %w", path, err)
			}
			slog.Info("sky saved", "path", path, "key", sky.Key)
			skies[i] = sky
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if o.preview > 0 {
		flat, err := skies[0].Flatten()
		if err != nil {
			return err
		}
		fmt.Println(preview.New(os.Stdout, o.preview).Render(flat))
	}

	stats := textures.Stats()
	slog.Debug("texture cache", "entries", stats.Len, "replacements", stats.Replacements)
	return nil
}

// keyFor names the texture of sky i in a batch of n.
func keyFor(i, n int) string {
	if n == 1 {
		return skygen.DefaultKey
	}
	return fmt.Sprintf("%s_%d", skygen.DefaultKey, i+1)
}

// outputFor inserts a 1-based index before the extension when n > 1.
func outputFor(path string, i, n int) string {
	if n == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i+1, ext)
}
