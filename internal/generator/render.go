package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/calumari/oocgen/internal/diag"
)

const defaultMaxDiagnostics = 500

// Result describes a finished run.
type Result struct {
	Model       *Model
	Diagnostics *diag.Bag
	Written     []string // paths in write order, header first
}

// Run orchestrates reading, scanning, analysis and file emission. Generation
// problems end up in Result.Diagnostics; only configuration and I/O failures
// are returned as errors.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Output == "" {
		return nil, ErrNoOutput
	}
	cfg = withPaths(cfg)
	res, err := Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	art, err := Emit(res.Model)
	if err != nil {
		return res, err
	}

	if !cfg.Options.SingleFile {
		if err := writeArtifact(cfg.Header, art.Declarations); err != nil {
			return res, err
		}
		res.Written = append(res.Written, cfg.Header)
	}
	if err := writeArtifact(cfg.Output, art.Bodies); err != nil {
		return res, err
	}
	res.Written = append(res.Written, cfg.Output)
	return res, nil
}

// Load reads and scans every input and resolves the result. It stops short
// of rendering, which makes it the entry point for inspection.
func Load(ctx context.Context, cfg Config) (*Result, error) {
	if len(cfg.Inputs) == 0 {
		return nil, ErrNoInput
	}
	sources, err := readInputs(ctx, cfg.Inputs, cfg.Jobs)
	if err != nil {
		return nil, err
	}

	limit := cfg.MaxDiagnostics
	if limit <= 0 {
		limit = defaultMaxDiagnostics
	}
	bag := diag.NewBag(limit)
	rep := diag.BagReporter{Bag: bag}

	store := NewStore()
	for i, src := range sources {
		ScanSource(store, cfg.Inputs[i], src, rep)
	}
	opts := cfg.Options
	if opts.Stamp == "" {
		opts.Stamp = stamp(cfg)
	}
	model := Analyze(store, opts, rep)
	bag.Sort(cfg.Inputs...)
	return &Result{Model: model, Diagnostics: bag}, nil
}

// readInputs loads every file concurrently. Results are index-addressed so
// scanning still follows argument order.
func readInputs(ctx context.Context, paths []string, jobs int) ([][]byte, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make([][]byte, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return &InputError{Path: path, Err: err}
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// withPaths derives the declarations path from the output path when none is
// given and points the generated #include at it.
func withPaths(cfg Config) Config {
	if cfg.Options.SingleFile {
		return cfg
	}
	if cfg.Header == "" {
		cfg.Header = strings.TrimSuffix(cfg.Output, filepath.Ext(cfg.Output)) + ".h"
		if cfg.Header == cfg.Output {
			cfg.Header = cfg.Output + ".h"
		}
	}
	cfg.Options.HeaderName = filepath.Base(cfg.Header)
	return cfg
}

func stamp(cfg Config) string {
	if cfg.Version == "" {
		return ""
	}
	s := "oocgen " + cfg.Version
	if cfg.Command != "" {
		s += ": " + cfg.Command
	}
	return s
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
