package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/calumari/oocgen/internal/generator"
)

// projectConfig mirrors oocgen.toml. Only keys present in the file override
// defaults; meta records which ones were set.
type projectConfig struct {
	Path    string            `toml:"-"`
	Inputs  []string          `toml:"inputs"`
	Output  string            `toml:"output"`
	Header  string            `toml:"header"`
	Options optionsConfig     `toml:"options"`
	Runtime generator.Runtime `toml:"runtime"`

	meta toml.MetaData
}

type optionsConfig struct {
	StaticTables        bool   `toml:"static_tables"`
	Debug               bool   `toml:"debug"`
	Root                string `toml:"root"`
	SingleFile          bool   `toml:"single_file"`
	MaxIdentifierLength int    `toml:"max_identifier_length"`
	MaxDiagnostics      int    `toml:"max_diagnostics"`
}

// loadProjectConfig reads the config at path. A missing file is not an
// error unless required is set; the bool result reports whether one was read.
func loadProjectConfig(path string, required bool) (*projectConfig, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to stat %q: %w", path, err)
	}

	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, true, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, true, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("options", "max_identifier_length") && cfg.Options.MaxIdentifierLength <= 0 {
		return nil, true, fmt.Errorf("%s: [options].max_identifier_length must be positive", path)
	}
	if meta.IsDefined("runtime", "array_growth") && cfg.Runtime.ArrayGrowth <= 0 {
		return nil, true, fmt.Errorf("%s: [runtime].array_growth must be positive", path)
	}

	cfg.Path = path
	cfg.meta = meta
	// paths in the file are relative to the file
	dir := filepath.Dir(path)
	for i, in := range cfg.Inputs {
		cfg.Inputs[i] = resolvePath(dir, in)
	}
	cfg.Output = resolvePath(dir, cfg.Output)
	cfg.Header = resolvePath(dir, cfg.Header)
	return &cfg, true, nil
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// apply copies every value defined in the file onto cfg.
func (pc *projectConfig) apply(cfg *generator.Config) {
	if pc == nil {
		return
	}
	if len(pc.Inputs) > 0 {
		cfg.Inputs = append([]string(nil), pc.Inputs...)
	}
	if pc.Output != "" {
		cfg.Output = pc.Output
	}
	if pc.Header != "" {
		cfg.Header = pc.Header
	}

	o := &cfg.Options
	if pc.meta.IsDefined("options", "static_tables") {
		o.StaticTableInit = pc.Options.StaticTables
	}
	if pc.meta.IsDefined("options", "debug") {
		o.DebugMode = pc.Options.Debug
	}
	if pc.meta.IsDefined("options", "root") {
		o.RootTypeName = pc.Options.Root
	}
	if pc.meta.IsDefined("options", "single_file") {
		o.SingleFile = pc.Options.SingleFile
	}
	if pc.meta.IsDefined("options", "max_identifier_length") {
		o.MaxIdentifierLength = pc.Options.MaxIdentifierLength
	}
	if pc.meta.IsDefined("options", "max_diagnostics") {
		cfg.MaxDiagnostics = pc.Options.MaxDiagnostics
	}

	rt := &o.Runtime
	if pc.meta.IsDefined("runtime", "array_type") {
		rt.ArrayType = pc.Runtime.ArrayType
	}
	if pc.meta.IsDefined("runtime", "array_init") {
		rt.ArrayInit = pc.Runtime.ArrayInit
	}
	if pc.meta.IsDefined("runtime", "array_clear") {
		rt.ArrayClear = pc.Runtime.ArrayClear
	}
	if pc.meta.IsDefined("runtime", "array_growth") {
		rt.ArrayGrowth = pc.Runtime.ArrayGrowth
	}
	if pc.meta.IsDefined("runtime", "alloc") {
		rt.Alloc = pc.Runtime.Alloc
	}
	if pc.meta.IsDefined("runtime", "free") {
		rt.Free = pc.Runtime.Free
	}
}
