package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/calumari/oocgen/internal/diag"
	"github.com/calumari/oocgen/internal/generator"
)

var errStrict = errors.New("generation reported errors")

var (
	genOutput         string
	genHeader         string
	genSingleFile     bool
	genDebug          bool
	genDynamicTables  bool
	genRoot           string
	genMaxIdent       int
	genMaxDiagnostics int
	genJobs           int
	genStrict         bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <file.c>...",
	Short: "Write the declarations and bodies for every [ooc] block",
	Long: `Scan the given C sources (or the inputs listed in oocgen.toml) for
[ooc] blocks and write the generated declarations header and bodies file.

The header path defaults to the output path with a .h extension.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genOutput, "output", "o", "", "bodies file, or the only file with --single-file")
	f.StringVar(&genHeader, "header", "", "declarations file (default: output with .h extension)")
	f.BoolVar(&genSingleFile, "single-file", false, "write declarations and bodies into one file")
	f.BoolVar(&genDebug, "debug", false, "emit typed self casts in method bodies")
	f.BoolVar(&genDynamicTables, "dynamic-tables", false, "fill dispatch tables at run time instead of statically")
	f.StringVar(&genRoot, "root", "Object", "implicit base class of classes declared without one")
	f.IntVar(&genMaxIdent, "max-ident", 31, "report generated identifiers longer than this")
	f.IntVar(&genMaxDiagnostics, "max-diagnostics", 500, "maximum number of diagnostics to keep")
	f.IntVarP(&genJobs, "jobs", "j", 0, "concurrent file reads (0 = GOMAXPROCS)")
	f.BoolVar(&genStrict, "strict", false, "exit with an error if any error diagnostic was reported")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logf(cmd, "scanning %d file(s)", len(cfg.Inputs))

	res, err := generator.Run(cmd.Context(), cfg)
	if res != nil {
		if rerr := reportDiagnostics(cmd, res.Diagnostics); rerr != nil && err == nil {
			err = rerr
		}
	}
	if err != nil {
		return err
	}
	for _, path := range res.Written {
		logf(cmd, "wrote %s", path)
	}
	if genStrict && res.Diagnostics.HasErrors() {
		return errStrict
	}
	return nil
}

// buildConfig layers defaults, the project file and explicit flags, in that
// order.
func buildConfig(cmd *cobra.Command, args []string) (generator.Config, error) {
	cfg := generator.Config{
		Options: generator.DefaultOptions(),
		Version: deriveVersion(),
	}

	root := cmd.Root().PersistentFlags()
	path, err := root.GetString("config")
	if err != nil {
		return cfg, err
	}
	required := root.Changed("config") || env.Has("OOCGEN_CONFIG")
	pc, found, err := loadProjectConfig(path, required)
	if err != nil {
		return cfg, err
	}
	if found {
		logf(cmd, "using %s", path)
	}
	pc.apply(&cfg)

	if len(args) > 0 {
		cfg.Inputs = args
	}
	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output = genOutput
	}
	if f.Changed("header") {
		cfg.Header = genHeader
	}
	if f.Changed("single-file") {
		cfg.Options.SingleFile = genSingleFile
	}
	if f.Changed("debug") {
		cfg.Options.DebugMode = genDebug
	}
	if f.Changed("dynamic-tables") {
		cfg.Options.StaticTableInit = !genDynamicTables
	}
	if f.Changed("root") {
		cfg.Options.RootTypeName = genRoot
	}
	if f.Changed("max-ident") {
		cfg.Options.MaxIdentifierLength = genMaxIdent
	}
	if f.Changed("max-diagnostics") || cfg.MaxDiagnostics == 0 {
		cfg.MaxDiagnostics = genMaxDiagnostics
	}
	cfg.Jobs = genJobs
	cfg.Command = displayCommand(cfg)
	return cfg, nil
}

// displayCommand builds a canonical command line for the generated banner.
// Paths are reduced to base names so the output does not depend on where the
// tool ran.
func displayCommand(cfg generator.Config) string {
	parts := []string{"oocgen", "generate"}
	if cfg.Output != "" {
		parts = append(parts, "-o", filepath.Base(cfg.Output))
	}
	if cfg.Options.SingleFile {
		parts = append(parts, "--single-file")
	}
	if cfg.Options.DebugMode {
		parts = append(parts, "--debug")
	}
	if !cfg.Options.StaticTableInit {
		parts = append(parts, "--dynamic-tables")
	}
	for _, in := range cfg.Inputs {
		parts = append(parts, filepath.Base(in))
	}
	return strings.Join(parts, " ")
}

func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	w := cmd.ErrOrStderr()
	if err := diag.Format(w, bag.Items(), !color.NoColor); err != nil {
		return err
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", n)
	}
	return nil
}
