package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/calumari/oocgen/internal/generator"
)

var (
	inspectKind string
	inspectType string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] <file.c>...",
	Short: "Show the resolved hierarchy without writing any file",
	Long: `Scan and resolve the given sources and print, for every class and
struct, its base chain, dispatch slots, object layout and constructor and
destructor chains.

Use --kind to filter by declaration kind (class, struct) and --type to show
a single type.`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectKind, "kind", "k", "", "filter by declaration kind (class, struct)")
	inspectCmd.Flags().StringVarP(&inspectType, "type", "t", "", "show only the named type")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	var kind generator.TypeKind
	switch strings.ToLower(inspectKind) {
	case "":
	case "class":
		kind = generator.KindClass
	case "struct":
		kind = generator.KindStruct
	default:
		return fmt.Errorf("unknown declaration kind: %s", inspectKind)
	}

	res, err := generator.Load(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, res.Diagnostics); err != nil {
		return err
	}

	m := res.Model
	out := cmd.OutOrStdout()
	shown := 0
	for _, id := range m.Store().TypeIDs() {
		td := m.Store().Type(id)
		if kind != 0 && td.Kind != kind {
			continue
		}
		if inspectType != "" && td.Name != inspectType {
			continue
		}
		if shown > 0 {
			fmt.Fprintln(out)
		}
		printType(out, m, td)
		shown++
	}
	if inspectType != "" && shown == 0 {
		return fmt.Errorf("type not found: %s", inspectType)
	}
	return nil
}

func printType(w io.Writer, m *generator.Model, td *generator.TypeDecl) {
	chain := []string{td.Name}
	for _, id := range m.Ancestors(td.ID) {
		chain = append(chain, m.Store().Type(id).Name)
	}
	variant := td.Variant
	if variant == "" {
		variant = "-"
	}
	fmt.Fprintf(w, "%s %s\n", td.Kind, strings.Join(chain, " <- "))
	fmt.Fprintf(w, "  %s %s\n", col("prefix", 10), td.Prefix)
	fmt.Fprintf(w, "  %s %s\n", col("variant", 10), variant)
	fmt.Fprintf(w, "  %s %s\n", col("declared", 10), td.Pos)

	if td.Kind == generator.KindClass {
		fmt.Fprintf(w, "  slots:\n")
		for i, s := range m.VirtualSlots(td.ID) {
			fmt.Fprintf(w, "    %-3d %s %s %s\n", i, col(s.Name, 16),
				col(m.Store().Type(s.Owner).Name, 16), m.Store().Type(s.Introducer).Name)
		}
	}

	fmt.Fprintf(w, "  layout:\n")
	for _, f := range m.ObjectLayout(td.ID) {
		fmt.Fprintf(w, "    %s %s%s\n", col(f.Type, 24), f.Name, f.Suffix)
	}

	printChain(w, m, "init", m.InitChain(td.ID))
	printChain(w, m, "destroy", m.DestroyChain(td.ID))
}

func printChain(w io.Writer, m *generator.Model, label string, steps []generator.ChainStep) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", label)
	for _, s := range steps {
		target := s.Member
		if target == "" {
			target = m.Store().Type(s.Owner).Name
		}
		fmt.Fprintf(w, "    %s %s %s\n", col(s.Kind.String(), 16), col(s.Callee, 20), target)
	}
}

// col pads value to a terminal column width. Longer values are kept whole.
func col(value string, width int) string {
	return runewidth.FillRight(value, width)
}
