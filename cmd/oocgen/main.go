package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

const defaultConfigFile = "oocgen.toml"

var rootCmd = &cobra.Command{
	Use:   "oocgen",
	Short: "Generate C dispatch tables and object layouts from [ooc] declarations",
	Long: `oocgen reads class and struct declarations from /* [ooc] ... */ comment
blocks in C sources and writes the C code that implements them: dispatch
tables, inherited object layouts, constructor and destructor chains and
method skeletons.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		switch mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
			color.NoColor = !isTerminal(os.Stderr)
		default:
			return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", env.Str("OOCGEN_CONFIG", defaultConfigFile), "project configuration file (env OOCGEN_CONFIG)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "report progress on stderr")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	rootCmd.Version = deriveVersion()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "oocgen: %v\n", err)
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logf writes a progress line to the command's stderr when --verbose is set.
func logf(cmd *cobra.Command, format string, args ...any) {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	if !verbose {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "oocgen: "+format+"\n", args...)
}
