// smartfill is a terminal client for the automated crisis-management fill
// form pipeline: it stages documents and free text to S3, starts the
// processing state machine, polls the execution and renders the final
// topic/question report.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var version = "dev"

var (
	cfgFile string
	noTUI   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "smartfill",
		Short:         "Submit crisis documents for automated analysis",
		Long:          "smartfill uploads documents and free text for processing with the\ndocument-analysis pipeline and renders the structured results by topic.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/smartfill/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noTUI, "no-tui", false, "plain line-by-line output instead of the interactive shell")

	rootCmd.AddCommand(newSubmitCmd())
	rootCmd.AddCommand(newStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
