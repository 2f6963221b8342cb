// slipscore reads salary slips, checks them, and scores the lending risk.
//
// Usage:
//
//	slipscore serve
//	slipscore analyze slip.pdf other.png [--password=...]
//	slipscore analyze --text "Employee Name: ... Net Pay: ..."
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "slipscore",
	Short: "Salary slip extraction, validation and risk scoring",
	Long:  "slipscore OCRs salary slips, extracts and reconciles their pay figures,\nchecks them for anomalies and produces an eligibility decision.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
