// Command robopay prices robot work shifts from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "robopay",
	Short: "Price robot work shifts",
	Long: `Robopay calculates how much a robot is owed for a work shift,
accounting for day and night rate windows, weekend tariffs and the
mandatory break rhythm.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(breakdownCmd)
	rootCmd.AddCommand(ratesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
