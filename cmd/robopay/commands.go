package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DavidLHW/robot-salary-calculator/factory"
	"github.com/DavidLHW/robot-salary-calculator/shift"
)

var (
	calcInput     string
	breakdownFile string
	ratesFile     string
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Price a shift and print its value",
	Long: `Calc reads an input document holding the shift boundaries and the
roboRate tariff, prices the shift and prints {"value": N}. JSON and
YAML documents are supported, chosen by file extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInput(calcInput)
		if err != nil {
			return err
		}

		calc := shift.Calculator{Rates: in.Rates, Policy: in.Policy}
		value, err := calc.Quote(in.Start, in.End)
		if err != nil {
			return err
		}

		out, _ := json.Marshal(map[string]int64{"value": value})
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Price a shift day by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInput(breakdownFile)
		if err != nil {
			return err
		}

		calc := shift.Calculator{Rates: in.Rates, Policy: in.Policy}
		days, err := calc.Itemize(in.Start, in.End)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%-12s %-12s %10s %10s %12s\n", "DATE", "ROLE", "DAY MIN", "NIGHT MIN", "PAY")
		for _, d := range days {
			fmt.Fprintf(w, "%-12s %-12s %10s %10s %12s\n",
				d.Date.Format("2006-01-02"), d.Role,
				d.Minutes.Day.String(), d.Minutes.Night.String(), d.Pay.String())
		}

		total, err := calc.TotalPay(in.Start, in.End)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "total: %s (value %d)\n", total.String(), total.IntPart())
		return nil
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Work with roboRate tariff documents",
}

var ratesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a roboRate tariff document",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(ratesFile)
		if err != nil {
			return err
		}

		if isYAML(ratesFile) {
			_, err = factory.ParseRateYAML(data)
		} else {
			_, err = factory.ParseRateJSON(data)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", ratesFile)
		return nil
	},
}

func init() {
	calcCmd.Flags().StringVarP(&calcInput, "input", "i", "input.json", "input document (JSON or YAML)")
	breakdownCmd.Flags().StringVarP(&breakdownFile, "input", "i", "input.json", "input document (JSON or YAML)")
	ratesValidateCmd.Flags().StringVarP(&ratesFile, "file", "f", "rates.json", "tariff document (JSON or YAML)")
	ratesCmd.AddCommand(ratesValidateCmd)
}

func loadInput(path string) (factory.QuoteInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return factory.QuoteInput{}, err
	}
	if isYAML(path) {
		return factory.ParseInputYAML(data)
	}
	return factory.ParseInputJSON(data)
}

func isYAML(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
