package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/book-replay/internal/usecase/compare"
)

const strictFlagName = "strict"

var errTablesDiffer = errors.New("tables differ")

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().Bool(strictFlagName, false, "Exit with an error when the files differ")
}

var diffCmd = &cobra.Command{
	Use:   "diff <file-a> <file-b>",
	Short: "Compare two CSV files row by row, keyed by their first column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, err := cmd.Flags().GetBool(strictFlagName)
		if err != nil {
			return err
		}

		a, err := compare.ReadFile(args[0])
		if err != nil {
			return err
		}
		b, err := compare.ReadFile(args[1])
		if err != nil {
			return err
		}

		report, err := compare.Diff(a, b)
		if err != nil {
			return err
		}
		report.Write(os.Stdout)

		if strict && !report.Identical() {
			return errTablesDiffer
		}
		return nil
	},
}
