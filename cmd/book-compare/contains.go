package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/book-replay/internal/usecase/compare"
)

const columnsFlagName = "columns"

func init() {
	rootCmd.AddCommand(containsCmd)
	containsCmd.Flags().IntSlice(columnsFlagName, []int{0, 1}, "Column indices forming the lookup key")
}

var containsCmd = &cobra.Command{
	Use:   "contains <reference> <file>...",
	Short: "Check whether the key columns of each row exist in a reference file",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		columns, err := cmd.Flags().GetIntSlice(columnsFlagName)
		if err != nil {
			return err
		}

		reference, err := compare.ReadFile(args[0])
		if err != nil {
			return err
		}

		sources := make([]*compare.Table, 0, len(args)-1)
		for _, path := range args[1:] {
			table, err := compare.ReadFile(path)
			if err != nil {
				return err
			}
			sources = append(sources, table)
		}

		report, err := compare.Contains(columns, reference, sources...)
		if err != nil {
			return err
		}
		report.Write(os.Stdout)
		return nil
	},
}
