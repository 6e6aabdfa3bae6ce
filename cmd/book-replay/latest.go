package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/book-replay/internal/bootstrap"
)

const instrumentFlagName = "instrument"

func init() {
	rootCmd.AddCommand(latestCmd)
	latestCmd.Flags().String(instrumentFlagName, "", "Instrument to look up")
	_ = latestCmd.MarkFlagRequired(instrumentFlagName)
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the latest stored snapshot of an instrument as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		instrument, err := cmd.Flags().GetString(instrumentFlagName)
		if err != nil {
			return err
		}

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		b, err := bootstrap.Init(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer b.Close(ctx)

		if len(b.Stores) == 0 {
			return fmt.Errorf("no snapshot store enabled, set REDIS_ENABLED or QUESTDB_ENABLED")
		}

		for _, store := range b.Stores {
			snapshot, err := store.LoadLatest(ctx, instrument)
			if err != nil {
				return err
			}
			if snapshot == nil {
				continue
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Source     string `json:"source"`
				Instrument string `json:"instrument"`
				Snapshot   any    `json:"snapshot"`
			}{
				Source:     store.Name(),
				Instrument: instrument,
				Snapshot:   snapshot,
			})
		}

		return fmt.Errorf("no snapshot stored for instrument %s", instrument)
	},
}
