package main

import (
	"github.com/spf13/cobra"

	"github.com/muhammadchandra19/book-replay/internal/bootstrap"
	"github.com/muhammadchandra19/book-replay/pkg/logger"
	"github.com/muhammadchandra19/book-replay/pkg/util"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [instrument-dir...]",
	Short: "Replay instrument directories and export their snapshots",
	Long: "Replay every instrument directory given as argument, or INPUT_DIRS when none is given. " +
		"The book is written next to each order file and to every enabled sink.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, log, err := setup(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		dirs := args
		if len(dirs) == 0 {
			dirs = cfg.Input.Dirs
		}

		b, err := bootstrap.Init(ctx, cfg, log)
		if err != nil {
			log.ErrorContext(ctx, err)
			return err
		}
		defer b.Close(ctx)

		outcomes, err := b.Runner().Run(ctx, dirs)
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				continue
			}
			log.InfoContext(util.WithRunID(ctx, outcome.RunID), "replay summary",
				logger.NewField("instrument", outcome.Instrument),
				logger.NewField("output", outcome.Output),
				logger.NewField("snapshots", outcome.Snapshots),
				logger.NewField("counters", outcome.Counters),
				logger.NewField("cvl", outcome.Stats.CumulativeVolume),
				logger.NewField("lpr", outcome.Stats.LastPrice.StringFixed(2)),
				logger.NewField("nts", outcome.Stats.TradeCount),
				logger.NewField("elapsed", outcome.Elapsed.String()),
			)
		}
		return err
	},
}
