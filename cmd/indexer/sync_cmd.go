package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/locvowork/hr_dashboard/internal/bootstrap"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/locvowork/hr_dashboard/internal/service"
	"github.com/spf13/cobra"
)

type syncOutput struct {
	Command    string             `json:"command"`
	DurationMS int64              `json:"duration_ms"`
	Result     service.SyncResult `json:"result"`
}

func newSyncCmd() *cobra.Command {
	var (
		opts  service.SyncOptions
		reset bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the roster API into the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := searchClient()
			if err != nil {
				return err
			}
			if reset {
				if err := index.Clear(ctx); err != nil {
					return err
				}
			}

			roster := service.NewRosterService(bootstrap.NewRosterClient(), service.NewRandomRater(0))
			start := time.Now()
			result, err := service.NewIndexSyncer(roster, index).Sync(ctx, opts)
			if err != nil {
				logger.ErrorLog(ctx, "index sync failed: %v", err)
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(syncOutput{
				Command:    "sync",
				DurationMS: time.Since(start).Milliseconds(),
				Result:     result,
			})
		},
	}

	cmd.Flags().IntVar(&opts.PageSize, "page-size", 50, "Records per roster API request")
	cmd.Flags().IntVar(&opts.MaxRecords, "max", 0, "Stop after this many records (0 = all)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 4, "Concurrent page fetches")
	cmd.Flags().IntVar(&opts.Retries, "retries", 2, "Retries per failed page")
	cmd.Flags().DurationVar(&opts.Backoff, "backoff", 500*time.Millisecond, "Wait between retries")
	cmd.Flags().IntVar(&opts.BatchSize, "batch", 200, "Documents per bulk request")
	cmd.Flags().BoolVar(&reset, "reset", false, "Drop the index before syncing")
	return cmd
}
