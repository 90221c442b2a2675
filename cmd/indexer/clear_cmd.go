package main

import (
	"github.com/locvowork/hr_dashboard/internal/config"
	"github.com/locvowork/hr_dashboard/internal/logger"
	"github.com/spf13/cobra"
)

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the search index",
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := searchClient()
			if err != nil {
				return err
			}
			if err := index.Clear(cmd.Context()); err != nil {
				return err
			}
			logger.InfoLog(cmd.Context(), "index %q cleared", config.DefaultEnvConfig.ELASTIC_INDEX)
			return nil
		},
	}
}
