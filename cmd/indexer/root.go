package main

import (
	"errors"
	"fmt"

	"github.com/locvowork/hr_dashboard/internal/bootstrap"
	"github.com/locvowork/hr_dashboard/internal/database"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "indexer",
		Short:        "Maintain the employee search index",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Setup(cmd.Context())
		},
	}
	cmd.AddCommand(newSyncCmd(), newClearCmd())
	return cmd
}

// searchClient returns the configured Elasticsearch client.
func searchClient() (*database.ElasticSearchClient, error) {
	client, err := bootstrap.NewSearchClient()
	if err != nil {
		return nil, fmt.Errorf("connect elasticsearch: %w", err)
	}
	if client == nil {
		return nil, errors.New("ELASTIC_URL is not set")
	}
	return client, nil
}
