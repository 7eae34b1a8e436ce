package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imdb-top250/internal/firestore"
	"imdb-top250/internal/output"
	"imdb-top250/internal/scraper"
)

func newFirestoreCommand(f *flags) *cobra.Command {
	firestoreCmd := &cobra.Command{
		Use:   "firestore",
		Short: "Inspect movies published to Firestore",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the movies stored for the chart, by rank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			if cfg.Firestore.ProjectID == "" {
				return fmt.Errorf("firestore.project_id (or GCP_PROJECT_ID) is required")
			}

			ctx := cmd.Context()
			client, err := firestore.New(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection, cfg.GCP.CredentialsFile)
			if err != nil {
				return err
			}
			defer client.Close()

			source := scraper.NewIMDbScraper(cfg.Scrape.URL, nil, nil).Name()
			movies, err := client.MoviesForSource(ctx, source, limit)
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), movies, cfg.Scrape.Format)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of movies to print (0 for all)")

	firestoreCmd.AddCommand(listCmd)
	return firestoreCmd
}
