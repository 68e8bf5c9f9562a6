package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notch-chatbot/internal/common/database"
	"notch-chatbot/internal/knowledge"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy the knowledge base files into PostgreSQL",
	Long: `Validates the JSON documents in the data directory and upserts them into
the knowledge_documents table, creating it when missing. Run this before
switching knowledge.source to postgres.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pg, err := database.NewPostgres(cmd.Context(), cfg.Database.Postgres)
		if err != nil {
			return err
		}
		defer pg.Close()

		stats, err := knowledge.Import(cmd.Context(), pg, knowledge.NewDirSource(cfg.Knowledge.DataDir))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d services, %d case studies, %d use cases and %d expertise domains from %s.\n",
			stats.Services, stats.CaseStudies, stats.UseCases, stats.Domains, cfg.Knowledge.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
