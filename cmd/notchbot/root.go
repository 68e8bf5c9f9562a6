package main

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	dataDir  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "notchbot",
	Short: "Sales assistant for the Notch software agency",
	Long: `notchbot answers prospect questions from the Notch knowledge base
(services, case studies, use cases and expertise), qualifies leads and
emails PDF proposals. The same tools are available to an OpenAI model
in the chat command and to MCP clients over stdio.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: configs/config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "knowledge base directory, overrides knowledge.data_dir")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides logging.level")
}
