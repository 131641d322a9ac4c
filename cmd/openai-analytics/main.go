package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dandacompany/openai-analytics/internal/version"
	"github.com/dandacompany/openai-analytics/pkg/integrations/openaianalytics"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "openai-analytics",
	Short: "OpenAI Analytics integration for workflow hosts",
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the integration schema as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(openaianalytics.Schema)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
