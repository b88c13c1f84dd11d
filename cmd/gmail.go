package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"resume-screener/internal/ingestion"
	"resume-screener/internal/logger"
)

var gmailCmd = &cobra.Command{
	Use:   "gmail",
	Short: "Gmail inbox ingestion",
}

var gmailAuthorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Authorize access to the hiring inbox and cache the token",
	RunE: func(cmd *cobra.Command, _ []string) error {
		config, err := getConfig()
		if err != nil {
			return err
		}
		return ingestion.Authorize(cmd.Context(), ingestion.GmailConfig{
			CredentialsFile: config.Gmail.CredentialsFile,
			TokenFile:       config.Gmail.TokenFile,
		})
	},
}

var gmailFetchCmd = &cobra.Command{
	Use:   "fetch [subject]",
	Short: "Download resume attachments matching a subject into the uploads directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}
		defer logger.Sync()

		config, err := getConfig()
		if err != nil {
			return err
		}

		gmail, err := ingestion.NewGmailHandler(cmd.Context(), ingestion.GmailConfig{
			CredentialsFile: config.Gmail.CredentialsFile,
			TokenFile:       config.Gmail.TokenFile,
		}, config.Storage.UploadsDir, logger)
		if err != nil {
			return err
		}

		saved, err := gmail.FetchAttachments(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		logger.Info("attachments downloaded", zap.Int("count", len(saved)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gmailCmd)
	gmailCmd.AddCommand(gmailAuthorizeCmd)
	gmailCmd.AddCommand(gmailFetchCmd)
}
