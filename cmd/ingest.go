package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"resume-screener/internal/export"
	"resume-screener/internal/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [job description file]",
	Short: "Ingest resumes from the uploads directory and print the ranked report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return ingest(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringP("export", "o", "", "write the ranked report to an Excel file")
}

// ingest is the one-shot CLI path: load every resume from the uploads
// directory, rank against the given job description and print the result.
func ingest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	sc, st, err := newScreener(config, logger)
	if err != nil {
		logger.Fatal("opening the candidate store", zap.Error(err))
	}
	defer st.Close()

	if len(args) == 1 {
		jdText, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading job description: %w", err)
		}
		sc.SetJobDescription(string(jdText))
	}

	summary, err := sc.IngestUploads(ctx)
	if err != nil {
		return err
	}
	logger.Info("ingestion finished",
		zap.Int("added", summary.Added),
		zap.Int("duplicates", summary.Duplicates),
		zap.Int("failed", summary.Failed),
	)

	report, err := sc.Report(ctx)
	if err != nil {
		return err
	}

	for _, c := range report.Candidates {
		fmt.Printf("%3d. %-30s %3d%%  %s\n", c.Rank, c.Name, c.MatchPercentage, c.SkillsDisplay())
	}

	if out, _ := cmd.Flags().GetString("export"); out != "" {
		if err := export.ExportToExcel(report, out); err != nil {
			return err
		}
		logger.Info("report exported", zap.String("path", out))
	}

	return nil
}
