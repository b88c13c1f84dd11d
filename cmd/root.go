package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-screener/internal/extract"
	"resume-screener/internal/ingestion"
	"resume-screener/internal/screener"
	"resume-screener/internal/store"

	"go.uber.org/zap"
)

const (
	app = "resume-screener"
)

type Config struct {
	Server   *ServerConfig   `mapstructure:"server"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Matching *MatchingConfig `mapstructure:"matching"`
	Gmail    *GmailConfig    `mapstructure:"gmail"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type StorageConfig struct {
	UploadsDir   string `mapstructure:"uploads-dir"`
	DatabasePath string `mapstructure:"database-path"`
}

type MatchingConfig struct {
	SkillVocabulary []string `mapstructure:"skill-vocabulary"`
	TokenBoundary   bool     `mapstructure:"token-boundary"`
}

type GmailConfig struct {
	CredentialsFile string `mapstructure:"credentials-file"`
	TokenFile       string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener ranks resumes against a job description and serves the results",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("storage.uploads-dir", "uploads")
	viper.SetDefault("storage.database-path", "resume-screener.db")
	viper.SetDefault("gmail.credentials-file", "credentials.json")
	viper.SetDefault("gmail.token-file", "token.json")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// The config file is optional; flags and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	config := &Config{
		Server:   &ServerConfig{},
		Storage:  &StorageConfig{},
		Matching: &MatchingConfig{},
		Gmail:    &GmailConfig{},
	}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	return config, nil
}

// newScreener assembles the screener and its collaborators from config.
// The returned store must be closed by the caller.
func newScreener(config *Config, logger *zap.Logger) (*screener.Screener, *store.Store, error) {
	st, err := store.Open(config.Storage.DatabasePath)
	if err != nil {
		return nil, nil, err
	}

	extractor := extract.New(extract.Config{
		Vocabulary:    config.Matching.SkillVocabulary,
		TokenBoundary: config.Matching.TokenBoundary,
	})
	fileHandler := ingestion.NewFileHandler(config.Storage.UploadsDir)

	return screener.New(st, extractor, fileHandler, logger), st, nil
}
