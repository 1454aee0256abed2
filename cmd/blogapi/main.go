package main

import (
	"fmt"
	"os"

	"github.com/emzola/blogapi/config"
	"github.com/emzola/blogapi/internal/jsonlog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string

	cfg    config.Config
	logger *jsonlog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "blogapi",
	Short: "Blog REST API server",
	Long: `blogapi serves a blog REST API: user registration and activation by
email, JWT sessions, categories, posts with tags, comments and reactions.

Run "blogapi migrate up" once against a fresh database, then "blogapi serve".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.DecodeFile(configPath)
		} else {
			cfg, err = config.Decode()
		}
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		level, err := jsonlog.ParseLevel(cfg.Server.LogLevel)
		if err != nil {
			return err
		}
		logger = jsonlog.New(os.Stdout, level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file (default $BLOGAPI_CONFIG or config.yml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createSuperuserCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
