package main

import (
	"github.com/emzola/blogapi/repository/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|version|reset]",
	Short:     "Apply or inspect the database schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "version", "reset"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		db, err := postgres.OpenDBConn(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		return postgres.Migrate(ctx, db, logger, args[0])
	},
}
