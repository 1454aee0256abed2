package main

import (
	"errors"
	"os"
	"strconv"

	"github.com/emzola/blogapi/repository"
	"github.com/emzola/blogapi/repository/postgres"
	"github.com/emzola/blogapi/service"
	"github.com/spf13/cobra"
)

var superuser struct {
	email    string
	username string
	password string
}

// createSuperuserCmd creates an active staff account with full permissions.
var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an active superuser account",
	Long: `Create an active superuser account. The password may be given with
--password or through the BLOGAPI_SUPERUSER_PASSWORD environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := superuser.password
		if password == "" {
			password = os.Getenv("BLOGAPI_SUPERUSER_PASSWORD")
		}
		if password == "" {
			return errors.New("a password is required")
		}
		ctx := cmd.Context()
		db, err := postgres.OpenDBConn(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		svc := service.New(cfg, logger, repository.New(db), nil)
		user, err := svc.CreateSuperuser(ctx, superuser.email, superuser.username, password)
		if err != nil {
			return err
		}
		logger.PrintInfo("superuser created", map[string]string{
			"id":       strconv.FormatInt(user.ID, 10),
			"email":    user.Email,
			"username": user.Username,
		})
		return nil
	},
}

func init() {
	createSuperuserCmd.Flags().StringVar(&superuser.email, "email", "", "superuser email address")
	createSuperuserCmd.Flags().StringVar(&superuser.username, "username", "", "superuser username")
	createSuperuserCmd.Flags().StringVar(&superuser.password, "password", "", "superuser password")
	_ = createSuperuserCmd.MarkFlagRequired("email")
	_ = createSuperuserCmd.MarkFlagRequired("username")
}
