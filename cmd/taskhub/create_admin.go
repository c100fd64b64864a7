package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/taskhub/internal/core/security"
	"github.com/99minutos/taskhub/internal/core/service"
	"github.com/99minutos/taskhub/internal/infrastructure/config"
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := initLogger(cfg)

		email, _ := cmd.Flags().GetString("email")
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		st, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer st.close()

		pool, stopPool := startHashPool(ctx, cfg, log)
		defer stopPool()
		tokens := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		auth := service.NewAuthService(st.users, pool, tokens, log)

		user, err := service.NewUserService(st.users, auth, nil, log).CreateAdmin(ctx, email, username, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().String("email", "", "admin email address")
	createAdminCmd.Flags().String("username", "", "admin username")
	createAdminCmd.Flags().String("password", "", "admin password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createAdminCmd)
}
