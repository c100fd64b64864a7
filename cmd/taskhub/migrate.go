package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/taskhub/internal/infrastructure/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending migrations (SQL) or ensure indexes (Mongo)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := initLogger(cfg)

		st, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer st.close()

		ran, err := st.setup(ctx)
		if err != nil {
			return err
		}
		if len(ran) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate")
			return nil
		}
		for _, step := range ran {
			fmt.Fprintln(cmd.OutOrStdout(), "Applied", step)
		}
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display status of each SQL migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := initLogger(cfg)

		st, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer st.close()

		if st.status == nil {
			return errors.New("migration status is only available for SQL stores")
		}
		statuses, err := st.status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-40s %s\n", s.Version, state)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
