package main

import (
	"github.com/acoruss/acoruss.github.io/internal/repository/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := cfg.DB.GormConnect()
			if err != nil {
				return err
			}
			if err := store.AutoMigrate(db); err != nil {
				return err
			}
			logrus.WithField("driver", cfg.DB.DRIVER).Info("schema up to date")
			return nil
		},
	}
}
