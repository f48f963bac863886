package main

import (
	"github.com/acoruss/acoruss.github.io/internal/app"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the payments API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			myApp := &app.App{}
			if err := myApp.Initialize(cfg); err != nil {
				return err
			}
			return myApp.Run()
		},
	}
}
