package main

import (
	"fmt"
	"os"

	"github.com/acoruss/acoruss.github.io/config"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "acoruss-payments",
		Short:        "Acoruss payment gateway proxy",
		Version:      Version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(servicesCmd())
	rootCmd.AddCommand(webhooksCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	cfg.Log.Configure()
	return cfg, nil
}
