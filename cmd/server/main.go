package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"assay-backend/internal/config"
)

var (
	configPath string
	port       int
	operator   string

	rootCmd = &cobra.Command{
		Use:   "assayd",
		Short: "Assay counter backend",
		Long: `assayd serves the assaying counter API: customers, the credit ledger,
gold, silver and photo certificates, gold tests, weight loss records and
global settings. Running it without a subcommand starts the server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE:  runMigrate,
	}

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an operator",
		Long: `token prints a signed JWT for the given operator. The API only
requires tokens when jwt.secret (or JWT_SECRET) is set.`,
		RunE: runToken,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "path to the YAML config file")

	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "listen port, overrides server.port")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "listen port, overrides server.port")
	tokenCmd.Flags().StringVarP(&operator, "operator", "o", "", "operator name to embed in the token")
	_ = tokenCmd.MarkFlagRequired("operator")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if port > 0 {
		cfg.Server.Port = port
	}
	return cfg, nil
}
