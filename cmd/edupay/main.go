package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/channabasavaballolli/Edu-Pay/internal/app"
	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "edupay",
		Short:   "Edu-Pay admin tools for fee reports",
		Version: Version,
	}

	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(defaultersCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadApp wires the same services the server uses. Logs go to stderr only
// when --verbose is set.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if err := logger.Init(cfg.Logging.Level, "console", "edupay-cli"); err != nil {
			return nil, err
		}
	}

	return app.New(context.Background(), cfg)
}
