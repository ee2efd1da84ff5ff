package main

import (
	"log/slog"
	"os"

	"github.com/SscSPs/bizbooks_backend/internal/middleware"
	"github.com/SscSPs/bizbooks_backend/internal/platform/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "bizbooks_backend",
	Short:        "Double-entry bookkeeping API with ledger reports",
	Long:         "BizBooks keeps a chart of accounts and journals per owner and serves trial balance, day book, account summary and aging reports over HTTP.",
	SilenceUsage: true,
}

// @title BizBooks Backend API
// @version 1.0
// @description Bookkeeping and reporting API for BizBooks.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadRuntime reads the configuration and installs the process logger.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := middleware.NewLogger(cfg.LogLevel.String())
	slog.SetDefault(logger)
	return cfg, logger, nil
}
