package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database/postgres"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/config"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/logger"
)

// migrateCmd creates the application schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the application schema",
	Long:  `Creates the watchlist table with its unique (user_id, symbol) index, plus the auth-owned user and session tables. Statements are idempotent.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "stockapp-migrate",
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := postgres.NewConnector(cfg).Connect(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}

	fmt.Println("✅ Schema migration complete")
	return nil
}
