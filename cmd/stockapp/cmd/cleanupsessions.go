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

// cleanupSessionsCmd purges expired session rows
var cleanupSessionsCmd = &cobra.Command{
	Use:   "cleanup-sessions",
	Short: "Delete expired session rows",
	Long:  `Deletes session rows past their expiry. Expired sessions are already rejected at lookup time; this reclaims the storage. Intended to run from cron.`,
	RunE:  runCleanupSessions,
}

func runCleanupSessions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "stockapp-cleanup-sessions",
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

	deleted, err := postgres.NewAuthStore(pool).DeleteExpiredSessions(ctx)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		return err
	}

	fmt.Printf("✅ Deleted %d expired session(s)\n", deleted)
	return nil
}
