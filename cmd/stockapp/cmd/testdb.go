package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database/mongodb"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/infra/database/postgres"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/config"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/pkg/logger"
)

// testDBCmd is the connectivity smoke test
var testDBCmd = &cobra.Command{
	Use:   "test-db",
	Short: "Connectivity smoke test for both databases",
	Long:  `Attempts a round trip against PostgreSQL and MongoDB using the configured connection strings. Exits non-zero if either connection fails.`,
	RunE:  runTestDB,
}

func runTestDB(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "stockapp-test-db",
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failures := 0

	fmt.Println("Testing PostgreSQL connection...")
	if pool, err := postgres.NewConnector(cfg).Connect(ctx); err != nil {
		failures++
		fmt.Printf("❌ PostgreSQL: %v\n", err)
	} else {
		fmt.Println("✅ PostgreSQL: connection OK")
		pool.Close()
	}

	fmt.Println("Testing MongoDB connection...")
	mongoConn := mongodb.NewConnector(cfg)
	if _, err := mongoConn.Connect(ctx); err != nil {
		failures++
		fmt.Printf("❌ MongoDB: %v\n", err)
	} else {
		fmt.Println("✅ MongoDB: connection OK")
		_ = mongoConn.Disconnect(ctx)
	}

	if failures > 0 {
		return fmt.Errorf("%d database check(s) failed", failures)
	}

	fmt.Println("✅ All database connections OK")
	return nil
}
