package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/channabasavaballolli/Edu-Pay/internal/app"
	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/scheduler"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, "edupay-scheduler"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Infof("Starting fee report scheduler...")

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Initialize cron scheduler
	c := scheduler.New(cfg)

	// Schedule tasks
	if err := scheduler.Register(c, cfg, scheduler.NewJobs(application.Reports, cfg)); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	logger.Infof("Scheduler started (tz=%s, export=%q, sweep=%q)",
		cfg.Scheduler.Timezone, cfg.Scheduler.DailyExportSpec, cfg.Scheduler.DefaulterSweepSpec)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down scheduler...")
	<-c.Stop().Done()
	logger.Infof("Scheduler stopped")
}
