package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/logger"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

const jobTimeout = 2 * time.Minute

// Reporter is the slice of the report service the jobs need.
type Reporter interface {
	Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportDocument, error)
	Defaulters(ctx context.Context) ([]domain.Defaulter, error)
}

type Jobs struct {
	reports   Reporter
	outputDir string
	now       func() time.Time
}

func NewJobs(reports Reporter, cfg *config.Config) *Jobs {
	loc := cfg.GetSchedulerLocation()
	return &Jobs{
		reports:   reports,
		outputDir: cfg.Reports.OutputDir,
		now:       func() time.Time { return time.Now().In(loc) },
	}
}

// DailyExport writes the previous day's CSV report into the output directory
// and returns the file path.
func (j *Jobs) DailyExport(ctx context.Context) (string, error) {
	day := utils.FormatDate(j.now().AddDate(0, 0, -1))
	req := domain.ExportRequest{
		Type:   domain.ReportDaily,
		Format: domain.FormatCSV,
		From:   day,
		To:     day,
	}

	doc, err := j.reports.Export(ctx, req)
	if err != nil {
		return "", fmt.Errorf("export daily report: %w", err)
	}

	if err := os.MkdirAll(j.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(j.outputDir, day+"_"+doc.Filename)
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	logger.Info(ctx, "daily report exported",
		zap.String("path", path),
		zap.String("source", doc.Source),
		zap.Int("bytes", len(doc.Body)),
	)
	return path, nil
}

// DefaulterSweep logs every student with overdue dues and returns the total.
func (j *Jobs) DefaulterSweep(ctx context.Context) (decimal.Decimal, error) {
	defaulters, err := j.reports.Defaulters(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list defaulters: %w", err)
	}

	total := decimal.Zero
	for _, d := range defaulters {
		total = total.Add(d.Amount)
		logger.Warn(ctx, "student has overdue fees",
			zap.String("studentId", d.StudentID),
			zap.String("studentName", d.StudentName),
			zap.String("amount", d.Amount.StringFixed(2)),
		)
	}

	logger.Info(ctx, "defaulter sweep finished",
		zap.Int("defaulters", len(defaulters)),
		zap.String("total", total.StringFixed(2)),
	)
	return total, nil
}

// New returns a seconds-resolution cron in the configured time zone.
func New(cfg *config.Config) *cron.Cron {
	return cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetSchedulerLocation()))
}

// Register schedules the daily export and the defaulter sweep.
func Register(c *cron.Cron, cfg *config.Config, jobs *Jobs) error {
	_, err := c.AddFunc(cfg.Scheduler.DailyExportSpec, func() {
		ctx, cancel := context.WithTimeout(logger.WithRequestID(context.Background(), "cron-daily-export"), jobTimeout)
		defer cancel()

		logger.Info(ctx, "Running daily report export job...")
		if _, err := jobs.DailyExport(ctx); err != nil {
			logger.Error(ctx, "daily report export failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule daily export %q: %w", cfg.Scheduler.DailyExportSpec, err)
	}

	_, err = c.AddFunc(cfg.Scheduler.DefaulterSweepSpec, func() {
		ctx, cancel := context.WithTimeout(logger.WithRequestID(context.Background(), "cron-defaulter-sweep"), jobTimeout)
		defer cancel()

		logger.Info(ctx, "Running weekly defaulter sweep job...")
		if _, err := jobs.DefaulterSweep(ctx); err != nil {
			logger.Error(ctx, "defaulter sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule defaulter sweep %q: %w", cfg.Scheduler.DefaulterSweepSpec, err)
	}

	return nil
}
