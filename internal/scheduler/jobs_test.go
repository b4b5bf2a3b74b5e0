package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/channabasavaballolli/Edu-Pay/internal/config"
	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/internal/mocks"
)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Scheduler: config.SchedulerConfig{
			Timezone:           "Asia/Kolkata",
			DailyExportSpec:    "0 0 0 * * *",
			DefaulterSweepSpec: "0 0 9 * * MON",
		},
		Reports: config.ReportsConfig{OutputDir: dir},
	}
}

func TestDailyExport_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	reports := &mocks.MockReportService{}
	jobs := NewJobs(reports, testConfig(dir))
	jobs.now = func() time.Time { return time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC) }

	reports.On("Export", mock.Anything, domain.ExportRequest{
		Type:   domain.ReportDaily,
		Format: domain.FormatCSV,
		From:   "2025-01-15",
		To:     "2025-01-15",
	}).Return(&domain.ExportDocument{Filename: "BEC_daily_report.csv", Body: []byte("Section,Key,Value\n")}, nil)

	path, err := jobs.DailyExport(context.Background())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-01-15_BEC_daily_report.csv"), path)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Section,Key,Value\n", string(body))
}

func TestDailyExport_ExportError(t *testing.T) {
	reports := &mocks.MockReportService{}
	jobs := NewJobs(reports, testConfig(t.TempDir()))
	reports.On("Export", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := jobs.DailyExport(context.Background())

	assert.Error(t, err)
}

func TestDefaulterSweep(t *testing.T) {
	reports := &mocks.MockReportService{}
	jobs := NewJobs(reports, testConfig(t.TempDir()))
	reports.On("Defaulters", mock.Anything).Return([]domain.Defaulter{
		{StudentID: "2", StudentName: "Priya Singh", Amount: decimal.NewFromInt(56000)},
		{StudentID: "3", StudentName: "Amit Patel", Amount: decimal.NewFromInt(56000)},
	}, nil)

	total, err := jobs.DefaulterSweep(context.Background())

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(112000)))
}

func TestRegister(t *testing.T) {
	cfg := testConfig(t.TempDir())
	c := New(cfg)

	require.NoError(t, Register(c, cfg, NewJobs(&mocks.MockReportService{}, cfg)))
	assert.Len(t, c.Entries(), 2)

	cfg.Scheduler.DefaulterSweepSpec = "every tuesday"
	assert.Error(t, Register(New(cfg), cfg, NewJobs(&mocks.MockReportService{}, cfg)))
}
