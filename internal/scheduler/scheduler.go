package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/alerthe/alerthe-server/internal/config"
	"github.com/alerthe/alerthe-server/internal/service/reporting"
)

// Scheduler manages the automatic monthly report export.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.ReportingConfig
	loc          *time.Location
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the report
// timezone.
func NewScheduler(cfg config.ReportingConfig, loc *time.Location, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		loc:          loc,
		logger:       logger,
	}
}

// Start registers the export job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.exportPreviousMonth)
	if err != nil {
		s.logger.Error("failed to schedule monthly export", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler. A job already in flight completes and its
// result is kept; the report filename is deterministic so the next run
// overwrites nothing new.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) exportPreviousMonth() {
	// The job normally fires on the first day of a month; the target is
	// always the month that just ended.
	now := time.Now().In(s.loc)
	lastOfPrev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc).AddDate(0, 0, -1)
	year, month := lastOfPrev.Year(), lastOfPrev.Month()

	s.logger.Info("generating scheduled monthly report",
		zap.Int("year", year), zap.String("month", month.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := s.reportingSvc.GenerateMonthlyReport(ctx, year, month)
	if err != nil {
		s.logger.Error("failed to generate scheduled report", zap.Error(err))
		return
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		s.logger.Error("failed to create report output dir", zap.Error(err))
		return
	}

	path := filepath.Join(s.cfg.OutputDir, report.Filename)
	if err := os.WriteFile(path, report.Content, 0o644); err != nil {
		s.logger.Error("failed to write scheduled report", zap.Error(err), zap.String("path", path))
		return
	}

	s.logger.Info("scheduled report exported", zap.String("path", path))
}
