package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"disasterreport/services"
)

type Summarizer interface {
	Summary(ctx context.Context) (services.ReportSummary, error)
}

// StartScheduler runs the report summary job on a six-field cron schedule (seconds first).
func StartScheduler(schedule string, reports Summarizer, logger *slog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		SummaryJob(ctx, reports, logger)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cron job %q: %w", schedule, err)
	}

	c.Start()
	logger.Info("scheduler started", "schedule", schedule)
	return c, nil
}

func SummaryJob(ctx context.Context, reports Summarizer, logger *slog.Logger) {
	sum, err := reports.Summary(ctx)
	if err != nil {
		logger.Error("report summary failed", "error", err)
		return
	}
	logger.Info("report summary", "total", sum.Total, "by_status", sum.ByStatus, "by_urgency", sum.ByUrgency)
}
