package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"agrobooks/internal/domain/trade"
	"agrobooks/internal/platform/querier"
)

const (
	JobOverdueScan = "overdue_scan"

	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type OverdueSource interface {
	Overdue(ctx context.Context, thresholdDays int) (trade.OverdueReport, error)
}

type Recorder interface {
	RecordJob(jobType, status string)
	SetOverdue(receivable, payable decimal.Decimal, customers, suppliers int)
}

type Options struct {
	OverdueDays         int
	OverdueScanInterval time.Duration
}

type Service struct {
	DB      querier.Querier
	overdue OverdueSource
	metrics Recorder
	opts    Options
	queue   chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

// New builds the job runner. db and metrics may be nil; runs are then neither
// persisted nor counted.
func New(db querier.Querier, overdue OverdueSource, metrics Recorder, opts Options) *Service {
	return &Service{
		DB:      db,
		overdue: overdue,
		metrics: metrics,
		opts:    opts,
		queue:   make(chan job, 32),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.opts.OverdueScanInterval > 0 {
		go s.scheduleOverdueScan(ctx, s.opts.OverdueScanInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// ScanOverdue runs the overdue scan synchronously and returns its report.
func (s *Service) ScanOverdue(ctx context.Context) (trade.OverdueReport, error) {
	details, err := s.RunNow(ctx, JobOverdueScan, s.scanOverdue)
	report, _ := details.(trade.OverdueReport)
	return report, err
}

func (s *Service) scanOverdue(ctx context.Context) (any, error) {
	report, err := s.overdue.Overdue(ctx, s.opts.OverdueDays)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.SetOverdue(report.Receivable, report.Payable, len(report.Sales), len(report.Purchases))
	}
	slog.Info("overdue scan finished",
		"thresholdDays", report.ThresholdDays,
		"receivable", report.Receivable.String(),
		"payable", report.Payable.String(),
		"customers", len(report.Sales),
		"suppliers", len(report.Purchases))
	return report, nil
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.DB != nil {
		if err := s.DB.QueryRow(ctx, `
      INSERT INTO job_runs (job_type, status)
      VALUES ($1,$2)
      RETURNING id
    `, j.Type, StatusRunning).Scan(&runID); err != nil {
			slog.Warn("job run insert failed", "err", err)
		}
	}

	details, err := j.Run(ctx)
	status := StatusCompleted
	if err != nil {
		status = StatusFailed
		details = map[string]any{"error": err.Error()}
	}
	if s.metrics != nil {
		s.metrics.RecordJob(j.Type, status)
	}

	if runID != "" {
		detailsJSON, marshalErr := json.Marshal(details)
		if marshalErr != nil {
			slog.Warn("job details marshal failed", "err", marshalErr)
			detailsJSON = []byte("{}")
		}
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleOverdueScan(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.Enqueue(JobOverdueScan, s.scanOverdue)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobOverdueScan, s.scanOverdue)
		}
	}
}
