package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/lmsforge/packlint/internal/domain"
)

// ScanEvent captures lightweight execution telemetry for one scan.
type ScanEvent struct {
	PackagePath string
	ModuleType  domain.ModuleType
	Status      domain.ScanStatus
	IssueCount  int
	Duration    time.Duration
	Err         error
	StartedAt   time.Time
}

// ScanObserver receives scan execution events.
type ScanObserver interface {
	ObserveScan(ctx context.Context, event ScanEvent)
}

// NoopScanObserver ignores all events.
type NoopScanObserver struct{}

func (NoopScanObserver) ObserveScan(context.Context, ScanEvent) {}

type logScanObserver struct {
	logger *slog.Logger
}

// NewLogScanObserver writes scan events to the provided writer.
func NewLogScanObserver(w io.Writer) ScanObserver {
	if w == nil {
		return NoopScanObserver{}
	}
	return &logScanObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logScanObserver) ObserveScan(ctx context.Context, event ScanEvent) {
	attrs := []any{
		"package", event.PackagePath,
		"module_type", string(event.ModuleType),
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "scan", attrs...)
		return
	}
	attrs = append(attrs, "status", string(event.Status), "issues", event.IssueCount)
	o.logger.InfoContext(ctx, "scan", attrs...)
}
