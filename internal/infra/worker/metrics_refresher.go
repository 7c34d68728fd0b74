package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/fluent-crm/internal/entity"
	"github.com/xavierca1/fluent-crm/internal/infra/http/middleware"
)

const defaultRefreshInterval = time.Minute

type SummarySource interface {
	Summary(ctx context.Context) entity.Summary
}

// MetricsRefresher periodically recomputes the CRM summary and exports it
// as prometheus gauges.
type MetricsRefresher struct {
	source   SummarySource
	interval time.Duration
	log      *zap.Logger

	// Publish receives every computed summary.
	Publish func(entity.Summary)
}

func NewMetricsRefresher(source SummarySource, interval time.Duration, log *zap.Logger) *MetricsRefresher {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &MetricsRefresher{
		source:   source,
		interval: interval,
		log:      log.Named("metrics_refresher"),
		Publish:  middleware.SetCRMGauges,
	}
}

// Start refreshes once immediately and then on every tick until ctx is done.
func (w *MetricsRefresher) Start(ctx context.Context) {
	w.log.Info("metrics refresher started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("metrics refresher stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *MetricsRefresher) refresh(ctx context.Context) {
	s := w.source.Summary(ctx)
	w.Publish(s)
	w.log.Debug("crm gauges refreshed",
		zap.Float64("pipeline_value", s.TotalPipelineValue),
		zap.Int("open_deals", s.OpenDeals),
		zap.Int("overdue_tasks", s.OverdueTasks),
	)
}
