package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"daily-journal/internal/domain/entity"
)

// StatsSource provides the stats snapshot the refresher publishes.
type StatsSource interface {
	Stats(ctx context.Context) (entity.Stats, error)
}

// StatsRefresher periodically copies journal stats into the Prometheus gauges.
type StatsRefresher struct {
	source  StatsSource
	logger  *slog.Logger
	timeout time.Duration
	cron    *cron.Cron
}

// NewStatsRefresher schedules a refresh according to a robfig/cron spec
// (e.g. "@every 1m" or "*/5 * * * *"). The schedule starts with Start.
func NewStatsRefresher(source StatsSource, schedule string, logger *slog.Logger) (*StatsRefresher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &StatsRefresher{
		source:  source,
		logger:  logger,
		timeout: 10 * time.Second,
		cron:    cron.New(),
	}
	if _, err := r.cron.AddFunc(schedule, func() { _ = r.Refresh(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid stats refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Refresh runs one refresh immediately.
func (r *StatsRefresher) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	st, err := r.source.Stats(ctx)
	if err != nil {
		StatsRefreshTotal.WithLabelValues("failure").Inc()
		r.logger.Warn("stats refresh failed", slog.Any("error", err))
		return err
	}
	UpdateJournalTotals(st)
	StatsRefreshTotal.WithLabelValues("success").Inc()
	r.logger.Debug("stats refreshed",
		slog.Int("entries", st.TotalEntries),
		slog.Int("words", st.TotalWords))
	return nil
}

// Start runs an initial refresh and starts the schedule.
func (r *StatsRefresher) Start(ctx context.Context) {
	_ = r.Refresh(ctx)
	r.cron.Start()
}

// Stop stops the schedule and waits for a running refresh to finish.
func (r *StatsRefresher) Stop() {
	<-r.cron.Stop().Done()
}
