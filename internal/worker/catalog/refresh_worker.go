package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/worker"
)

const (
	// DefaultRefreshSchedule - каждые 15 минут
	DefaultRefreshSchedule = "*/15 * * * *"

	refreshTimeout = 2 * time.Minute
)

// Refresher - каталог, загрузку которого можно дождаться
type Refresher interface {
	Await(ctx context.Context) error
}

// RefreshWorker обновляет каталог сразу при старте и затем по cron-расписанию
type RefreshWorker struct {
	*worker.BaseWorker
	catalog  Refresher
	schedule string
	parser   cron.Parser
}

// NewRefreshWorker создает новый RefreshWorker
func NewRefreshWorker(catalog Refresher, schedule string, logger *zap.Logger) *RefreshWorker {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	return &RefreshWorker{
		BaseWorker: worker.NewBaseWorker("catalog-refresh", logger),
		catalog:    catalog,
		schedule:   schedule,
		parser:     cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

// Start запускает воркер
func (w *RefreshWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	sched, err := w.parser.Parse(w.schedule)
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", w.schedule, err)
	}

	ctx, cancel := w.Context(ctx)
	defer cancel()

	cl := cronLogger{logger: logger.Sugar()}
	c := cron.New(
		cron.WithParser(w.parser),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Schedule(sched, cron.FuncJob(func() { w.RunOnce(ctx) }))

	logger.Info("Starting catalog refresh worker", zap.String("schedule", w.schedule))
	w.RunOnce(ctx)

	c.Start()
	<-ctx.Done()

	// Ждём завершения текущей загрузки
	<-c.Stop().Done()
	logger.Info("Catalog refresh worker stopped")
	return nil
}

// RunOnce - одна загрузка каталога с ожиданием результата
func (w *RefreshWorker) RunOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	logger := w.Logger()

	runCtx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	started := time.Now()
	if err := w.catalog.Await(runCtx); err != nil {
		logger.Error("Scheduled catalog refresh failed",
			zap.Duration("duration", time.Since(started)),
			zap.Error(err))
		return
	}
	logger.Info("Scheduled catalog refresh completed", zap.Duration("duration", time.Since(started)))
}
