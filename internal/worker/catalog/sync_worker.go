package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/worker"
)

// Значения по умолчанию для повторной обработки зависших событий
const (
	DefaultReclaimInterval = time.Minute
	DefaultReclaimMinIdle  = 30 * time.Second
)

// SnapshotSyncer - каталог, который умеет подхватить снимок другого процесса
type SnapshotSyncer interface {
	Sync(ctx context.Context) (bool, error)
}

// SyncWorker читает события обновления каталога и загружает свежий снимок из кеша.
// Каждый процесс API читает стрим своей группой, чтобы получить все события.
type SyncWorker struct {
	*worker.BaseWorker
	streams       repository.StreamRepository
	catalog       SnapshotSyncer
	stream        string
	consumerGroup string
	consumerName  string

	reclaimEvery   time.Duration
	reclaimMinIdle time.Duration
}

// NewSyncWorker создает новый SyncWorker; пустая group - группа по имени хоста
func NewSyncWorker(
	streams repository.StreamRepository,
	catalog SnapshotSyncer,
	stream string,
	group string,
	logger *zap.Logger,
) *SyncWorker {
	hostname, _ := os.Hostname()
	if stream == "" {
		stream = domain.StreamCatalogRefreshed
	}
	if group == "" {
		group = "catalog-sync-" + hostname
	}

	return &SyncWorker{
		BaseWorker:    worker.NewBaseWorker("catalog-sync", logger),
		streams:       streams,
		catalog:       catalog,
		stream:        stream,
		consumerGroup: group,
		consumerName:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),

		reclaimEvery:   DefaultReclaimInterval,
		reclaimMinIdle: DefaultReclaimMinIdle,
	}
}

// WithReclaim задаёт период проверки pending и минимальный простой сообщения
func (w *SyncWorker) WithReclaim(every, minIdle time.Duration) *SyncWorker {
	if every > 0 {
		w.reclaimEvery = every
	}
	if minIdle >= 0 {
		w.reclaimMinIdle = minIdle
	}
	return w
}

// ConsumerGroup возвращает имя consumer group
func (w *SyncWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Start запускает воркер
func (w *SyncWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting catalog sync worker",
		zap.String("stream", w.stream),
		zap.String("consumer_group", w.consumerGroup),
		zap.String("consumer_name", w.consumerName))

	if err := w.streams.CreateConsumerGroup(ctx, w.stream, w.consumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := w.Context(ctx)
	defer cancel()

	messages, err := w.streams.ConsumeStream(ctx, w.stream, w.consumerGroup, w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	// События, не подтверждённые до перезапуска, обрабатываются сразу
	w.reclaim(ctx)

	ticker := time.NewTicker(w.reclaimEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Catalog sync worker stopped")
			return nil
		case <-ticker.C:
			w.reclaim(ctx)
		case msg, ok := <-messages:
			if !ok {
				logger.Info("Catalog stream closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// reclaim забирает зависшие в pending события группы и обрабатывает их повторно
func (w *SyncWorker) reclaim(ctx context.Context) {
	logger := w.Logger()

	pending, err := w.streams.ClaimPending(ctx, w.stream, w.consumerGroup, w.consumerName, w.reclaimMinIdle)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("Failed to claim pending catalog events", zap.Error(err))
		}
		return
	}
	if len(pending) == 0 {
		return
	}

	logger.Info("Retrying pending catalog events", zap.Int("count", len(pending)))
	for _, msg := range pending {
		if ctx.Err() != nil {
			return
		}
		w.handle(ctx, msg)
	}
}

func (w *SyncWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var event domain.CatalogRefreshedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		// ACK битое сообщение чтобы не застревало
		logger.Warn("Failed to parse catalog event, skipping",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	applied, err := w.catalog.Sync(ctx)
	if err != nil {
		// Без ACK: сообщение останется в pending группы
		logger.Error("Failed to sync catalog snapshot",
			zap.String("refresh_id", event.RefreshID.String()),
			zap.Error(err))
		return
	}

	logger.Info("Catalog refresh event processed",
		zap.String("refresh_id", event.RefreshID.String()),
		zap.Int("venue_count", event.VenueCount),
		zap.Bool("applied", applied))
	w.ack(ctx, msg.ID)
}

func (w *SyncWorker) ack(ctx context.Context, messageID string) {
	if err := w.streams.AckMessage(ctx, w.stream, w.consumerGroup, messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
