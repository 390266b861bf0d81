package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
)

type navigator struct {
	streams repository.StreamRepository
	stream  string
	group   string
	logger  *zap.Logger
}

// NewNavigator - навигация через Redis Stream: запросы публикуются в stream,
// интеграция считается доступной, пока в group есть потребители
func NewNavigator(streams repository.StreamRepository, stream, group string, logger *zap.Logger) repository.Navigator {
	if stream == "" {
		stream = domain.StreamNavigationRequests
	}
	return &navigator{
		streams: streams,
		stream:  stream,
		group:   group,
		logger:  logger,
	}
}

func (n *navigator) Available(ctx context.Context) bool {
	ok, err := n.streams.HasConsumerGroup(ctx, n.stream, n.group)
	if err != nil {
		n.logger.Warn("Navigation availability check failed",
			zap.String("stream", n.stream),
			zap.Error(err))
		return false
	}
	return ok
}

func (n *navigator) Dispatch(ctx context.Context, venueID, arguments string) error {
	event := domain.NavigationRequestEvent{
		RequestID:   uuid.New(),
		VenueID:     venueID,
		Arguments:   arguments,
		RequestedAt: time.Now().UTC(),
	}
	if err := n.streams.PublishToStream(ctx, n.stream, event); err != nil {
		return fmt.Errorf("failed to dispatch navigation request: %w", err)
	}

	n.logger.Debug("Navigation request published",
		zap.String("stream", n.stream),
		zap.String("request_id", event.RequestID.String()),
		zap.String("venue_id", venueID))
	return nil
}
