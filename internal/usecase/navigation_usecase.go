package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/pkg/errors"
)

// VenueLookup - поиск заведения по id
type VenueLookup interface {
	Venue(id string) (*domain.Venue, error)
}

// NavigationUseCase - передача адреса заведения во внешнюю интеграцию навигации
type NavigationUseCase struct {
	venues    VenueLookup
	navigator repository.Navigator
	logger    *zap.Logger
}

// NewNavigationUseCase создает новый NavigationUseCase. navigator может быть nil.
func NewNavigationUseCase(venues VenueLookup, navigator repository.Navigator, logger *zap.Logger) *NavigationUseCase {
	return &NavigationUseCase{
		venues:    venues,
		navigator: navigator,
		logger:    logger,
	}
}

// Available сообщает, можно ли сейчас отправить запрос на перемещение
func (uc *NavigationUseCase) Available(ctx context.Context) bool {
	return uc.navigator != nil && uc.navigator.Available(ctx)
}

// Visit - перемещение по выбранному варианту адреса.
// Индекс вне диапазона заменяется первым вариантом.
func (uc *NavigationUseCase) Visit(ctx context.Context, venueID string, routeIndex int) (domain.RouteOption, error) {
	venue, err := uc.venues.Venue(venueID)
	if err != nil {
		return domain.RouteOption{}, err
	}

	routes := ResolveRoutes(venue)
	if routeIndex < 0 || routeIndex >= len(routes) {
		routeIndex = 0
	}
	route := routes[routeIndex]

	args := deref(route.NavigationArgs)
	if err := ValidateNavigationArgs(args); err != nil {
		return route, err
	}

	if !uc.Available(ctx) {
		return route, errors.ErrNavigationUnavailable
	}

	if err := uc.navigator.Dispatch(ctx, venueID, args); err != nil {
		uc.logger.Error("Navigation dispatch failed",
			zap.String("venue_id", venueID),
			zap.String("arguments", args),
			zap.Error(err),
		)
		return route, errors.ErrNavigationUnavailable.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	uc.logger.Info("Navigation requested",
		zap.String("venue_id", venueID),
		zap.Int("route_index", routeIndex),
		zap.String("arguments", args),
	)
	return route, nil
}
