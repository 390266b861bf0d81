package repository

import (
	"context"

	"github.com/venue-directory/internal/domain"
)

// CatalogSource - удалённый справочник заведений
type CatalogSource interface {
	// FetchVenues загружает полный список одобренных заведений
	FetchVenues(ctx context.Context) ([]domain.Venue, error)
}

// MediaFetcher - загрузка баннеров заведений
type MediaFetcher interface {
	// MediaURI возвращает адрес медиа заведения, если явный баннер не указан
	MediaURI(venueID string) string

	// FetchMedia загружает байты изображения; ошибка для сетевых сбоев и не-2xx ответов
	FetchMedia(ctx context.Context, uri string) ([]byte, error)
}
