package domain

import (
	"time"

	"github.com/google/uuid"
)

// Имена стримов по умолчанию
const (
	StreamCatalogRefreshed   = "stream:catalog:refreshed"
	StreamNavigationRequests = "stream:navigation:requests"
)

// CatalogRefreshedEvent - каталог перезагружен и снимок обновлён
type CatalogRefreshedEvent struct {
	RefreshID   uuid.UUID `json:"refresh_id"`
	VenueCount  int       `json:"venue_count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// NavigationRequestEvent - запрос на перемещение к заведению для внешней интеграции
type NavigationRequestEvent struct {
	RequestID   uuid.UUID `json:"request_id"`
	VenueID     string    `json:"venue_id"`
	Arguments   string    `json:"arguments"`
	RequestedAt time.Time `json:"requested_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
