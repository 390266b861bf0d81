package domain

import "time"

// CatalogSnapshot - набор записей с моментом загрузки, хранится в кеше
type CatalogSnapshot struct {
	Venues    []Venue   `json:"venues"`
	FetchedAt time.Time `json:"fetched_at"`
}
