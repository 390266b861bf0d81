package repository

import "context"

// Navigator - внешняя интеграция перемещения к адресу
type Navigator interface {
	// Available сообщает, готова ли интеграция принимать запросы
	Available(ctx context.Context) bool

	// Dispatch передаёт строку аргументов навигации
	Dispatch(ctx context.Context, venueID, arguments string) error
}
