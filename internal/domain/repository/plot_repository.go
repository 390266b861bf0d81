package repository

import "github.com/venue-directory/internal/domain"

// PlotDatasetRepository - справочная таблица участков жилых районов
type PlotDatasetRepository interface {
	// Rows возвращает все строки таблицы в исходном порядке
	Rows() ([]domain.SheetRow, error)
}
