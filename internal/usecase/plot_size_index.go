package usecase

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
	"github.com/venue-directory/internal/pkg/errors"
)

const districtPlotCount = 60

type plotSignature [3]uint8

// Первые три ячейки строки однозначно определяют район
var districtSignatures = map[plotSignature]string{
	{1, 2, 0}: "mist",
	{1, 0, 2}: "lavender beds",
	{0, 0, 0}: "goblet",
	{1, 0, 0}: "shirogane",
	{0, 1, 0}: "empyreum",
}

// PlotSizeIndex - размер участка по району и номеру. Таблица строится один раз
// при первом обращении; неудачная сборка окончательна.
type PlotSizeIndex struct {
	dataset repository.PlotDatasetRepository
	logger  *zap.Logger

	mu       sync.Mutex
	loaded   atomic.Bool
	sizes    map[string][]domain.PlotSize
	buildErr error
}

// NewPlotSizeIndex - создание нового PlotSizeIndex
func NewPlotSizeIndex(dataset repository.PlotDatasetRepository, logger *zap.Logger) *PlotSizeIndex {
	return &PlotSizeIndex{
		dataset: dataset,
		logger:  logger,
	}
}

// TryGetSize - размер участка; false, если размер определить нельзя
func (idx *PlotSizeIndex) TryGetSize(location *domain.Location) (domain.PlotSize, bool) {
	if location == nil || location.Plot <= 0 {
		return 0, false
	}

	sizes := idx.ensureLoaded()
	if sizes == nil {
		return 0, false
	}

	plots, ok := sizes[normalizeDistrict(location.District)]
	if !ok {
		return 0, false
	}

	i := location.Plot - 1
	if i >= len(plots) {
		return 0, false
	}
	return plots[i], true
}

// BuildError - ошибка сборки таблицы, nil если сборки не было или она удалась
func (idx *PlotSizeIndex) BuildError() error {
	if !idx.loaded.Load() {
		return nil
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.buildErr
}

// SizeLabel - метка размера: A для квартир, S/M/L для участков, ? если неизвестно
func (idx *PlotSizeIndex) SizeLabel(venue *domain.Venue) string {
	if venue.IsApartment() {
		return "A"
	}
	if size, ok := idx.TryGetSize(venue.Location); ok {
		return size.Label()
	}
	return "?"
}

// SizeRank - ключ сортировки по размеру: квартира 0, S 1, M 2, L 3, неизвестно 4
func (idx *PlotSizeIndex) SizeRank(venue *domain.Venue) int {
	return sizeRank(idx, venue)
}

func (idx *PlotSizeIndex) ensureLoaded() map[string][]domain.PlotSize {
	if !idx.loaded.Load() {
		idx.mu.Lock()
		if !idx.loaded.Load() {
			idx.sizes, idx.buildErr = idx.build()
			if idx.buildErr != nil {
				idx.sizes = nil
				idx.logger.Error("Failed to build plot size index", zap.Error(idx.buildErr))
			} else {
				idx.logger.Info("Plot size index built", zap.Int("districts", len(idx.sizes)))
			}
			idx.loaded.Store(true)
		}
		idx.mu.Unlock()
	}
	return idx.sizes
}

func (idx *PlotSizeIndex) build() (map[string][]domain.PlotSize, error) {
	rows, err := idx.dataset.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to read plot dataset: %w", err)
	}

	// Первая строка для каждого района, дубликаты игнорируются
	var districts []string
	rowByDistrict := make(map[string]domain.SheetRow)
	for _, row := range rows {
		sig, ok := readSignature(row)
		if !ok {
			continue
		}
		district, ok := districtSignatures[sig]
		if !ok {
			continue
		}
		if _, seen := rowByDistrict[district]; seen {
			continue
		}
		rowByDistrict[district] = row
		districts = append(districts, district)
	}

	sizes := make(map[string][]domain.PlotSize, len(districts))
	for _, district := range districts {
		plots, ok, err := readDistrictPlots(rowByDistrict[district])
		if err != nil {
			return nil, fmt.Errorf("district %q: %w", district, err)
		}
		if ok {
			sizes[district] = plots
		}
	}
	return sizes, nil
}

func readSignature(row domain.SheetRow) (plotSignature, bool) {
	var sig plotSignature
	for i := range sig {
		v, ok := row.UInt8(i)
		if !ok {
			return sig, false
		}
		sig[i] = v
	}
	return sig, true
}

// readDistrictPlots читает 60 размеров; строки с нечисловыми ячейками пропускаются,
// значение вне {0,1,2} означает несовместимый набор данных
func readDistrictPlots(row domain.SheetRow) ([]domain.PlotSize, bool, error) {
	if len(row.Columns) < districtPlotCount {
		return nil, false, nil
	}

	plots := make([]domain.PlotSize, districtPlotCount)
	for i := range plots {
		v, ok := row.UInt8(i)
		if !ok {
			return nil, false, nil
		}
		if v > uint8(domain.PlotLarge) {
			return nil, false, errors.ErrIncompatibleDataset.WithDetails(map[string]interface{}{
				"column": i,
				"value":  v,
			})
		}
		plots[i] = domain.PlotSize(v)
	}
	return plots, true, nil
}

func normalizeDistrict(district *string) string {
	if district == nil {
		return ""
	}
	normalized := strings.TrimSpace(*district)
	if len(normalized) >= 4 && strings.EqualFold(normalized[:4], "the ") {
		normalized = normalized[4:]
	}
	return strings.ToLower(normalized)
}
