package usecase_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/venue-directory/internal/domain"
	apperrors "github.com/venue-directory/internal/pkg/errors"
	"github.com/venue-directory/internal/usecase"
)

// MockPlotDatasetRepository is a mock of PlotDatasetRepository
type MockPlotDatasetRepository struct {
	mock.Mock
}

func (m *MockPlotDatasetRepository) Rows() ([]domain.SheetRow, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SheetRow), args.Error(1)
}

// districtRow builds a 60-plot row starting with the given signature; the rest are fill
func districtRow(a, b, c, fill uint8) domain.SheetRow {
	cols := make([]domain.SheetColumn, 0, 62)
	for _, v := range []uint8{a, b, c} {
		cols = append(cols, domain.SheetColumn{Type: domain.ColumnUInt8, Value: v})
	}
	for len(cols) < 62 {
		cols = append(cols, domain.SheetColumn{Type: domain.ColumnUInt8, Value: fill})
	}
	return domain.SheetRow{Columns: cols}
}

func location(district string, plot int) *domain.Location {
	return &domain.Location{District: &district, Plot: plot}
}

func TestPlotSizeIndex_TryGetSize(t *testing.T) {
	dataset := new(MockPlotDatasetRepository)
	dataset.On("Rows").Return([]domain.SheetRow{
		{Columns: []domain.SheetColumn{{Type: domain.ColumnOther}}},
		districtRow(1, 2, 0, 1), // mist
		districtRow(1, 2, 0, 0), // duplicate mist, ignored
		districtRow(0, 0, 0, 2), // goblet
		districtRow(9, 9, 9, 9), // unknown signature, ignored
	}, nil).Once()

	idx := usecase.NewPlotSizeIndex(dataset, zap.NewNop())

	t.Run("signature columns are plots too", func(t *testing.T) {
		size, ok := idx.TryGetSize(location("Mist", 2))
		assert.True(t, ok)
		assert.Equal(t, domain.PlotLarge, size)
	})

	t.Run("first row per district wins", func(t *testing.T) {
		size, ok := idx.TryGetSize(location("  The Mist ", 30))
		assert.True(t, ok)
		assert.Equal(t, domain.PlotMedium, size)
	})

	t.Run("goblet", func(t *testing.T) {
		size, ok := idx.TryGetSize(location("the goblet", 60))
		assert.True(t, ok)
		assert.Equal(t, domain.PlotLarge, size)
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := idx.TryGetSize(nil)
		assert.False(t, ok)
		_, ok = idx.TryGetSize(location("Mist", 0))
		assert.False(t, ok)
		_, ok = idx.TryGetSize(location("Mist", 61))
		assert.False(t, ok)
		_, ok = idx.TryGetSize(location("Shirogane", 1))
		assert.False(t, ok)
		_, ok = idx.TryGetSize(&domain.Location{Plot: 1})
		assert.False(t, ok)
	})

	assert.NoError(t, idx.BuildError())
	dataset.AssertNumberOfCalls(t, "Rows", 1)
}

func TestPlotSizeIndex_IncompatibleDataset(t *testing.T) {
	dataset := new(MockPlotDatasetRepository)
	dataset.On("Rows").Return([]domain.SheetRow{
		districtRow(0, 0, 0, 1),
		districtRow(1, 2, 0, 3),
	}, nil).Once()

	idx := usecase.NewPlotSizeIndex(dataset, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, ok := idx.TryGetSize(location("Goblet", 5))
		assert.False(t, ok)
	}
	assert.ErrorIs(t, idx.BuildError(), apperrors.ErrIncompatibleDataset)
	dataset.AssertNumberOfCalls(t, "Rows", 1)
}

func TestPlotSizeIndex_SourceFailureIsFinal(t *testing.T) {
	dataset := new(MockPlotDatasetRepository)
	dataset.On("Rows").Return(nil, errors.New("sheet missing")).Once()

	idx := usecase.NewPlotSizeIndex(dataset, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := idx.TryGetSize(location("Mist", 1))
			assert.False(t, ok)
		}()
	}
	wg.Wait()

	assert.Error(t, idx.BuildError())
	dataset.AssertNumberOfCalls(t, "Rows", 1)
}

func TestPlotSizeIndex_LabelsAndRanks(t *testing.T) {
	dataset := new(MockPlotDatasetRepository)
	dataset.On("Rows").Return([]domain.SheetRow{districtRow(1, 0, 0, 0)}, nil)

	idx := usecase.NewPlotSizeIndex(dataset, zap.NewNop())

	apartment := &domain.Venue{Location: &domain.Location{Apartment: 3, Plot: 1}}
	medium := &domain.Venue{Location: location("Shirogane", 1)}
	small := &domain.Venue{Location: location("Shirogane", 4)}
	unknown := &domain.Venue{}

	assert.Equal(t, "A", idx.SizeLabel(apartment))
	assert.Equal(t, "M", idx.SizeLabel(medium))
	assert.Equal(t, "S", idx.SizeLabel(small))
	assert.Equal(t, "?", idx.SizeLabel(unknown))

	assert.Equal(t, 0, idx.SizeRank(apartment))
	assert.Equal(t, 2, idx.SizeRank(medium))
	assert.Equal(t, 1, idx.SizeRank(small))
	assert.Equal(t, 4, idx.SizeRank(unknown))
}
