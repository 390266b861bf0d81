package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/venue-directory/assets"
	"github.com/venue-directory/internal/domain"
	"github.com/venue-directory/internal/domain/repository"
)

type sheetRepository struct {
	open   func() (io.ReadCloser, error)
	source string
	logger *zap.Logger
}

// NewSheetRepository создаёт репозиторий справочной таблицы участков.
// Пустой path - встроенная таблица из assets.
func NewSheetRepository(path string, logger *zap.Logger) repository.PlotDatasetRepository {
	if path == "" {
		return NewFSSheetRepository(assets.Files, assets.PlotDatasetFile, logger)
	}
	return &sheetRepository{
		open:   func() (io.ReadCloser, error) { return os.Open(path) },
		source: path,
		logger: logger,
	}
}

// NewFSSheetRepository читает таблицу из произвольной файловой системы
func NewFSSheetRepository(fsys fs.FS, name string, logger *zap.Logger) repository.PlotDatasetRepository {
	return &sheetRepository{
		open:   func() (io.ReadCloser, error) { return fsys.Open(name) },
		source: name,
		logger: logger,
	}
}

// Rows читает CSV-таблицу; каждая ячейка типизируется отдельно:
// целое 0..255 - UInt8, всё остальное - ячейка другого типа
func (r *sheetRepository) Rows() ([]domain.SheetRow, error) {
	f, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open plot dataset %s: %w", r.source, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []domain.SheetRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse plot dataset %s: %w", r.source, err)
		}
		rows = append(rows, parseRow(record))
	}

	r.logger.Debug("Plot dataset loaded",
		zap.String("source", r.source),
		zap.Int("rows", len(rows)))

	return rows, nil
}

func parseRow(record []string) domain.SheetRow {
	row := domain.SheetRow{Columns: make([]domain.SheetColumn, len(record))}
	for i, field := range record {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			row.Columns[i] = domain.SheetColumn{Type: domain.ColumnOther}
			continue
		}
		row.Columns[i] = domain.SheetColumn{Type: domain.ColumnUInt8, Value: uint8(v)}
	}
	return row
}
