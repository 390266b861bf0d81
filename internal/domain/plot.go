package domain

// PlotSize - размер участка по справочным данным игры
type PlotSize uint8

const (
	PlotSmall PlotSize = iota
	PlotMedium
	PlotLarge
)

func (s PlotSize) Label() string {
	switch s {
	case PlotSmall:
		return "S"
	case PlotMedium:
		return "M"
	case PlotLarge:
		return "L"
	}
	return "?"
}

// ColumnType - тип ячейки строки справочной таблицы
type ColumnType int

const (
	ColumnUInt8 ColumnType = iota
	ColumnOther
)

type SheetColumn struct {
	Type  ColumnType
	Value uint8
}

// SheetRow - строка справочной таблицы участков
type SheetRow struct {
	Columns []SheetColumn
}

// UInt8 читает ячейку как байт; false для ячеек другого типа и выхода за границы
func (r SheetRow) UInt8(index int) (uint8, bool) {
	if index < 0 || index >= len(r.Columns) {
		return 0, false
	}
	col := r.Columns[index]
	if col.Type != ColumnUInt8 {
		return 0, false
	}
	return col.Value, true
}
