package service

import (
	"bytes"
	"fmt"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// StockSheetName is the worksheet holding the exported inventory.
const StockSheetName = "Stock"

// StockExportService writes the stock inventory as an xlsx workbook.
type StockExportService interface {
	Export(items []entity.StockItem, label func(key string) string) ([]byte, error)
}

type stockExportService struct {
	log *logrus.Logger
}

func NewStockExportService(log *logrus.Logger) StockExportService {
	return &stockExportService{log: log}
}

type stockColumn struct {
	key   string
	width float64
	value func(item *entity.StockItem) interface{}
}

var stockColumns = []stockColumn{
	{"stock.fields.name", 28, func(i *entity.StockItem) interface{} { return i.Name }},
	{"stock.fields.category", 18, func(i *entity.StockItem) interface{} { return i.Category }},
	{"stock.fields.quantity", 12, func(i *entity.StockItem) interface{} { return i.Quantity }},
	{"stock.fields.unit", 10, func(i *entity.StockItem) interface{} { return i.Unit }},
	{"stock.fields.minimumQuantity", 16, func(i *entity.StockItem) interface{} { return i.MinimumQuantity }},
	{"stock.fields.price", 12, func(i *entity.StockItem) interface{} { return i.Price.InexactFloat64() }},
	{"stock.fields.supplier", 22, func(i *entity.StockItem) interface{} { return i.Supplier }},
	{"stock.fields.location", 18, func(i *entity.StockItem) interface{} { return i.Location }},
	{"stock.fields.expiryDate", 14, func(i *entity.StockItem) interface{} {
		if i.ExpiryDate == nil {
			return ""
		}
		return i.ExpiryDate.Format("2006-01-02")
	}},
	{"stock.fields.notes", 30, func(i *entity.StockItem) interface{} { return i.Notes }},
}

// Export renders one header row followed by one row per item. Rows at or
// below their minimum quantity are filled so they stand out.
func (s *stockExportService) Export(items []entity.StockItem, label func(key string) string) ([]byte, error) {
	if label == nil {
		label = func(key string) string { return key }
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warnf("Failed to close stock workbook: %+v", err)
		}
	}()

	index, err := f.NewSheet(StockSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	lowStockStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "9C0006"},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#FFC7CE"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create low stock style: %w", err)
	}

	for col, column := range stockColumns {
		if err := setCellValue(f, StockSheetName, col+1, 1, label(column.key)); err != nil {
			return nil, fmt.Errorf("failed to set header cell: %w", err)
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(StockSheetName, name, name, column.width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(stockColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetCellStyle(StockSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i := range items {
		row := i + 2
		item := &items[i]
		for col, column := range stockColumns {
			if err := setCellValue(f, StockSheetName, col+1, row, column.value(item)); err != nil {
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
		}
		if item.LowStock() {
			from := fmt.Sprintf("A%d", row)
			to := fmt.Sprintf("%s%d", lastCol, row)
			if err := f.SetCellStyle(StockSheetName, from, to, lowStockStyle); err != nil {
				return nil, fmt.Errorf("failed to mark low stock row %d: %w", row, err)
			}
		}
	}

	if err := f.SetPanes(StockSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
