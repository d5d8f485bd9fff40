package service

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStockExportService_Export(t *testing.T) {
	expiry := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []entity.StockItem{
		{Name: "Contrast agent", Category: "consumable", Quantity: 2, Unit: "vial", MinimumQuantity: 5,
			Price: decimal.RequireFromString("120.50"), ExpiryDate: &expiry},
		{Name: "Film", Category: "consumable", Quantity: 40, Unit: "sheet", MinimumQuantity: 10,
			Price: decimal.NewFromInt(3)},
	}

	svc := NewStockExportService(quietLogger())
	out, err := svc.Export(items, func(key string) string { return "L:" + key })
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{StockSheetName}, f.GetSheetList())

	rows, err := f.GetRows(StockSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "L:stock.fields.name", rows[0][0])
	assert.Equal(t, "Contrast agent", rows[1][0])
	assert.Equal(t, "2", rows[1][2])
	assert.Equal(t, "2027-03-01", rows[1][8])
	assert.Equal(t, "Film", rows[2][0])

	lowStyle, err := f.GetCellStyle(StockSheetName, "A2")
	require.NoError(t, err)
	okStyle, err := f.GetCellStyle(StockSheetName, "A3")
	require.NoError(t, err)
	assert.NotEqual(t, lowStyle, okStyle)
}

func TestStockExportService_EmptyInventory(t *testing.T) {
	svc := NewStockExportService(quietLogger())
	out, err := svc.Export(nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(StockSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "stock.fields.name", rows[0][0])
}
