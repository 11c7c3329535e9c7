package export

import (
	"bytes"
	"testing"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportPriceList(t *testing.T) {
	products := []domain.Product{
		{
			Name:     "Calcium Syrup",
			Category: "Supplements",
			IsActive: true,
			Variants: []domain.ProductVariant{
				{PackingVolume: "500ml", CompanyPrice: decimal.NewFromInt(400), DealerPrice: decimal.NewFromInt(450), CustomerPrice: decimal.RequireFromString("520.50"), Inventory: 12},
				{PackingVolume: "1L", CompanyPrice: decimal.NewFromInt(700), DealerPrice: decimal.NewFromInt(800), CustomerPrice: decimal.NewFromInt(950), Inventory: 3},
			},
		},
		{
			Name:     "Dewormer",
			Category: "Medicine",
			Variants: []domain.ProductVariant{
				{PackingVolume: "10 tabs", CompanyPrice: decimal.NewFromInt(90), DealerPrice: decimal.NewFromInt(100), CustomerPrice: decimal.NewFromInt(130)},
			},
		},
	}

	out, err := NewXLSXExporter().ExportPriceList(products)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{PriceListSheet}, f.GetSheetList())

	rows, err := f.GetRows(PriceListSheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Product", rows[0][0])
	assert.Equal(t, []string{"Calcium Syrup", "Supplements", "500ml"}, rows[1][:3])
	assert.Equal(t, "520.5", rows[1][5])
	assert.Equal(t, "1L", rows[2][2])
	assert.Equal(t, "Dewormer", rows[3][0])
}

func TestExportPriceListEmptyCatalog(t *testing.T) {
	out, err := NewXLSXExporter().ExportPriceList(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(PriceListSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
