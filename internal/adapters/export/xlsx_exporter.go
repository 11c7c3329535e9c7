// Package export writes catalog data to spreadsheet formats.
package export

import (
	"fmt"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

// PriceListSheet is the name of the single worksheet in an exported price list.
const PriceListSheet = "Price List"

// PriceListHeader is the first row of the worksheet.
var PriceListHeader = []any{"Product", "Category", "Pack", "Company Price", "Dealer Price", "Customer Price", "Inventory", "Active"}

// XLSXExporter renders one row per product variant.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

var _ portssvc.PriceListExporter = (*XLSXExporter)(nil)

func (e *XLSXExporter) ExportPriceList(products []domain.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PriceListSheet); err != nil {
		return nil, fmt.Errorf("failed to name price list sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2E7D32"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// Built-in format 4 is "#,##0.00".
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create money style: %w", err)
	}

	if err := f.SetSheetRow(PriceListSheet, "A1", &PriceListHeader); err != nil {
		return nil, fmt.Errorf("failed to write price list header: %w", err)
	}
	if err := f.SetRowStyle(PriceListSheet, 1, 1, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style price list header: %w", err)
	}

	row := 2
	for _, p := range products {
		for _, v := range p.Variants {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := []any{
				p.Name,
				p.Category,
				v.PackingVolume,
				v.CompanyPrice.InexactFloat64(),
				v.DealerPrice.InexactFloat64(),
				v.CustomerPrice.InexactFloat64(),
				v.Inventory,
				p.IsActive,
			}
			if err := f.SetSheetRow(PriceListSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write price list row %d: %w", row, err)
			}
			row++
		}
	}

	if row > 2 {
		if err := f.SetCellStyle(PriceListSheet, "D2", fmt.Sprintf("F%d", row-1), moneyStyle); err != nil {
			return nil, fmt.Errorf("failed to format prices: %w", err)
		}
	}
	if err := f.SetColWidth(PriceListSheet, "A", "A", 36); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(PriceListSheet, "B", "F", 16); err != nil {
		return nil, err
	}
	if err := f.SetPanes(PriceListSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write price list workbook: %w", err)
	}
	return buf.Bytes(), nil
}
