// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/animal-wellness/aw_backend/internal/core/domain"
	portssvc "github.com/animal-wellness/aw_backend/internal/core/ports/services"
	"github.com/animal-wellness/aw_backend/internal/utils"
	"github.com/animal-wellness/aw_backend/internal/utils/accounting"
	"github.com/go-pdf/fpdf"
)

const (
	pageMargin   = 15.0
	rowHeight    = 7.0
	headerHeight = 8.0
	footerHeight = 22.0
	logoName     = "invoice-logo"
	dateLayout   = "02 Jan 2006"
)

// column widths in mm; they add up to the printable width of an A4 page.
var (
	columnTitles = []string{"#", "Product", "Pack", "Qty", "Unit Price", "Amount"}
	columnWidths = []float64{10, 70, 30, 15, 27.5, 27.5}
	columnAlign  = []string{"C", "L", "L", "R", "R", "R"}
)

// Renderer draws A4 invoices. A zero Renderer works; it simply prints no logo.
type Renderer struct {
	CompanyName string
	LogoPath    string
	// FooterLines are printed at the bottom of every page of a branded invoice.
	FooterLines []string
}

func NewRenderer(companyName, logoPath string) *Renderer {
	return &Renderer{
		CompanyName: companyName,
		LogoPath:    logoPath,
		FooterLines: []string{
			"Thank you for caring for animals with us.",
			"support@animalwellness.example  |  +1 555 0100",
			"facebook.com/animalwellness  |  instagram.com/animalwellness",
		},
	}
}

var _ portssvc.InvoiceRenderer = (*Renderer)(nil)

// Render produces the invoice PDF. The same order always yields the same bytes.
func (r *Renderer) Render(order domain.Order, branded bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(order.OrderDate)
	pdf.SetModificationDate(order.OrderDate)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", order.OrderNumber), false)
	pdf.SetAuthor(r.CompanyName, false)

	if branded {
		pdf.SetFooterFunc(func() { r.drawFooter(pdf) })
	}

	pdf.AddPage()
	r.drawHeader(pdf, order)
	drawBilling(pdf, order)

	bottom := r.contentBottom(pdf, branded)
	drawTableHeader(pdf)
	for i, item := range order.Items {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			drawTableHeader(pdf)
		}
		drawItemRow(pdf, i+1, item)
	}

	totals := accounting.CalculateOrderTotals(order.Items, order.Discount, order.ShippingCost)
	// The summary block stays together on one page.
	if pdf.GetY()+4*rowHeight+4 > bottom {
		pdf.AddPage()
	}
	drawSummary(pdf, totals)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", order.OrderNumber, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write invoice %s: %w", order.OrderNumber, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) contentBottom(pdf *fpdf.Fpdf, branded bool) float64 {
	_, pageH := pdf.GetPageSize()
	bottom := pageH - pageMargin
	if branded {
		bottom -= footerHeight
	}
	return bottom
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, order domain.Order) {
	x := pageMargin
	if r.registerLogo(pdf) {
		pdf.ImageOptions(logoName, pageMargin, pageMargin, 25, 0, false, fpdf.ImageOptions{}, 0, "")
		x += 30
	}

	pdf.SetXY(x, pageMargin)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(90, 8, r.CompanyName, "", 2, "L", false, 0, "")

	pdf.SetXY(130, pageMargin)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(65, 8, "INVOICE", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(65, 6, "Invoice No: "+order.OrderNumber, "", 2, "R", false, 0, "")
	pdf.CellFormat(65, 6, "Date: "+order.OrderDate.Format(dateLayout), "", 2, "R", false, 0, "")
	pdf.CellFormat(65, 6, "Payment: "+strings.ToUpper(string(order.PaymentStatus)), "", 2, "R", false, 0, "")

	pdf.SetY(pageMargin + 35)
}

// registerLogo loads the logo when the file is readable and drops any image error so the
// invoice still renders.
func (r *Renderer) registerLogo(pdf *fpdf.Fpdf) bool {
	if r.LogoPath == "" {
		return false
	}
	data, err := os.ReadFile(r.LogoPath)
	if err != nil {
		return false
	}
	imageType := strings.TrimPrefix(strings.ToUpper(filepath.Ext(r.LogoPath)), ".")
	pdf.RegisterImageOptionsReader(logoName, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}
	return true
}

func drawBilling(pdf *fpdf.Fpdf, order domain.Order) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{order.CustomerName, order.CustomerEmail, order.CustomerPhone} {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
	if order.ShippingAddress != "" {
		pdf.MultiCell(100, 5, order.ShippingAddress, "", "L", false)
	}
	pdf.Ln(6)
}

func drawTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(46, 125, 50)
	pdf.SetTextColor(255, 255, 255)
	for i, title := range columnTitles {
		pdf.CellFormat(columnWidths[i], headerHeight, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
}

func drawItemRow(pdf *fpdf.Fpdf, n int, item domain.OrderItem) {
	cells := []string{
		fmt.Sprintf("%d", n),
		truncate(pdf, item.ProductName, columnWidths[1]-2),
		truncate(pdf, item.PackingVolume, columnWidths[2]-2),
		fmt.Sprintf("%d", item.Quantity),
		utils.FormatMoney(item.UnitPrice),
		utils.FormatMoney(accounting.LineTotal(item.UnitPrice, item.Quantity)),
	}
	for i, c := range cells {
		pdf.CellFormat(columnWidths[i], rowHeight, c, "1", 0, columnAlign[i], false, 0, "")
	}
	pdf.Ln(-1)
}

func drawSummary(pdf *fpdf.Fpdf, t accounting.OrderTotals) {
	pdf.Ln(4)
	labelW, valueW := 40.0, 35.0
	x := pageMargin + sum(columnWidths) - labelW - valueW
	lines := []struct {
		label string
		value string
		bold  bool
	}{
		{"Subtotal", utils.FormatMoney(t.Subtotal), false},
		{"Discount", "-" + utils.FormatMoney(t.Discount), false},
		{"Shipping", utils.FormatMoney(t.Shipping), false},
		{"Total", utils.FormatMoney(t.Total), true},
	}
	for _, l := range lines {
		style := ""
		if l.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.SetX(x)
		pdf.CellFormat(labelW, rowHeight, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueW, rowHeight, l.value, "", 1, "R", false, 0, "")
	}
}

func (r *Renderer) drawFooter(pdf *fpdf.Fpdf) {
	_, pageH := pdf.GetPageSize()
	pdf.SetY(pageH - pageMargin - footerHeight + 4)
	pdf.SetDrawColor(46, 125, 50)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+sum(columnWidths), pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(90, 90, 90)
	for _, line := range r.FooterLines {
		pdf.CellFormat(0, 4, line, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 4, fmt.Sprintf("Page %d", pdf.PageNo()), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
}

func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}
