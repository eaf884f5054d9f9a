// Package invoice renders order invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
	pkgerrors "github.com/radityaprast/pasarlokal-backend/pkg/errors"
)

// Filename names the downloaded attachment after the order number.
func Filename(order *models.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", order.OrderNumber)
}

// Render produces the invoice PDF for an order. The order must carry its
// items (with products) and payment.
func Render(order *models.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", order.OrderNumber), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PasarLokal")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Placed %s", order.CreatedAt.Format("2 January 2006 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Ship to")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, order.ShippingName)
	pdf.Ln(5)
	pdf.Cell(0, 6, order.ShippingAddress)
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("%s, %s %s", order.ShippingCity, order.ShippingState, order.ShippingPostalCode))
	pdf.Ln(5)
	pdf.Cell(0, 6, order.ShippingCountry)
	pdf.Ln(10)

	// Line item table.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 8, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		name := "(removed product)"
		if item.Product != nil {
			name = item.Product.Name
		}
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pdf.CellFormat(90, 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, item.Price.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 10, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 10, order.TotalAmount.StringFixed(2), "T", 1, "R", false, 0, "")

	if order.Payment != nil {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Payment: %s (%s)", order.Payment.Method, order.Payment.Status))
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice pdf")
	}
	return buf.Bytes(), nil
}
