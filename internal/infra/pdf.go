package infra

// pdf.go — A4 invoice generation using go-pdf/fpdf. Layout:
//   - Seller block from the company profile (name, GST number, address)
//   - Bill-to block from the order's customer snapshot
//   - Line item table (name, quantity, rate, amount)
//   - Discount line (if applicable) and bold grand total
//   - Bank details footer when the profile carries them
//
// The output file is saved to storagePath/invoice_{orderID}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"inventra/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// PDFInvoiceGenerator renders invoices to disk. Implements
// service.InvoiceGenerator.
type PDFInvoiceGenerator struct {
	storagePath string
}

func NewPDFInvoiceGenerator(storagePath string) *PDFInvoiceGenerator {
	return &PDFInvoiceGenerator{storagePath: storagePath}
}

// Generate renders the invoice for a committed order. seller may be nil when
// the user has not filled in a company profile; the header degrades to a bare
// "INVOICE" title.
func (g *PDFInvoiceGenerator) Generate(order *model.SaleOrder, seller *model.Company) (string, error) {
	if err := os.MkdirAll(g.storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", order.ID.String())
	filePath := filepath.Join(g.storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Seller header ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	if seller != nil && seller.CompanyName != "" {
		pdf.CellFormat(contentW, 10, seller.CompanyName, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		if seller.GSTNumber != "" {
			pdf.CellFormat(contentW, 5, "GSTIN: "+seller.GSTNumber, "", 1, "L", false, 0, "")
		}
		addr := seller.Address
		if seller.City != "" {
			addr += ", " + seller.City
		}
		if seller.State != "" {
			addr += ", " + seller.State
		}
		if seller.Pincode != "" {
			addr += " - " + seller.Pincode
		}
		if addr != "" {
			pdf.CellFormat(contentW, 5, addr, "", 1, "L", false, 0, "")
		}
		if seller.PhoneNumber != "" {
			pdf.CellFormat(contentW, 5, "Phone: "+seller.PhoneNumber, "", 1, "L", false, 0, "")
		}
	} else {
		pdf.CellFormat(contentW, 10, "INVOICE", "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Invoice meta ──────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Invoice  "+order.ID.String(), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Date: "+order.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Bill-to block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, order.CustomerName, "", 1, "L", false, 0, "")
	if order.CustomerAddress != "" {
		pdf.CellFormat(contentW, 5, order.CustomerAddress, "", 1, "L", false, 0, "")
	}
	cityLine := order.CustomerCity
	if order.CustomerState != "" {
		cityLine += ", " + order.CustomerState
	}
	if order.CustomerPincode != "" {
		cityLine += " - " + order.CustomerPincode
	}
	if cityLine != "" {
		pdf.CellFormat(contentW, 5, cityLine, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Line item table ───────────────────────────────────────────────────────
	col1 := contentW * 0.46 // item name
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // rate
	col4 := contentW * 0.20 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(col1, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range order.Items {
		name := line.ItemName
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		amount := line.Rate.Mul(decimal.NewFromInt(int64(line.Quantity)))
		pdf.CellFormat(col1, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, line.Rate.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	// ── Totals ────────────────────────────────────────────────────────────────
	if !order.Discount.IsZero() {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(col1+col2+col3, 6, "Discount", "1", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-"+order.Discount.StringFixed(2), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, order.TotalAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	// ── Payment / bank footer ─────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	if order.PaymentReceived {
		pdf.CellFormat(contentW, 5, "Payment: RECEIVED", "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(contentW, 5, "Payment: PENDING", "", 1, "L", false, 0, "")
	}

	if seller != nil && seller.BankName != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 5, "Bank Details", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Bank: "+seller.BankName, "", 1, "L", false, 0, "")
		if seller.BankAccountNumber != "" {
			pdf.CellFormat(contentW, 5, "A/C: "+seller.BankAccountNumber, "", 1, "L", false, 0, "")
		}
		if seller.IFSCCode != "" {
			pdf.CellFormat(contentW, 5, "IFSC: "+seller.IFSCCode, "", 1, "L", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Thank you for your business!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return fileName, nil
}

// FilePath resolves a stored invoice name back to its absolute path.
func (g *PDFInvoiceGenerator) FilePath(fileName string) string {
	return filepath.Join(g.storagePath, fileName)
}
