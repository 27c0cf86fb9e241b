// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/pitstop-performance/backend/internal/config"
	"github.com/pitstop-performance/backend/internal/domain/order"
	"github.com/pitstop-performance/backend/internal/domain/user"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber   string
	InvoiceDate     string
	Order           *order.Order
	ShippingAddress *user.Address
	BillingAddress  *user.Address
	Company         CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order, shipping, billing *user.Address) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber:   fmt.Sprintf("INV-%06d", o.ID),
		InvoiceDate:     time.Now().Format("January 2, 2006"),
		Order:           o,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Email:   s.config.App.CompanyEmail,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from the invoice template
func (s *Service) generateHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"dollars": func(cents int64) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100)
		},
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; margin-bottom: 10px; }
        .section-title { font-weight: bold; margin-bottom: 8px; }
        .addresses { margin-bottom: 30px; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border-bottom: 1px solid #eee; padding: 8px; text-align: left; }
        .items-table th { background: #f8fafc; }
        .qty-col, .price-col, .total-col { text-align: right; }
        .totals { text-align: right; font-size: 16px; }
        .total-row { font-weight: bold; font-size: 18px; }
        .footer { margin-top: 40px; font-size: 12px; color: #666; text-align: center; }
    </style>
</head>
<body>
    <div class="header">
        <div class="invoice-title">INVOICE</div>
        <p><strong>{{.Company.Name}}</strong></p>
        {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
        {{if .Company.Email}}<p>{{.Company.Email}}</p>{{end}}
        <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
        <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
        <p><strong>Order Date:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
        <p><strong>Status:</strong> {{.Order.Status}}</p>
        <p><strong>Shipping Method:</strong> {{.Order.ShippingMethod}}</p>
        <p><strong>Payment Method:</strong> {{.Order.PaymentMethod}}</p>
    </div>

    <div class="addresses">
        {{if .ShippingAddress}}
        <div class="section-title">Ship To:</div>
        <p>{{.ShippingAddress.StreetAddress}}</p>
        <p>{{.ShippingAddress.City}}{{if .ShippingAddress.State}}, {{.ShippingAddress.State}}{{end}} {{.ShippingAddress.PostalCode}}</p>
        <p>{{.ShippingAddress.Country}}</p>
        {{end}}
        {{if .BillingAddress}}
        <div class="section-title">Bill To:</div>
        <p>{{.BillingAddress.StreetAddress}}</p>
        <p>{{.BillingAddress.City}}{{if .BillingAddress.State}}, {{.BillingAddress.State}}{{end}} {{.BillingAddress.PostalCode}}</p>
        <p>{{.BillingAddress.Country}}</p>
        {{end}}
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{dollars .Price}}</td>
                <td class="total-col">{{dollars .TotalPrice}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <p class="total-row">Total: {{dollars .Order.TotalPrice}}</p>
    </div>

    <div class="footer">
        <p>Thank you for your business!</p>
        {{if .Company.Email}}<p>Questions about this invoice? Contact us at {{.Company.Email}}</p>{{end}}
    </div>
</body>
</html>
`
