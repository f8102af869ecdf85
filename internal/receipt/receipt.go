package receipt

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"restropos-services/internal/report"

	"github.com/phpdave11/gofpdf"
)

type Line struct {
	Name     string
	Quantity int
	Price    string
	Subtotal string
}

// Data is everything the PDF needs, preformatted.
type Data struct {
	StoreName      string
	StoreAddress   string
	StorePhone     string
	OrderNumber    string
	Outlet         string
	CustomerName   string
	CustomerMobile string
	PlacedAt       string
	Lines          []Line
	Subtotal       string
	Discount       string
	Tax            string
	TaxRate        string
	Total          string
	PaymentType    string
	Status         string
}

// Build formats an order into receipt data. storeName/address/phone come
// from the stores table when the outlet resolves to a known store; the
// raw outlet string is the fallback header.
func Build(o report.Order, storeName, storeAddress, storePhone string) Data {
	if strings.TrimSpace(storeName) == "" {
		storeName = o.Outlet
	}

	lines := make([]Line, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, Line{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    FormatAmount(it.Price),
			Subtotal: FormatAmount(it.Price * float64(it.Quantity)),
		})
	}

	data := Data{
		StoreName:      storeName,
		StoreAddress:   storeAddress,
		StorePhone:     storePhone,
		OrderNumber:    o.Number,
		Outlet:         o.Outlet,
		CustomerName:   o.Customer.Name,
		CustomerMobile: o.Customer.Mobile,
		PlacedAt:       o.PlacedAt.Format("2006-01-02 15:04"),
		Lines:          lines,
		Subtotal:       FormatAmount(o.Subtotal),
		Total:          FormatAmount(o.Total),
		PaymentType:    strings.ToUpper(string(o.PaymentType)),
		Status:         strings.ToUpper(string(o.Status)),
	}
	if o.DiscountAmount > 0 {
		data.Discount = FormatAmount(o.DiscountAmount)
	}
	if o.TaxAmount > 0 {
		data.Tax = FormatAmount(o.TaxAmount)
		data.TaxRate = fmt.Sprintf("%.1f%%", o.TaxRate*100)
	}
	return data
}

// FormatAmount renders a rupee amount for the receipt.
func FormatAmount(value float64) string {
	return fmt.Sprintf("Rs %.2f", value)
}

// Render builds the PDF.
func Render(data Data) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, data.StoreName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if data.StoreAddress != "" {
		pdf.MultiCell(0, 4, data.StoreAddress, "", "C", false)
	}
	if data.StorePhone != "" {
		pdf.CellFormat(0, 5, data.StorePhone, "", 1, "C", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Order %s", data.OrderNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Placed: %s", data.PlacedAt), "", 1, "C", false, 0, "")
	if data.CustomerName != "" {
		customer := data.CustomerName
		if data.CustomerMobile != "" {
			customer += " · " + data.CustomerMobile
		}
		pdf.CellFormat(0, 5, customer, "", 1, "C", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Items", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	for _, line := range data.Lines {
		pdf.CellFormat(110, 5, fmt.Sprintf("%dx %s", line.Quantity, line.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, line.Subtotal, "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Totals", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	totalRow := func(label, amount string) {
		pdf.CellFormat(110, 5, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, amount, "", 1, "R", false, 0, "")
	}
	totalRow("Subtotal", data.Subtotal)
	if data.Discount != "" {
		totalRow("Discount", "-"+data.Discount)
	}
	if data.Tax != "" {
		totalRow(fmt.Sprintf("Tax (%s)", data.TaxRate), data.Tax)
	}
	pdf.SetFont("Arial", "B", 11)
	totalRow("Total", data.Total)

	pdf.Ln(2)
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Payment: %s", data.PaymentType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("Status: %s", data.Status), "", 1, "L", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Filename sanitizes an order number into a safe receipt file name.
func Filename(orderNumber string) string {
	clean := filenameRe.ReplaceAllString(orderNumber, "_")
	return strings.Trim(clean, "_") + ".pdf"
}
