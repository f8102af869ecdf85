package receipt

import (
	"testing"
	"time"

	"restropos-services/internal/report"
)

func TestBuild(t *testing.T) {
	order := report.Order{
		Number: "KDP-20250510-193045-007",
		Customer: report.Customer{
			Name:   "Ravi Kumar",
			Mobile: "9876543210",
		},
		Items: []report.Item{
			{ProductID: 1, Name: "Chicken Biryani", Price: 320, Quantity: 2},
			{ProductID: 7, Name: "Butter Naan", Price: 45, Quantity: 3},
		},
		Subtotal:       775,
		DiscountAmount: 75,
		TaxRate:        0.05,
		TaxAmount:      35,
		Total:          735,
		PaymentType:    report.PaymentUPI,
		Status:         report.StatusCompleted,
		Outlet:         "Kondapur",
		PlacedAt:       time.Date(2025, 5, 10, 19, 30, 45, 0, time.UTC),
	}

	data := Build(order, "Kondapur", "Plot 42, Kondapur Main Road", "+91 90000 10001")

	if data.StoreName != "Kondapur" {
		t.Fatalf("expected store name Kondapur, got %s", data.StoreName)
	}
	if len(data.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(data.Lines))
	}
	if data.Lines[0].Subtotal != "Rs 640.00" {
		t.Fatalf("expected line subtotal Rs 640.00, got %s", data.Lines[0].Subtotal)
	}
	if data.Discount != "Rs 75.00" {
		t.Fatalf("expected discount Rs 75.00, got %s", data.Discount)
	}
	if data.TaxRate != "5.0%" {
		t.Fatalf("expected tax rate 5.0%%, got %s", data.TaxRate)
	}
	if data.Total != "Rs 735.00" {
		t.Fatalf("expected total Rs 735.00, got %s", data.Total)
	}
	if data.PaymentType != "UPI" {
		t.Fatalf("expected payment UPI, got %s", data.PaymentType)
	}
}

func TestBuildFallsBackToOutlet(t *testing.T) {
	order := report.Order{Number: "X-1", Outlet: "  gachibowli "}
	data := Build(order, "", "", "")
	if data.StoreName != "  gachibowli " {
		t.Fatalf("expected raw outlet fallback, got %q", data.StoreName)
	}
	if data.Discount != "" || data.Tax != "" {
		t.Fatal("expected zero discount and tax to be omitted")
	}
}

func TestRenderProducesPDF(t *testing.T) {
	data := Build(report.Order{
		Number:      "KDP-20250510-193045-007",
		Items:       []report.Item{{Name: "Dal Tadka", Price: 180, Quantity: 1}},
		Subtotal:    180,
		Total:       180,
		PaymentType: report.PaymentCash,
		Status:      report.StatusCompleted,
		Outlet:      "Kondapur",
		PlacedAt:    time.Date(2025, 5, 10, 13, 0, 0, 0, time.UTC),
	}, "Kondapur", "", "")

	out, err := Render(data)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if string(out.Bytes()[:4]) != "%PDF" {
		t.Fatalf("expected PDF header, got %q", out.Bytes()[:4])
	}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"KDP-20250510-193045-007", "KDP-20250510-193045-007.pdf"},
		{"KDP/2025..07", "KDP_2025_07.pdf"},
		{"  spaced out  ", "spaced_out.pdf"},
	}
	for _, tc := range cases {
		if got := Filename(tc.in); got != tc.want {
			t.Fatalf("Filename(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
