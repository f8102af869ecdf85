package report

import "time"

type PaymentType string

const (
	PaymentCash PaymentType = "cash"
	PaymentCard PaymentType = "card"
	PaymentUPI  PaymentType = "upi"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type Customer struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

type Item struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a completed transaction as the reporting core sees it: a fully
// materialized row, immutable except for Status. Outlet is the store name as
// entered upstream and may be inconsistently cased or spaced.
type Order struct {
	Number         string      `json:"orderNumber"`
	Customer       Customer    `json:"customer"`
	Items          []Item      `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	DiscountAmount float64     `json:"discountAmount"`
	TaxRate        float64     `json:"taxRate"`
	TaxAmount      float64     `json:"taxAmount"`
	Total          float64     `json:"total"`
	PaymentType    PaymentType `json:"paymentType"`
	Status         OrderStatus `json:"status"`
	Outlet         string      `json:"outlet"`
	PlacedAt       time.Time   `json:"placedAt"`
}

// MonthKey is the calendar-month bucket used by every month comparison in
// this package.
func (o Order) MonthKey() string {
	return o.PlacedAt.Format("2006-01")
}
