package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is applied to the order total when a bill is generated.
var TaxRate = decimal.RequireFromString("0.10")

// Bill is computed on demand from an order and never stored.
type Bill struct {
	OrderID     int64           `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	TableNumber int             `json:"tableNumber"`
	Items       []LineItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

func (b *Bill) ResourceType() string {
	return "bill"
}

// NewBill derives a bill from the stored total. Rounding is half away from
// zero to two places.
func NewBill(o *Order, at time.Time) *Bill {
	subtotal := o.TotalAmount
	tax := subtotal.Mul(TaxRate).Round(2)
	items := o.Items
	if items == nil {
		items = []LineItem{}
	}
	return &Bill{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		TableNumber: o.TableNumber,
		Items:       items,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax).Round(2),
		GeneratedAt: at,
	}
}
