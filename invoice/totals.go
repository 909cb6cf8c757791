// Package invoice computes invoice totals and formats amounts for display.
package invoice

// LineItem is one billed line of an invoice.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Total returns quantity times price.
func (li LineItem) Total() float64 {
	return li.Quantity * li.Price
}

// Totals is the result of ComputeTotals.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	GrandTotal     float64 `json:"grandTotal"`
}

// ComputeTotals derives invoice totals from line items and percentage rates.
// The discount applies to the subtotal and the tax to the discounted amount.
// Values are not rounded; rounding is a presentation concern.
func ComputeTotals(items []LineItem, taxRate, discountRate float64) Totals {
	var t Totals
	for _, li := range items {
		t.Subtotal += li.Total()
	}
	t.DiscountAmount = t.Subtotal * discountRate / 100
	taxable := t.Subtotal - t.DiscountAmount
	t.TaxAmount = taxable * taxRate / 100
	t.GrandTotal = taxable + t.TaxAmount
	return t
}
