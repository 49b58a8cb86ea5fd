package cart

import (
	"github.com/shopfront/shopfront-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// QuotedLine is one cart line with a live item snapshot and its subtotal.
// The snapshot never outlives a single response.
type QuotedLine struct {
	Item     catalog.ItemResponse `json:"item"`
	Quantity int                  `json:"quantity"`
	Subtotal float64              `json:"subtotal"`
}

// Quote is the quoted cart view every cart operation returns.
type Quote struct {
	Cart  []QuotedLine `json:"cart"`
	Total float64      `json:"total"`
}

func subtotalCents(priceCents int64, quantity int) decimal.Decimal {
	return decimal.NewFromInt(priceCents).Mul(decimal.NewFromInt(int64(quantity)))
}

func dollars(cents decimal.Decimal) float64 {
	value, _ := cents.Div(decimal.NewFromInt(100)).Float64()
	return value
}
