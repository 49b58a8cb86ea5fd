package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ItemResponse is the public shape of a catalog item. Price is exposed as
// decimal dollars; storage is integer cents.
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    *string   `json:"category,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListResponse is the paginated catalog query result.
type ListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// DollarsFromCents converts integer cents to a dollars amount for display.
func DollarsFromCents(cents int64) float64 {
	dollars, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return dollars
}

// ItemResponseFromModel converts an item row into its public shape.
func ItemResponseFromModel(item *models.Item) *ItemResponse {
	if item == nil {
		return nil
	}
	return &ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Price:       DollarsFromCents(item.PriceCents),
		Category:    item.Category,
		ImageURL:    item.ImageURL,
		Stock:       item.Stock,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func itemResponsesFromModels(items []models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *ItemResponseFromModel(&items[i]))
	}
	return out
}
