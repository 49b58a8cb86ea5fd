package catalog

import (
	"context"
	"fmt"

	"github.com/shopfront/shopfront-backend/pkg/db/models"
	"github.com/shopfront/shopfront-backend/pkg/logger"
)

// SeedDefaults inserts the starter catalog when the items table is empty.
// Returns the number of rows inserted (zero when the catalog already has
// items).
func SeedDefaults(ctx context.Context, repo *Repository, logg *logger.Logger) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	items := defaultItems()
	if err := repo.CreateBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("seeding items: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "count", len(items)), "seeded default catalog items")
	}
	return len(items), nil
}

func defaultItems() []models.Item {
	return []models.Item{
		{
			Name:        "Wireless Headphones",
			Description: ptr("Noise-cancelling Bluetooth over-ear headphones"),
			PriceCents:  9999,
			Category:    ptr("electronics"),
			ImageURL:    ptr("https://as2.ftcdn.net/jpg/13/51/79/99/1000_F_1351799931_l5t4oPt30SQg9gYi4q3xfoWNCXqHA0b2.webp"),
			Stock:       25,
		},
		{
			Name:        "Smartwatch Series 5",
			Description: ptr("Fitness tracking, heart-rate monitor, notifications"),
			PriceCents:  14900,
			Category:    ptr("electronics"),
			ImageURL:    ptr("https://t3.ftcdn.net/jpg/00/85/51/56/240_F_85515668_dbMmOjChn3nNgpl8vKlQ7IXtHgboiuPB.jpg"),
			Stock:       30,
		},
		{
			Name:        "Modern Desk Lamp",
			Description: ptr("LED lamp with adjustable arm and brightness"),
			PriceCents:  3950,
			Category:    ptr("home"),
			ImageURL:    ptr("https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcShF5orblI4whGp8wB_BMSAJMH-IqQK40R9lA&s"),
			Stock:       40,
		},
		{
			Name:        "Cotton T-Shirt",
			Description: ptr("Premium cotton tee, classic fit"),
			PriceCents:  1999,
			Category:    ptr("clothing"),
			ImageURL:    ptr("https://t3.ftcdn.net/jpg/03/37/48/98/240_F_337489890_imUZsO8hprZyr5VryTUuCg3O4WkQpN7O.jpg"),
			Stock:       100,
		},
		{
			Name:        "Cooking Essentials Cookbook",
			Description: ptr("100+ recipes for everyday cooking"),
			PriceCents:  2499,
			Category:    ptr("books"),
			ImageURL:    ptr("https://t4.ftcdn.net/jpg/00/38/29/53/240_F_38295340_lelB8VrDWCp3RUJFShsIWdraJ8puvyHW.jpg"),
			Stock:       60,
		},
		{
			Name:        "Ergonomic Mouse",
			Description: ptr("Wireless ergonomic mouse with programmable buttons"),
			PriceCents:  2999,
			Category:    ptr("electronics"),
			ImageURL:    ptr("https://t3.ftcdn.net/jpg/13/65/92/16/240_F_1365921690_C5aawx8PxkvAFoHN2VaajtVWbINCPqxl.jpg"),
			Stock:       50,
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
