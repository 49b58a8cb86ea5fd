package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Item{}, &models.CartLine{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func mustCreateItem(t *testing.T, tx *gorm.DB, name string, priceCents int64, category string, createdAt time.Time) *models.Item {
	t.Helper()
	item := &models.Item{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
		CreatedAt:  createdAt,
	}
	if category != "" {
		item.Category = &category
	}
	if err := tx.Create(item).Error; err != nil {
		t.Fatalf("create item %q: %v", name, err)
	}
	return item
}

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// seedStorefront inserts the six reference items with distinct timestamps.
func seedStorefront(t *testing.T, tx *gorm.DB) []*models.Item {
	t.Helper()
	fixtures := []struct {
		name       string
		priceCents int64
		category   string
	}{
		{"Wireless Headphones", 9999, "electronics"},
		{"Smartwatch Series 5", 14900, "electronics"},
		{"Modern Desk Lamp", 3950, "home"},
		{"Cotton T-Shirt", 1999, "clothing"},
		{"Cooking Essentials Cookbook", 2499, "books"},
		{"Ergonomic Mouse", 2999, "electronics"},
	}
	items := make([]*models.Item, 0, len(fixtures))
	for i, f := range fixtures {
		items = append(items, mustCreateItem(t, tx, f.name, f.priceCents, f.category, testEpoch.Add(time.Duration(i)*time.Minute)))
	}
	return items
}
