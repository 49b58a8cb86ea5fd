package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists catalog items and answers filtered queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new item row.
func (r *Repository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateBatch inserts multiple item rows in one statement.
func (r *Repository) CreateBatch(ctx context.Context, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindByID loads an item by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads the subset of items whose ids exist.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.Item
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists the full item row.
func (r *Repository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item by ID and reports whether a row was deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Count returns the total number of catalog rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Item{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List answers a sanitized catalog query: it returns one page of matching
// rows plus the total match count, without loading unmatched rows.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Item, int64, error) {
	var total int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Item{}), input)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Item{}), input)
	for _, clause := range orderClauses(input.Sort) {
		query = query.Order(clause)
	}

	var items []models.Item
	err := query.
		Offset(input.Page.Offset()).
		Limit(input.Page.Limit).
		Find(&items).
		Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *Repository) applyFilters(query *gorm.DB, input ListInput) *gorm.DB {
	if input.NameQuery != "" {
		pattern := "%" + escapeLike(strings.ToLower(input.NameQuery)) + "%"
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", pattern)
	}
	if len(input.Categories) > 0 {
		query = query.Where("category IN ?", input.Categories)
	}
	if input.MinPriceCents != nil {
		query = query.Where("price_cents >= ?", *input.MinPriceCents)
	}
	if input.MaxPriceCents != nil {
		query = query.Where("price_cents <= ?", *input.MaxPriceCents)
	}
	return query
}

// orderClauses keeps identical inputs deterministic: ties within a sort key
// break by insertion order. Natural order applies no clause at all.
func orderClauses(sort SortOrder) []string {
	switch sort {
	case SortNewest:
		return []string{"created_at DESC", "id DESC"}
	case SortPriceAsc:
		return []string{"price_cents ASC", "created_at ASC", "id ASC"}
	case SortPriceDesc:
		return []string{"price_cents DESC", "created_at ASC", "id ASC"}
	default:
		return nil
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
