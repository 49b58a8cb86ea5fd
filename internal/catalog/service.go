package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/pkg/db"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfront/shopfront-backend/pkg/errors"
	"github.com/shopfront/shopfront-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes catalog management and query operations.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error)
	Create(ctx context.Context, input CreateItemInput) (*ItemResponse, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateItemInput holds the validated payload to create an item. Price is in
// dollars.
type CreateItemInput struct {
	Name        string
	Description *string
	Price       float64
	Category    *string
	ImageURL    *string
	Stock       int
}

// UpdateItemInput holds optional mutation values for an item. Nil fields are
// left untouched.
type UpdateItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Stock       *int
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// List answers a filtered, sorted, paginated catalog query.
func (s *service) List(ctx context.Context, input ListInput) (*ListResponse, error) {
	input.Page = pagination.Normalize(input.Page)

	items, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing items")
	}

	return &ListResponse{
		Items: itemResponsesFromModels(items),
		Total: total,
		Page:  input.Page.Page,
		Pages: pagination.Pages(total, input.Page.Limit),
	}, nil
}

// Get loads one item by id.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}
	return ItemResponseFromModel(item), nil
}

// Create inserts a new catalog item.
func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	priceCents, err := centsFromDollars(input.Price)
	if err != nil {
		return nil, err
	}
	if input.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}

	item := &models.Item{
		Name:        name,
		Description: input.Description,
		PriceCents:  priceCents,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating item")
	}
	return ItemResponseFromModel(created), nil
}

// Update applies the provided fields to an existing item.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemResponse, error) {
	var updated *models.Item
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		item, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
			}
			item.Name = name
		}
		if input.Description != nil {
			item.Description = input.Description
		}
		if input.Price != nil {
			priceCents, err := centsFromDollars(*input.Price)
			if err != nil {
				return err
			}
			item.PriceCents = priceCents
		}
		if input.Category != nil {
			item.Category = input.Category
		}
		if input.ImageURL != nil {
			item.ImageURL = input.ImageURL
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
			}
			item.Stock = *input.Stock
		}

		updated, err = txRepo.Update(ctx, item)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ItemResponseFromModel(updated), nil
}

// Delete removes an item. Cart lines referencing it become dangling and are
// pruned by the cart engine on the next read.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return nil
}

func centsFromDollars(dollars float64) (int64, error) {
	amount := decimal.NewFromFloat(dollars)
	if amount.IsNegative() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
