package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/internal/catalog"
	"github.com/shopfront/shopfront-backend/pkg/db"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
	pkgerrors "github.com/shopfront/shopfront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the cart engine: add/remove/clear/read with merge, decrement,
// and prune semantics. Every operation returns the quoted view computed
// after the mutation, so clients never need a second round-trip.
type Service interface {
	Read(ctx context.Context, userID uuid.UUID) (*Quote, error)
	Add(ctx context.Context, userID, itemID uuid.UUID, quantity *int) (*Quote, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID, quantity *int) (*Quote, error)
	Clear(ctx context.Context, userID uuid.UUID) (*Quote, error)
}

type accountReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type itemReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error)
}

type service struct {
	repo     *Repository
	items    itemReader
	accounts accountReader
	dbClient *db.Client
}

// NewService constructs a cart engine instance.
func NewService(repo *Repository, items itemReader, accounts accountReader, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item reader required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("account reader required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, items: items, accounts: accounts, dbClient: dbClient}, nil
}

// Read prunes dangling lines, persists the pruning when anything changed,
// and returns the quoted cart.
func (s *service) Read(ctx context.Context, userID uuid.UUID) (*Quote, error) {
	if err := s.ensureAccount(ctx, userID); err != nil {
		return nil, err
	}
	return s.quote(ctx, userID)
}

// Add merges the quantity into an existing line or appends a new one.
// Caller-supplied quantities are coerced to at least 1.
func (s *service) Add(ctx context.Context, userID, itemID uuid.UUID, quantity *int) (*Quote, error) {
	if err := s.ensureAccount(ctx, userID); err != nil {
		return nil, err
	}

	qty := coerceQuantity(quantity)

	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading item")
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		line, err := txRepo.Find(ctx, userID, itemID)
		switch {
		case err == nil:
			line.Quantity += qty
			_, err = txRepo.Save(ctx, line)
			return err
		case errors.Is(err, gorm.ErrRecordNotFound):
			_, err = txRepo.Create(ctx, &models.CartLine{
				UserID:   userID,
				ItemID:   itemID,
				Quantity: qty,
			})
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "adding cart line")
	}

	return s.quote(ctx, userID)
}

// Remove deletes the line entirely when quantity is omitted; otherwise it
// decrements by the coerced quantity and deletes the line at zero or below.
func (s *service) Remove(ctx context.Context, userID, itemID uuid.UUID, quantity *int) (*Quote, error) {
	if err := s.ensureAccount(ctx, userID); err != nil {
		return nil, err
	}

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		line, err := txRepo.Find(ctx, userID, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
		}

		if quantity == nil {
			return txRepo.Delete(ctx, line.ID)
		}

		line.Quantity -= coerceQuantity(quantity)
		if line.Quantity <= 0 {
			return txRepo.Delete(ctx, line.ID)
		}
		_, err = txRepo.Save(ctx, line)
		return err
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart line")
	}

	return s.quote(ctx, userID)
}

// Clear empties the cart.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*Quote, error) {
	if err := s.ensureAccount(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.Clear(ctx, userID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return &Quote{Cart: []QuotedLine{}, Total: 0}, nil
}

// quote builds the quoted view from live catalog prices, pruning lines whose
// item no longer exists. Pruning is persisted only when something dangled.
func (s *service) quote(ctx context.Context, userID uuid.UUID) (*Quote, error) {
	lines, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing cart lines")
	}

	itemIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		itemIDs = append(itemIDs, line.ItemID)
	}

	items, err := s.items.FindByIDs(ctx, itemIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart items")
	}
	byID := make(map[uuid.UUID]*models.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	quoted := make([]QuotedLine, 0, len(lines))
	var dangling []uuid.UUID
	totalCents := decimal.Zero

	for _, line := range lines {
		item, ok := byID[line.ItemID]
		if !ok {
			dangling = append(dangling, line.ItemID)
			continue
		}
		lineCents := subtotalCents(item.PriceCents, line.Quantity)
		totalCents = totalCents.Add(lineCents)
		quoted = append(quoted, QuotedLine{
			Item:     *catalog.ItemResponseFromModel(item),
			Quantity: line.Quantity,
			Subtotal: dollars(lineCents),
		})
	}

	if len(dangling) > 0 {
		if err := s.repo.DeleteByItemIDs(ctx, userID, dangling); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "pruning cart lines")
		}
	}

	return &Quote{Cart: quoted, Total: dollars(totalCents)}, nil
}

func (s *service) ensureAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.accounts.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return nil
}

// coerceQuantity treats nil, zero, and negative caller quantities as 1.
func coerceQuantity(quantity *int) int {
	if quantity == nil || *quantity < 1 {
		return 1
	}
	return *quantity
}
