package accounts

import (
	"context"
	"errors"
	"fmt"
	"testing"

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
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func TestCreateAndFindByID(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	created, err := repo.Create(context.Background(), &models.User{
		Name:         "Shopper",
		Email:        "shopper@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected an id to be assigned")
	}

	found, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Email != "shopper@example.com" {
		t.Errorf("email = %q", found.Email)
	}
}

func TestFindByEmailNormalizesInput(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	if _, err := repo.Create(context.Background(), &models.User{
		Name:         "Shopper",
		Email:        "shopper@example.com",
		PasswordHash: "hash",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	found, err := repo.FindByEmail(context.Background(), "  SHOPPER@Example.COM ")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.Name != "Shopper" {
		t.Errorf("name = %q", found.Name)
	}
}

func TestFindByEmailMissing(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}
