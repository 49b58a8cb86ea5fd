package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/shopfront-backend/pkg/db/models"
)

// Profile is the public shape of a user account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileFromModel converts a user row into its public shape.
func ProfileFromModel(user *models.User) *Profile {
	if user == nil {
		return nil
	}
	return &Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
