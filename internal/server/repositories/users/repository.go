package users

import (
	"context"

	"github.com/dmitrijs2005/pagescout/internal/server/models"
)

// Repository persists credentials. Create fails with common.ErrAlreadyExists
// when the username is taken; GetByUsername fails with common.ErrNotFound
// when it is unknown.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
