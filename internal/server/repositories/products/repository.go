package products

import (
	"context"

	"github.com/dmitrijs2005/pagescout/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, agent *models.Product) (*models.Product, error)
}
