package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/repomanager"
)

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	list, err := s.repomanager.Products(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", common.ErrInternal, err)
	}
	return list, nil
}

// Create stores a product. All three fields are required; price may have
// been sent as a JSON string or number.
func (s *ProductService) Create(ctx context.Context, name string, price *models.Price, description string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || price == nil || strings.TrimSpace(price.String()) == "" || description == "" {
		return nil, fmt.Errorf("%w: name, price and description are required", common.ErrInvalidInput)
	}

	product, err := s.repomanager.Products(s.db).Create(ctx, &models.Product{
		Name:        name,
		Price:       strings.TrimSpace(price.String()),
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create product: %w", common.ErrInternal, err)
	}
	return product, nil
}
