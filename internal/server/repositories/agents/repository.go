package agents

import (
	"context"

	"github.com/dmitrijs2005/pagescout/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]models.Agent, error)
	Create(ctx context.Context, agent *models.Agent) (*models.Agent, error)
}
