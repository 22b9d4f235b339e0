package agents

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pagescout/internal/dbx"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Agent, error) {
	query :=
		`SELECT id, agent_name, prompt, image_url FROM agents
		 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Agent, 0)
	for rows.Next() {
		var a models.Agent
		if err := rows.Scan(&a.ID, &a.AgentName, &a.Prompt, &a.ImageURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	query :=
		`INSERT INTO agents (agent_name, prompt, image_url)
		 VALUES ($1, $2, $3)
		 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, agent.AgentName, agent.Prompt, agent.ImageURL).Scan(&agent.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return agent, nil
}
