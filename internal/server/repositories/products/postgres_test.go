package products

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO products (name, price, description)`)).
		WithArgs("Widget", "9.99", "A widget").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	created, err := repo.Create(ctx, &models.Product{Name: "Widget", Price: "9.99", Description: "A widget"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, price, description FROM products`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "description"}).
			AddRow(int64(3), "Widget", "9.99", "A widget").
			AddRow(int64(4), "Gadget", "12", "A gadget"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{
		{ID: 3, Name: "Widget", Price: "9.99", Description: "A widget"},
		{ID: 4, Name: "Gadget", Price: "12", Description: "A gadget"},
	}, list)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO products`).WillReturnError(errors.New("disk full"))
	_, err = repo.Create(ctx, &models.Product{Name: "n", Price: "1", Description: "d"})
	require.ErrorContains(t, err, "disk full")

	mock.ExpectQuery(`SELECT id, name, price, description FROM products`).WillReturnError(errors.New("timeout"))
	_, err = repo.List(ctx)
	require.ErrorContains(t, err, "timeout")

	mock.ExpectQuery(`SELECT id, name, price, description FROM products`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "only two columns"))
	_, err = repo.List(ctx)
	require.Error(t, err)
}
