package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pagescout/internal/common"
	"github.com/dmitrijs2005/pagescout/internal/dbx"
	"github.com/dmitrijs2005/pagescout/internal/server/models"
	agentsrepo "github.com/dmitrijs2005/pagescout/internal/server/repositories/agents"
	productsrepo "github.com/dmitrijs2005/pagescout/internal/server/repositories/products"
	usersrepo "github.com/dmitrijs2005/pagescout/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int64

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.users[u.Username]; ok {
		return nil, common.ErrAlreadyExists
	}
	f.nextID++
	stored := *u
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.users[u.Username] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

type fakeAgentsRepo struct {
	agents []models.Agent
	err    error
}

func (f *fakeAgentsRepo) List(ctx context.Context) ([]models.Agent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Agent{}, f.agents...), nil
}

func (f *fakeAgentsRepo) Create(ctx context.Context, a *models.Agent) (*models.Agent, error) {
	if f.err != nil {
		return nil, f.err
	}
	a.ID = int64(len(f.agents) + 1)
	f.agents = append(f.agents, *a)
	return a, nil
}

type fakeProductsRepo struct {
	products []models.Product
	err      error
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Product{}, f.products...), nil
}

func (f *fakeProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p.ID = int64(len(f.products) + 1)
	f.products = append(f.products, *p)
	return p, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	a *fakeAgentsRepo
	p *fakeProductsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), a: &fakeAgentsRepo{}, p: &fakeProductsRepo{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Agents(db dbx.DBTX) agentsrepo.Repository     { return m.a }
func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return m.p }
