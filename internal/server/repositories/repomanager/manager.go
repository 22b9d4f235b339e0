package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/pagescout/internal/dbx"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/agents"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/products"
	"github.com/dmitrijs2005/pagescout/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can use
// the same repositories inside and outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Agents(db dbx.DBTX) agents.Repository
	Products(db dbx.DBTX) products.Repository
}
