package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/tasklist/internal/dbx"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/tasklist/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// use the same constructors inside and outside transactions.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
