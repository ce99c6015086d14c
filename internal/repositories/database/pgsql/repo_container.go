package pgsql

import (
	portsrepo "github.com/fbsys/fbs_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all PostgreSQL-backed repositories onto a
// shared connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		FeedbackRepo:    newPgxFeedbackRepository(pool),
	}
}
