package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/carson-networks/finance-server/internal/config"
	"github.com/carson-networks/finance-server/internal/storage/account"
	"github.com/carson-networks/finance-server/internal/storage/budget"
	"github.com/carson-networks/finance-server/internal/storage/category"
	"github.com/carson-networks/finance-server/internal/storage/transaction"
	"github.com/carson-networks/finance-server/internal/storage/user"
)

// Storage bundles the per-entity collections behind their interfaces.
// One Storage (and one underlying client) is shared for the process
// lifetime.
type Storage struct {
	client *mongo.Client

	Users        user.IUserCollection
	Accounts     account.IAccountCollection
	Categories   category.ICategoryCollection
	Budgets      budget.IBudgetCollection
	Transactions transaction.ITransactionCollection

	indexers []indexEnsurer
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// NewStorage connects to the document store and binds the entity
// collections.
func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(env.MongoURI))
	if err != nil {
		return nil, err
	}

	db := client.Database(env.MongoDatabase)
	users := user.NewCollection(db)
	accounts := account.NewCollection(db)
	categories := category.NewCollection(db)
	budgets := budget.NewCollection(db)
	transactions := transaction.NewCollection(db)

	return &Storage{
		client:       client,
		Users:        users,
		Accounts:     accounts,
		Categories:   categories,
		Budgets:      budgets,
		Transactions: transactions,
		indexers:     []indexEnsurer{users, accounts, categories, budgets, transactions},
	}, nil
}

// EnsureIndexes creates the unique and lookup indexes the services rely
// on (unique user email, unique budget period tuple, guard lookups).
func (s *Storage) EnsureIndexes(ctx context.Context) error {
	for _, indexer := range s.indexers {
		if err := indexer.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Ping verifies the document store is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the shared client.
func (s *Storage) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
