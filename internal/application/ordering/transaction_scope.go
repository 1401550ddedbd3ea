package ordering

import (
	"context"

	"github.com/kitchencloud/backend/internal/domain/account"
	"github.com/kitchencloud/backend/internal/domain/catalog"
	"github.com/kitchencloud/backend/internal/domain/ordering"
)

// TransactionScope runs a unit of work against repositories that share one database transaction.
// Returning an error from fn rolls everything back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to the current transaction.
// Account and order rows read through the *ForUpdate methods stay locked until commit.
type TransactionalRepositories interface {
	AccountRepo() account.AccountRepository
	RestaurantRepo() catalog.RestaurantRepository
	MenuItemRepo() catalog.MenuItemRepository
	OrderRepo() ordering.OrderRepository
}

// NoOpTransactionScope passes fixed repositories through without a transaction.
// Used in tests and wherever atomicity is provided elsewhere.
type NoOpTransactionScope struct {
	accountRepo    account.AccountRepository
	restaurantRepo catalog.RestaurantRepository
	menuItemRepo   catalog.MenuItemRepository
	orderRepo      ordering.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	accountRepo account.AccountRepository,
	restaurantRepo catalog.RestaurantRepository,
	menuItemRepo catalog.MenuItemRepository,
	orderRepo ordering.OrderRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		accountRepo:    accountRepo,
		restaurantRepo: restaurantRepo,
		menuItemRepo:   menuItemRepo,
		orderRepo:      orderRepo,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) AccountRepo() account.AccountRepository       { return s.accountRepo }
func (s *NoOpTransactionScope) RestaurantRepo() catalog.RestaurantRepository { return s.restaurantRepo }
func (s *NoOpTransactionScope) MenuItemRepo() catalog.MenuItemRepository     { return s.menuItemRepo }
func (s *NoOpTransactionScope) OrderRepo() ordering.OrderRepository          { return s.orderRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
