package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"moneta/internal/domain/catalogs/account"
	"moneta/internal/infrastructure/storage/postgres"
)

const accountTable = "cat_accounts"

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*BaseCatalogRepo[*account.Account]
}

// NewAccountRepo creates a new account repository.
func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*account.Account](
			accountTable,
			postgres.ExtractDBColumns[account.Account](),
			func() *account.Account { return &account.Account{} },
		),
	}
}

// ListByClass retrieves accounts of the given class.
func (r *AccountRepo) ListByClass(ctx context.Context, class account.Class) ([]*account.Account, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"class": class}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC")

	return r.FindMany(ctx, q)
}

// ListCashBank retrieves cash and bank accounts.
func (r *AccountRepo) ListCashBank(ctx context.Context) ([]*account.Account, error) {
	q := r.BaseSelect().
		Where(squirrel.Eq{"is_cash_bank": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code ASC")

	return r.FindMany(ctx, q)
}
