package accountcache

import (
	"context"

	"fjacquet/firefly-importer/internal/models"
)

// Directory lists the accounts of the ledger service. The Firefly III client
// implements it.
//
//go:generate mockgen -destination=mocks/mock_directory.go -package=mock_accountcache -source=interface.go
type Directory interface {
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
