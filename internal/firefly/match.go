package firefly

import (
	"strings"

	"fjacquet/firefly-importer/internal/models"
)

// MatchesReference reports whether account corresponds to a bank product
// number: an exact account number or IBAN match, or the reference appearing
// anywhere in the account notes.
func MatchesReference(account models.Account, ref string) bool {
	if ref == "" {
		return false
	}
	if account.AccountNumber == ref || account.IBAN == ref {
		return true
	}
	return account.Notes != "" && strings.Contains(account.Notes, ref)
}

// FindAccount returns the first account matching ref.
func FindAccount(accounts []models.Account, ref string) (models.Account, bool) {
	for _, a := range accounts {
		if MatchesReference(a, ref) {
			return a, true
		}
	}
	return models.Account{}, false
}
