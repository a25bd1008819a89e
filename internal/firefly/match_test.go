package firefly

import (
	"testing"

	"fjacquet/firefly-importer/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchesReference(t *testing.T) {
	account := models.Account{
		ID:            "7",
		AccountNumber: "5012345678",
		IBAN:          "GR1601101250000000012300695",
		Notes:         "Piraeus cards: 411111******1111",
	}

	tests := []struct {
		name     string
		ref      string
		expected bool
	}{
		{"account number", "5012345678", true},
		{"iban", "GR1601101250000000012300695", true},
		{"notes substring", "411111******1111", true},
		{"account number prefix is not a match", "50123", false},
		{"unrelated", "999", false},
		{"blank", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesReference(account, tt.ref))
		})
	}
}

func TestFindAccount_ReturnsFirstMatch(t *testing.T) {
	accounts := []models.Account{
		{ID: "1", Notes: "old 5012"},
		{ID: "2", AccountNumber: "5012"},
	}

	a, ok := FindAccount(accounts, "5012")
	assert.True(t, ok)
	assert.Equal(t, "1", a.ID)

	_, ok = FindAccount(accounts, "6000")
	assert.False(t, ok)
}
