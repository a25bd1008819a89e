// Package models provides the data structures shared by the parser, the
// classifier and the Firefly III client.
package models

import (
	"fmt"

	"fjacquet/firefly-importer/internal/parsererror"
)

// TransactionType is the Firefly III transaction type.
type TransactionType string

func (t TransactionType) String() string {
	return string(t)
}

// Transaction is a record ready to be submitted to Firefly III.
//
// A deposit has only a destination, a withdrawal only a source and a
// transfer both. Source and destination are never the same account.
type Transaction struct {
	Type          TransactionType `csv:"type" yaml:"type" json:"type"`
	Date          string          `csv:"date" yaml:"date" json:"date"`
	Amount        string          `csv:"amount" yaml:"amount" json:"amount"`
	Description   string          `csv:"description" yaml:"description" json:"description"`
	SourceID      string          `csv:"source_id" yaml:"source_id,omitempty" json:"source_id,omitempty"`
	DestinationID string          `csv:"destination_id" yaml:"destination_id,omitempty" json:"destination_id,omitempty"`
	Category      string          `csv:"category" yaml:"category" json:"category"`
}

// NewDeposit builds a deposit into destinationID.
func NewDeposit(date, amount, description, destinationID, category string) (Transaction, error) {
	return newTransaction(Transaction{
		Type:          TransactionTypeDeposit,
		Date:          date,
		Amount:        amount,
		Description:   description,
		DestinationID: destinationID,
		Category:      category,
	})
}

// NewWithdrawal builds a withdrawal from sourceID.
func NewWithdrawal(date, amount, description, sourceID, category string) (Transaction, error) {
	return newTransaction(Transaction{
		Type:        TransactionTypeWithdrawal,
		Date:        date,
		Amount:      amount,
		Description: description,
		SourceID:    sourceID,
		Category:    category,
	})
}

// NewTransfer builds a transfer between two accounts.
func NewTransfer(date, amount, description, sourceID, destinationID, category string) (Transaction, error) {
	return newTransaction(Transaction{
		Type:          TransactionTypeTransfer,
		Date:          date,
		Amount:        amount,
		Description:   description,
		SourceID:      sourceID,
		DestinationID: destinationID,
		Category:      category,
	})
}

// newTransaction rejects a record whose source and destination are the
// same, including the case where both are missing.
func newTransaction(tx Transaction) (Transaction, error) {
	if tx.SourceID == tx.DestinationID {
		return Transaction{}, &parsererror.InvariantError{
			Type:          tx.Type.String(),
			SourceID:      tx.SourceID,
			DestinationID: tx.DestinationID,
			Description:   tx.Description,
			Amount:        tx.Amount,
			Err:           parsererror.ErrSameAccount,
		}
	}
	return tx, nil
}

// String renders the transaction as a single summary line.
func (t Transaction) String() string {
	return fmt.Sprintf("%s\t| %s\t| %s\t| %s\t| %s -> %s",
		t.Type, t.Date, t.Amount, t.Description, orNull(t.SourceID), orNull(t.DestinationID))
}

func orNull(id string) string {
	if id == "" {
		return "null"
	}
	return id
}
