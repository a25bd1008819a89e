package models

// Transaction types understood by Firefly III.
const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// Category assigned to every merged internal transfer.
const CategoryRedistribution = "Ανακατανομή"

// File permissions
const (
	PermissionExportFile = 0600
	PermissionDirectory  = 0750
)
