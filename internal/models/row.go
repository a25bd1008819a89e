package models

// NormalizedRow is one data line of a bank export after cleaning.
//
// Line is the 1-based line number in the source file. Date is ISO 8601 when
// the source date parsed and the raw value otherwise. AccountRef is the
// product number without its friendly name or whitespace. Amount is signed,
// uses a period as decimal separator and carries no thousands grouping.
type NormalizedRow struct {
	Line        int
	Category    string
	Description string
	Date        string
	AccountRef  string
	Amount      string
}
