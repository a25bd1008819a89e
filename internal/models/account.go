package models

// Account is a Firefly III asset or liability account as listed by the
// accounts endpoint.
type Account struct {
	ID            string
	Name          string
	Type          string
	AccountNumber string
	IBAN          string
	Notes         string
}
