// Package classifier turns normalized export rows into ledger transactions.
//
// Most rows map one to one onto a deposit or a withdrawal. Internal
// redistributions between the customer's own products are exported as two
// adjacent rows; the classifier pairs them up and emits a single transfer.
package classifier

import (
	"errors"
	"strings"

	"fjacquet/firefly-importer/internal/currencyutils"
	"fjacquet/firefly-importer/internal/models"
	"fjacquet/firefly-importer/internal/parsererror"
)

// Markers of the Piraeus export that drive pairing.
const (
	// CategoryRedistribution marks one leg of an internal redistribution.
	CategoryRedistribution = models.CategoryRedistribution

	// CategoryBusiness rows may close a pending redistribution.
	CategoryBusiness = "Επαγγελματικά"

	// PaymentConfirmationMarker appears in the description of the closing
	// leg of a card payment redistribution.
	PaymentConfirmationMarker = "(ΠΛΗΡΩΜΗ - ΕΥΧΑΡΙΣΤΟΥΜΕ)"
)

// ErrNoPreviousTransaction is returned when a payment confirmation row has
// neither a pending redistribution nor an already emitted transaction to
// pair with.
var ErrNoPreviousTransaction = errors.New("payment confirmation without a preceding transaction")

// StateKind enumerates the classifier states.
type StateKind int

const (
	// NoPending means no redistribution row is waiting for its partner.
	NoPending StateKind = iota
	// PendingReference means one redistribution row is waiting.
	PendingReference
)

// State is the classifier state between two rows. For PendingReference it
// carries the waiting row's account reference and its resolved identifier.
type State struct {
	Kind      StateKind
	Ref       string
	AccountID string
}

// Pending returns the state holding an unmatched redistribution row.
func Pending(ref, accountID string) State {
	return State{Kind: PendingReference, Ref: ref, AccountID: accountID}
}

// IsPending reports whether a redistribution row is waiting.
func (s State) IsPending() bool {
	return s.Kind == PendingReference
}

// EventKind enumerates the diagnostics a transition can report.
type EventKind int

const (
	// EventUnmatchedRedistribution: a pending row was followed by an
	// unrelated row and has been dropped.
	EventUnmatchedRedistribution EventKind = iota + 1
	// EventDanglingRedistribution: input ended with a pending row.
	EventDanglingRedistribution
)

// Event is a diagnostic produced by a transition.
type Event struct {
	Kind       EventKind
	PendingRef string
	Row        models.NormalizedRow
}

// Input is everything a transition looks at: the row, its resolved account
// and the last transaction emitted so far (nil when none).
type Input struct {
	Row       models.NormalizedRow
	AccountID string
	Previous  *models.Transaction
}

// Outcome is the result of one transition.
//
// Next always applies, even when Err is set. Emit, when non-nil, is appended
// to the output, or replaces the last emitted transaction when
// ReplacePrevious is true. An Err wrapping *parsererror.InvariantError is
// fatal for the run; any other Err means the row is skipped.
type Outcome struct {
	Next            State
	Emit            *models.Transaction
	ReplacePrevious bool
	Event           *Event
	Err             error
}

// Transition applies one row to the state. It performs no I/O.
func Transition(state State, in Input) Outcome {
	row := in.Row

	if strings.Contains(row.Description, PaymentConfirmationMarker) {
		return closeWithConfirmation(state, in)
	}

	if row.Category == CategoryRedistribution {
		if !state.IsPending() {
			return Outcome{Next: Pending(row.AccountRef, in.AccountID)}
		}
		return pairedTransfer(state, in)
	}

	var event *Event
	if state.IsPending() {
		if row.Category == CategoryBusiness {
			return pairedTransfer(state, in)
		}
		event = &Event{Kind: EventUnmatchedRedistribution, PendingRef: state.Ref, Row: row}
	}

	out := classifyNormal(in)
	out.Event = event
	return out
}

// Finish reports a redistribution row left waiting at end of input.
func Finish(state State) *Event {
	if !state.IsPending() {
		return nil
	}
	return &Event{Kind: EventDanglingRedistribution, PendingRef: state.Ref}
}

// closeWithConfirmation emits the transfer closed by a payment confirmation
// row. Without a pending row the previously emitted transaction is taken to
// be the other leg: it is withdrawn and its source reused.
func closeWithConfirmation(state State, in Input) Outcome {
	row := in.Row
	replace := false

	var source string
	if state.IsPending() {
		source = state.AccountID
	} else {
		if in.Previous == nil {
			return Outcome{Next: State{}, Err: ErrNoPreviousTransaction}
		}
		source = in.Previous.SourceID
		replace = true
	}

	tx, err := models.NewTransfer(row.Date, row.Amount, row.Description, source, in.AccountID, CategoryRedistribution)
	if err != nil {
		return Outcome{Next: State{}, Err: err}
	}
	return Outcome{Next: State{}, Emit: &tx, ReplacePrevious: replace}
}

// pairedTransfer merges the current row with the pending one: money leaves
// the current row's account and lands in the pending row's account.
func pairedTransfer(state State, in Input) Outcome {
	row := in.Row
	tx, err := models.NewTransfer(row.Date, currencyutils.StripSign(row.Amount), row.Description,
		in.AccountID, state.AccountID, CategoryRedistribution)
	if err != nil {
		return Outcome{Next: State{}, Err: err}
	}
	return Outcome{Next: State{}, Emit: &tx}
}

// classifyNormal turns a row into a withdrawal or a deposit by amount sign.
func classifyNormal(in Input) Outcome {
	row := in.Row
	amount, err := currencyutils.ParseAmount(row.Amount)
	if err != nil {
		return Outcome{Next: State{}, Err: &parsererror.ParseError{
			Line:  row.Line,
			Field: "amount",
			Value: row.Amount,
			Err:   err,
		}}
	}

	var tx models.Transaction
	if currencyutils.IsNegative(amount) {
		tx, err = models.NewWithdrawal(row.Date, currencyutils.StripSign(row.Amount), row.Description, in.AccountID, row.Category)
	} else {
		tx, err = models.NewDeposit(row.Date, row.Amount, row.Description, in.AccountID, row.Category)
	}
	if err != nil {
		return Outcome{Next: State{}, Err: err}
	}
	return Outcome{Next: State{}, Emit: &tx}
}

// IsFatal reports whether err must abort the run.
func IsFatal(err error) bool {
	var invErr *parsererror.InvariantError
	return errors.As(err, &invErr)
}
