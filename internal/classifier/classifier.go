package classifier

import (
	"context"
	"errors"

	"fjacquet/firefly-importer/internal/logging"
	"fjacquet/firefly-importer/internal/models"
)

// Resolver maps an account reference to a ledger account identifier. The
// account cache implements it.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (id string, found bool, err error)
}

// Result is the outcome of classifying one export. DataRows counts rows
// whose account resolved, Skipped the rows dropped because of lookup or row
// errors and Unmatched the redistribution rows that never found a partner.
type Result struct {
	Transactions []models.Transaction
	DataRows     int
	Skipped      int
	Unmatched    int
}

// Classifier drives Transition over a sequence of rows.
type Classifier struct {
	resolver Resolver
	logger   logging.Logger
}

// New creates a Classifier resolving accounts through resolver.
func New(resolver Resolver, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Classifier{resolver: resolver, logger: logger}
}

// Classify processes rows in order and returns the prepared transactions.
//
// Rows whose account cannot be resolved are logged and skipped without
// touching the pairing state. The only error returned is a violated
// transaction invariant, which aborts the run.
func (c *Classifier) Classify(ctx context.Context, rows []models.NormalizedRow) (*Result, error) {
	result := &Result{Transactions: make([]models.Transaction, 0, len(rows))}
	state := State{}

	for _, row := range rows {
		log := c.logger.WithFields(
			logging.F(logging.FieldLine, row.Line),
			logging.F(logging.FieldAccountRef, row.AccountRef))

		accountID, found, err := c.resolver.Resolve(ctx, row.AccountRef)
		if err != nil {
			log.WithError(err).Error("Error looking up account for product")
			result.Skipped++
			continue
		}
		if !found {
			log.Info("No account found for product")
			result.Skipped++
			continue
		}
		result.DataRows++

		in := Input{Row: row, AccountID: accountID}
		if n := len(result.Transactions); n > 0 {
			in.Previous = &result.Transactions[n-1]
		}

		out := Transition(state, in)
		state = out.Next

		if out.Event != nil {
			c.report(*out.Event)
			result.Unmatched++
		}

		if out.Err != nil {
			if IsFatal(out.Err) {
				log.WithError(out.Err).Error("Refusing to build transaction")
				return nil, out.Err
			}
			if errors.Is(out.Err, ErrNoPreviousTransaction) {
				log.Warn("Payment confirmation has nothing to pair with",
					logging.F(logging.FieldDescription, row.Description))
			} else {
				log.WithError(out.Err).Error("Skipping row")
			}
			result.Skipped++
			continue
		}

		if out.Emit == nil {
			log.Debug("Holding redistribution row for its partner")
			continue
		}
		if out.ReplacePrevious {
			log.Debug("Replacing previous transaction with merged transfer",
				logging.F(logging.FieldDescription, in.Previous.Description))
			result.Transactions[len(result.Transactions)-1] = *out.Emit
		} else {
			result.Transactions = append(result.Transactions, *out.Emit)
		}
	}

	if ev := Finish(state); ev != nil {
		c.report(*ev)
		result.Unmatched++
	}

	return result, nil
}

func (c *Classifier) report(ev Event) {
	switch ev.Kind {
	case EventUnmatchedRedistribution:
		c.logger.Warn("Unmatched redistribution entry",
			logging.F(logging.FieldPendingRef, ev.PendingRef),
			logging.F(logging.FieldLine, ev.Row.Line),
			logging.F(logging.FieldCategory, ev.Row.Category),
			logging.F(logging.FieldDescription, ev.Row.Description),
			logging.F(logging.FieldAccountRef, ev.Row.AccountRef),
			logging.F(logging.FieldAmount, ev.Row.Amount))
	case EventDanglingRedistribution:
		c.logger.Warn("Dangling redistribution entry at end of input",
			logging.F(logging.FieldPendingRef, ev.PendingRef))
	}
}
