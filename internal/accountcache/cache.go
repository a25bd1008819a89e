// Package accountcache resolves bank product numbers to ledger account
// identifiers, remembering both hits and confirmed misses for the duration of
// one import run.
package accountcache

import (
	"context"
	"errors"
	"strings"

	"fjacquet/firefly-importer/internal/firefly"
	"fjacquet/firefly-importer/internal/logging"
	"fjacquet/firefly-importer/internal/parsererror"
)

// Status is the lookup state of a reference.
type Status int

const (
	// NotLooked means the reference was never queried.
	NotLooked Status = iota
	// Found means the directory holds a matching account.
	Found
	// ConfirmedAbsent means the directory was queried and nothing matched.
	ConfirmedAbsent
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case ConfirmedAbsent:
		return "confirmed-absent"
	default:
		return "not-looked"
	}
}

type entry struct {
	status Status
	id     string
}

// Cache memoizes reference lookups against a Directory. It is meant for a
// single import run and is not safe for concurrent use.
type Cache struct {
	directory Directory
	logger    logging.Logger
	entries   map[string]entry
	lookups   int
}

// New creates an empty cache over directory.
func New(directory Directory, logger logging.Logger) *Cache {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Cache{
		directory: directory,
		logger:    logger,
		entries:   make(map[string]entry),
	}
}

// Resolve returns the account identifier for ref.
//
// A blank ref resolves to not found without a remote call. Each non-blank
// ref is queried at most once; the result, including a miss, is cached.
// When the directory answers with an unusable response the lookup degrades
// to a cached miss. Transport failures are returned as
// *parsererror.ResolutionError and are not cached.
func (c *Cache) Resolve(ctx context.Context, ref string) (string, bool, error) {
	if strings.TrimSpace(ref) == "" {
		return "", false, nil
	}
	if e, ok := c.entries[ref]; ok {
		return e.id, e.status == Found, nil
	}

	c.lookups++
	accounts, err := c.directory.ListAccounts(ctx)
	if err != nil {
		var respErr *firefly.ResponseError
		if !errors.As(err, &respErr) {
			return "", false, &parsererror.ResolutionError{Reference: ref, Err: err}
		}
		c.logger.WithError(err).Warn("Could not read accounts response",
			logging.F(logging.FieldAccountRef, ref))
		accounts = nil
	}

	if account, ok := firefly.FindAccount(accounts, ref); ok {
		c.entries[ref] = entry{status: Found, id: account.ID}
		c.logger.Debug("Resolved account",
			logging.F(logging.FieldAccountRef, ref),
			logging.F(logging.FieldAccountID, account.ID))
		return account.ID, true, nil
	}

	c.entries[ref] = entry{status: ConfirmedAbsent}
	return "", false, nil
}

// Status returns the lookup state of ref and, when found, its identifier.
func (c *Cache) Status(ref string) (Status, string) {
	e, ok := c.entries[ref]
	if !ok {
		return NotLooked, ""
	}
	return e.status, e.id
}

// Lookups returns the number of directory calls made so far.
func (c *Cache) Lookups() int {
	return c.lookups
}
