// Package registry owns the in-memory accounts and redeem code catalog.
//
// The registry is loaded from a snapshot.Store once at startup. Every
// mutation runs on a copy of the affected records while the registry lock is
// held, is saved as a whole new snapshot and only then becomes visible. When
// the save fails the previous state is kept and the caller gets
// common.ErrPersistenceUnavailable.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
	"github.com/dmitrijs2005/azyrnyx/internal/logging"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
	"github.com/dmitrijs2005/azyrnyx/internal/server/snapshot"
)

// ErrAccountNotFound is returned by Mutate for unknown usernames.
var ErrAccountNotFound = errors.New("account not found")

type Registry struct {
	mu       sync.Mutex
	store    snapshot.Store
	logger   logging.Logger
	accounts map[string]*models.Account
	codes    map[string]models.RedeemCode
	// degraded is set when the snapshot existed but could not be loaded.
	degraded bool
}

// New loads the registry from store. A missing or unreadable snapshot yields
// an empty registry; the failure is logged, not returned, and an unreadable
// one marks the registry Degraded. Seed codes are added
// when the snapshot does not know them yet.
func New(ctx context.Context, store snapshot.Store, logger logging.Logger, seeds []models.RedeemCode) *Registry {
	logger = logger.With("module", "registry")

	doc, err := store.Load(ctx)
	degraded := false
	switch {
	case err == nil:
		logger.Info(ctx, "Snapshot loaded", "accounts", len(doc.Accounts), "codes", len(doc.Codes))
	case errors.Is(err, snapshot.ErrSnapshotNotFound):
		logger.Info(ctx, "No snapshot yet, starting empty")
		doc = snapshot.NewDocument()
	default:
		logger.Warn(ctx, "Snapshot unreadable, starting empty", "error", err.Error())
		doc = snapshot.NewDocument()
		degraded = true
	}

	r := &Registry{
		store:    store,
		logger:   logger,
		accounts: doc.Accounts,
		codes:    doc.Codes,
		degraded: degraded,
	}

	for _, c := range seeds {
		if _, ok := r.codes[c.Code]; ok {
			continue
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		r.codes[c.Code] = c
	}

	return r
}

// Degraded reports whether New fell back to an empty registry because the
// stored snapshot could not be loaded.
func (r *Registry) Degraded() bool {
	return r.degraded
}

// Account returns a copy of the named account.
func (r *Registry) Account(username string) (*models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, ok := r.accounts[username]
	if !ok {
		return nil, false
	}
	return acc.Clone(), true
}

// Len returns the number of accounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// CreateAccount inserts acc and persists the registry. It fails with
// common.ErrUsernameTaken when the username exists; the existing account is
// left untouched.
func (r *Registry) CreateAccount(ctx context.Context, acc *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[acc.Username]; ok {
		return common.ErrUsernameTaken
	}

	stored := acc.Clone()
	r.accounts[stored.Username] = stored

	if err := r.saveLocked(ctx); err != nil {
		delete(r.accounts, stored.Username)
		return err
	}
	return nil
}

// Mutate runs fn against a copy of the named account and the catalog. If fn
// returns an error nothing changes. Otherwise the changes are saved and
// published together.
func (r *Registry) Mutate(ctx context.Context, username string, fn func(tx *Tx) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.accounts[username]
	if !ok {
		return ErrAccountNotFound
	}

	tx := &Tx{Account: current.Clone(), codes: r.codes, changed: map[string]models.RedeemCode{}}
	if err := fn(tx); err != nil {
		return err
	}

	previous := make(map[string]models.RedeemCode, len(tx.changed))
	existed := make(map[string]bool, len(tx.changed))
	for id, c := range tx.changed {
		previous[id], existed[id] = r.codes[id]
		r.codes[id] = c
	}
	r.accounts[username] = tx.Account

	if err := r.saveLocked(ctx); err != nil {
		r.accounts[username] = current
		for id := range tx.changed {
			if existed[id] {
				r.codes[id] = previous[id]
			} else {
				delete(r.codes, id)
			}
		}
		return err
	}
	return nil
}

// PutCode inserts or replaces a catalog entry and persists the registry.
func (r *Registry) PutCode(ctx context.Context, c models.RedeemCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.codes[c.Code]
	r.codes[c.Code] = c

	if err := r.saveLocked(ctx); err != nil {
		if existed {
			r.codes[c.Code] = previous
		} else {
			delete(r.codes, c.Code)
		}
		return err
	}
	return nil
}

// Code returns a catalog entry.
func (r *Registry) Code(id string) (models.RedeemCode, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	return c, ok
}

// Codes returns the catalog sorted by code.
func (r *Registry) Codes() []models.RedeemCode {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.RedeemCode, 0, len(r.codes))
	for _, c := range r.codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Flush persists the current state, e.g. after seeding at startup.
func (r *Registry) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLocked(ctx)
}

// Close releases the underlying store.
func (r *Registry) Close() error {
	return r.store.Close()
}

// saveLocked writes the whole registry. Callers hold r.mu, which also keeps
// snapshot writes from interleaving.
func (r *Registry) saveLocked(ctx context.Context) error {
	doc := &snapshot.Document{
		Version:  snapshot.CurrentVersion,
		SavedAt:  time.Now().UTC(),
		Accounts: r.accounts,
		Codes:    r.codes,
	}
	if err := r.store.Save(ctx, doc); err != nil {
		r.logger.Error(ctx, "Snapshot save failed", "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrPersistenceUnavailable, err)
	}
	return nil
}
