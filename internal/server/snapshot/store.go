// Package snapshot persists the account registry as one whole document.
//
// Every backend stores the same JSON document and overwrites it completely on
// Save; there are no partial updates. Callers serialize Save calls.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/server/catalog"
	"github.com/dmitrijs2005/azyrnyx/internal/server/models"
)

// CurrentVersion is written into every saved document.
const CurrentVersion = 1

// ErrSnapshotNotFound is returned by Load when nothing has been saved yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrCorruptSnapshot wraps parse failures of a stored document.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Document is the full persisted state.
type Document struct {
	Version  int                          `json:"version"`
	SavedAt  time.Time                    `json:"saved_at"`
	Accounts map[string]*models.Account   `json:"accounts"`
	Codes    map[string]models.RedeemCode `json:"codes"`
}

// NewDocument returns an empty document with initialized maps.
func NewDocument() *Document {
	return &Document{
		Version:  CurrentVersion,
		Accounts: map[string]*models.Account{},
		Codes:    map[string]models.RedeemCode{},
	}
}

// Store loads and saves the registry document.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
	Close() error
}

// Encode renders doc as indented JSON so the stored snapshot stays readable.
func Encode(doc *Document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(b, '\n'), nil
}

// Decode parses a stored document and fills missing collections.
func Decode(b []byte) (*Document, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrCorruptSnapshot)
	}

	doc := &Document{}
	if err := json.Unmarshal(b, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if doc.Accounts == nil {
		doc.Accounts = map[string]*models.Account{}
	}
	if doc.Codes == nil {
		doc.Codes = map[string]models.RedeemCode{}
	}
	for name, acc := range doc.Accounts {
		if acc == nil {
			delete(doc.Accounts, name)
			continue
		}
		acc.Normalize()
		switch acc.Username {
		case "":
			acc.Username = name
		case name:
		default:
			return nil, fmt.Errorf("%w: account %q stored under %q", ErrCorruptSnapshot, acc.Username, name)
		}
	}
	for key, c := range doc.Codes {
		if key != catalog.Normalize(key) {
			return nil, fmt.Errorf("%w: code key %q is not normalized", ErrCorruptSnapshot, key)
		}
		switch c.Code {
		case "":
			c.Code = key
			doc.Codes[key] = c
		case key:
		default:
			return nil, fmt.Errorf("%w: code %q stored under %q", ErrCorruptSnapshot, c.Code, key)
		}
	}
	return doc, nil
}
