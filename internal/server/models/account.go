// Package models holds the records the server keeps in its registry snapshot.
package models

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/dmitrijs2005/azyrnyx/internal/common"
)

// Account is a registered user together with their shard wallet.
//
// RedeemedCodes is a set: order is irrelevant and a code appears at most once.
// QuestClaims maps a quest id to the epoch milliseconds of its last claim.
type Account struct {
	ID             string           `json:"id"`
	Username       string           `json:"username"`
	CredentialHash string           `json:"credential_hash"`
	SessionToken   string           `json:"session_token,omitempty"`
	ShardBalance   int64            `json:"shard_balance"`
	RedeemedCodes  []string         `json:"redeemed_codes"`
	QuestClaims    map[string]int64 `json:"quest_claims"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Normalize fills absent collections so no field is missing after load.
func (a *Account) Normalize() {
	if a.RedeemedCodes == nil {
		a.RedeemedCodes = []string{}
	}
	if a.QuestClaims == nil {
		a.QuestClaims = map[string]int64{}
	}
}

// Clone returns a deep copy.
func (a *Account) Clone() *Account {
	c := *a
	c.RedeemedCodes = slices.Clone(a.RedeemedCodes)
	if c.RedeemedCodes == nil {
		c.RedeemedCodes = []string{}
	}
	c.QuestClaims = make(map[string]int64, len(a.QuestClaims))
	for k, v := range a.QuestClaims {
		c.QuestClaims[k] = v
	}
	return &c
}

func (a *Account) HasRedeemed(code string) bool {
	return slices.Contains(a.RedeemedCodes, code)
}

// MarkRedeemed adds code to the redeemed set; re-adding is a no-op.
func (a *Account) MarkRedeemed(code string) {
	if !a.HasRedeemed(code) {
		a.RedeemedCodes = append(a.RedeemedCodes, code)
	}
}

// LastClaim returns the last claim time of questID, if any.
func (a *Account) LastClaim(questID string) (time.Time, bool) {
	ms, ok := a.QuestClaims[questID]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// RecordClaim stores at as the last claim of questID. Timestamps never move
// backwards.
func (a *Account) RecordClaim(questID string, at time.Time) {
	ms := at.UnixMilli()
	if prev, ok := a.QuestClaims[questID]; ok && prev >= ms {
		return
	}
	a.QuestClaims[questID] = ms
}

// Credit adds amount shards. Negative amounts and overflow are rejected, so
// the balance never drops below zero.
func (a *Account) Credit(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: negative amount %d", common.ErrInvalidInput, amount)
	}
	if a.ShardBalance > math.MaxInt64-amount {
		return fmt.Errorf("%w: balance overflow", common.ErrInvalidInput)
	}
	a.ShardBalance += amount
	return nil
}
