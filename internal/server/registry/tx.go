package registry

import "github.com/dmitrijs2005/azyrnyx/internal/server/models"

// Tx is the working copy handed to a Mutate callback. Account may be changed
// freely; catalog changes go through PutCode.
type Tx struct {
	Account *models.Account

	codes   map[string]models.RedeemCode
	changed map[string]models.RedeemCode
}

// Code looks a catalog entry up, seeing changes made earlier in this Tx.
func (tx *Tx) Code(id string) (models.RedeemCode, bool) {
	if c, ok := tx.changed[id]; ok {
		return c, true
	}
	c, ok := tx.codes[id]
	return c, ok
}

// PutCode stages a catalog entry for the commit.
func (tx *Tx) PutCode(c models.RedeemCode) {
	tx.changed[c.Code] = c
}
