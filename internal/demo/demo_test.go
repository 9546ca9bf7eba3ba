package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finchat-dev/finchat/internal/model"
)

func TestTransactionsShape(t *testing.T) {
	txns := Transactions()
	assert.Len(t, txns, 20)

	seen := make(map[model.Category]bool)
	ids := make(map[string]bool)
	for _, tx := range txns {
		assert.False(t, ids[tx.ID], "duplicate id %s", tx.ID)
		ids[tx.ID] = true
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, tx.Date)
		seen[tx.Category] = true
	}

	// Every category in the closed set appears at least once.
	for _, c := range model.Categories() {
		assert.True(t, seen[c], "category %s missing from demo data", c)
	}
}

func TestAccountsShape(t *testing.T) {
	accts := Accounts()
	assert.Len(t, accts, 2)
	assert.Equal(t, model.AccountTypeChecking, accts[0].Type)
	assert.Equal(t, model.AccountTypeCredit, accts[1].Type)
	assert.Equal(t, "4250.33", accts[0].Balance.String())
	assert.Equal(t, "-892.48", accts[1].Balance.String())
}

func TestCopiesAreIndependent(t *testing.T) {
	a := Transactions()
	a[0].Merchant = "mutated"
	b := Transactions()
	assert.NotEqual(t, "mutated", b[0].Merchant)

	accts := Accounts()
	accts[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Accounts()[0].Name)
}
