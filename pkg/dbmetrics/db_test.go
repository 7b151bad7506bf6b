package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM bookings":       "select",
		"  INSERT INTO bookings (id)":   "insert",
		"UPDATE\n bookings SET x = 1":   "update",
		"commit":                        "commit",
		"DELETE FROM clients WHERE id=": "delete",
	}

	for query, want := range tests {
		assert.Equal(t, want, operation(query), query)
	}
}

func TestGetExecutor_PrefersTxFromContext(t *testing.T) {
	fallback := &SqlTxWrapper{}
	tx := &SqlTxWrapper{}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, fallback, GetExecutor(ctx, fallback))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, fallback))
}
