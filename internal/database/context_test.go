package database_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/leodymann/wi-api/internal/database"
)

// fakeTx satisfies pgx.Tx through embedding; no methods are called in tests.
type fakeTx struct {
	pgx.Tx
}

func TestTxContext(t *testing.T) {
	t.Run("round-trips a transaction", func(t *testing.T) {
		tx := fakeTx{}
		ctx := database.WithTx(context.Background(), tx)

		got, ok := database.TxFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, tx, got)
	})

	t.Run("nil transaction leaves context unchanged", func(t *testing.T) {
		ctx := context.Background()
		assert.Equal(t, ctx, database.WithTx(ctx, nil))

		_, ok := database.TxFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("tolerates nil context", func(t *testing.T) {
		var nilCtx context.Context
		ctx := database.WithTx(nilCtx, fakeTx{})

		_, ok := database.TxFromContext(ctx)
		assert.True(t, ok)

		_, ok = database.TxFromContext(nilCtx)
		assert.False(t, ok)
	})
}
