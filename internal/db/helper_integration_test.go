//go:build integration

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newsRepoInTx returns a repository bound to a transaction that is rolled
// back when the test ends. t.Context is already canceled by then, hence the
// background context for the rollback.
func newsRepoInTx(t *testing.T) (context.Context, *Repository) {
	t.Helper()

	tx, err := testDB.BeginContext(t.Context())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		assert.NoError(t, tx.RollbackContext(context.Background()), "rollback transaction")
	})

	return t.Context(), New(tx)
}
