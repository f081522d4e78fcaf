package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustStockMalformedID(t *testing.T) {
	// Id parsing fails before any database call.
	repo := &MongoProductRepository{}

	ok, err := repo.AdjustStock(context.Background(), "not-an-object-id", -1)
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, ok)
}
