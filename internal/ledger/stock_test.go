package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beer_machine/internal/models"
)

func TestAddStock(t *testing.T) {
	testCases := []struct {
		name          string
		startStock    int
		quantity      int
		expectedErr   error
		expectedStock int
	}{
		{name: "adds positive quantity", startStock: 2, quantity: 5, expectedErr: nil, expectedStock: 7},
		{name: "rejects zero", startStock: 2, quantity: 0, expectedErr: ErrInvalidQuantity, expectedStock: 2},
		{name: "rejects negative", startStock: 2, quantity: -3, expectedErr: ErrInvalidQuantity, expectedStock: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			drink := &models.Drink{Stock: tc.startStock}
			err := AddStock(drink, tc.quantity)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedStock, drink.Stock)
		})
	}
}

func TestDeductStock(t *testing.T) {
	drink := &models.Drink{Stock: 3}

	require.NoError(t, DeductStock(drink, 2))
	assert.Equal(t, 1, drink.Stock)

	err := DeductStock(drink, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, drink.Stock, "failed deduction must leave the stock unchanged")

	require.NoError(t, DeductStock(drink, 1))
	assert.Equal(t, 0, drink.Stock)
}

func TestInStock(t *testing.T) {
	assert.True(t, InStock(&models.Drink{Stock: 1, IsActive: true}))
	assert.False(t, InStock(&models.Drink{Stock: 0, IsActive: true}))
	assert.False(t, InStock(&models.Drink{Stock: 5, IsActive: false}))
}
