package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beer_machine/internal/models"
)

func TestAddCredits(t *testing.T) {
	testCases := []struct {
		name            string
		startCredits    int
		amount          int
		expectedErr     error
		expectedCredits int
	}{
		{name: "accepts block of 10", startCredits: 0, amount: 20, expectedErr: nil, expectedCredits: 20},
		{name: "accepts exactly 10", startCredits: 5, amount: 10, expectedErr: nil, expectedCredits: 15},
		{name: "rejects non-multiple of 10", startCredits: 0, amount: 5, expectedErr: ErrInvalidAmount, expectedCredits: 0},
		{name: "rejects negative amount", startCredits: 30, amount: -10, expectedErr: ErrInvalidAmount, expectedCredits: 30},
		{name: "rejects zero", startCredits: 30, amount: 0, expectedErr: ErrInvalidAmount, expectedCredits: 30},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user := &models.User{Credits: tc.startCredits}
			err := AddCredits(user, tc.amount)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedCredits, user.Credits)
		})
	}
}

func TestDeductCredits(t *testing.T) {
	user := &models.User{Credits: 20}

	require.NoError(t, DeductCredits(user, 15))
	assert.Equal(t, 5, user.Credits)

	err := DeductCredits(user, 10)
	var insufficient *InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 10, insufficient.Required)
	assert.Equal(t, 5, insufficient.Available)
	assert.Equal(t, 5, user.Credits, "failed deduction must leave the balance unchanged")
}

func TestDeductCreditsNeverNegative(t *testing.T) {
	user := &models.User{Credits: 0}
	err := DeductCredits(user, 1)
	require.Error(t, err)
	assert.GreaterOrEqual(t, user.Credits, 0)
}

func TestAddCreditsUnchecked(t *testing.T) {
	// Undo of a sale restores amounts that are not multiples of 10.
	user := &models.User{Credits: 3}
	AddCreditsUnchecked(user, 7)
	assert.Equal(t, 10, user.Credits)
}

func TestDeductCreditsUnchecked(t *testing.T) {
	user := &models.User{Credits: 25}

	require.NoError(t, DeductCreditsUnchecked(user, 15))
	assert.Equal(t, 10, user.Credits)

	err := DeductCreditsUnchecked(user, 20)
	var insufficient *InsufficientCreditsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 20, insufficient.Required)
	assert.Equal(t, 10, insufficient.Available)
	assert.Equal(t, 10, user.Credits)
}
