package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beer_machine/internal/models"
)

func TestParseUserRecord(t *testing.T) {
	testCases := []struct {
		name     string
		record   []string
		wantErr  bool
		wantType string
	}{
		{
			name:     "member row",
			record:   []string{"alice", "120", "14-03-1994", "true"},
			wantType: models.UserTypeMember,
		},
		{
			name:     "non-member row without date of birth",
			record:   []string{"bob", "0", "", "false"},
			wantType: models.UserTypeNonMember,
		},
		{
			name:    "too few columns",
			record:  []string{"alice", "120"},
			wantErr: true,
		},
		{
			name:    "empty username",
			record:  []string{" ", "120", "", "true"},
			wantErr: true,
		},
		{
			name:    "non-numeric credits",
			record:  []string{"alice", "lots", "", "true"},
			wantErr: true,
		},
		{
			name:    "negative credits",
			record:  []string{"alice", "-10", "", "true"},
			wantErr: true,
		},
		{
			name:    "malformed date",
			record:  []string{"alice", "120", "1994-03-14", "true"},
			wantErr: true,
		},
		{
			name:    "unknown membership flag",
			record:  []string{"alice", "120", "", "maybe"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := parseUserRecord(tc.record)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, user.UserType)
			assert.True(t, user.IsActive)
			assert.Nil(t, user.Password)
		})
	}
}

func TestMonthDateRange(t *testing.T) {
	start, end := monthDateRange(2026, 2)

	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 28, end.Day())
	assert.True(t, end.After(start))
}
