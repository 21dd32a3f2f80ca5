package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyApproval(t *testing.T) {
	balances := Balances{
		TypeSick:   {Total: 10, Used: 2, Remaining: 8},
		TypeCasual: NewBalance(12, 0),
	}

	got, err := ApplyApproval(balances, "sick", 3)

	require.NoError(t, err)
	assert.Equal(t, Balance{Total: 10, Used: 5, Remaining: 5}, got)
	assert.Equal(t, Balance{Total: 10, Used: 2, Remaining: 8}, balances[TypeSick], "input must not be mutated")
}

func TestApplyApproval_UnknownType(t *testing.T) {
	balances := DefaultBalances()

	_, err := ApplyApproval(balances, "bereavement", 1)

	require.Error(t, err)
	var unknown *UnknownLeaveTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "bereavement", unknown.Key)
	assert.True(t, IsUnknownLeaveType(err))
	assert.Contains(t, err.Error(), "bereavement")
	assert.Equal(t, DefaultBalances(), balances)
}

func TestApplyApproval_NegativeDays(t *testing.T) {
	_, err := ApplyApproval(DefaultBalances(), "annual", -1)
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestApplyApproval_InvariantHolds(t *testing.T) {
	balances := Balances{TypeAnnual: NewBalance(15, 0)}
	for _, days := range []float64{1, 0.5, 3, 12} {
		b, err := ApplyApproval(balances, "annual", days)
		require.NoError(t, err)
		assert.Equal(t, b.Total-b.Used, b.Remaining)
		balances[TypeAnnual] = b
	}
	assert.Equal(t, 16.5, balances[TypeAnnual].Used)
	assert.Equal(t, -1.5, balances[TypeAnnual].Remaining)
}

func TestBalance_SetTotal(t *testing.T) {
	b := NewBalance(10, 4).SetTotal(20)
	assert.Equal(t, Balance{Total: 20, Used: 4, Remaining: 16}, b)
}

func TestInclusiveDays(t *testing.T) {
	start := time.Date(2025, 8, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1.0, InclusiveDays(start, start))
	assert.Equal(t, 5.0, InclusiveDays(start, start.AddDate(0, 0, 4)))
}

func TestType_IsKnown(t *testing.T) {
	assert.True(t, Type("sick").IsKnown())
	assert.False(t, Type("Sick").IsKnown())
	assert.False(t, Type("").IsKnown())
}
