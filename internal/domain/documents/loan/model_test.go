package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

func testLoan(amount string) *Loan {
	l := NewLoan(id.New(), id.New(), types.MustMoney(amount))
	staffID := id.New()
	l.StaffID = &staffID
	l.Date = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return l
}

func TestOutstanding(t *testing.T) {
	l := testLoan("1000000")
	require.NoError(t, l.Validate(context.Background()))
	assert.True(t, l.Outstanding().Equal(types.MustMoney("1000000")))
	assert.Equal(t, StatusActivo, l.Status())

	_, err := l.RegisterPayment(l.Date.AddDate(0, 0, 15), types.MustMoney("400000"), id.New(), "")
	require.NoError(t, err)
	assert.True(t, l.Outstanding().Equal(types.MustMoney("600000")))

	_, err = l.RegisterPayment(l.Date.AddDate(0, 1, 0), types.MustMoney("600000"), id.New(), "saldo final")
	require.NoError(t, err)
	assert.True(t, l.Outstanding().IsZero())
	assert.Equal(t, StatusSaldado, l.Status())
}

func TestRegisterPayment_RejectsOverpayment(t *testing.T) {
	l := testLoan("100000")

	_, err := l.RegisterPayment(l.Date, types.MustMoney("100001"), id.New(), "")
	require.Error(t, err)
	assert.Len(t, l.Payments, 0)

	_, err = l.RegisterPayment(l.Date, types.Zero(), id.New(), "")
	require.Error(t, err, "zero payment")
}

func TestValidate_RequiresBorrower(t *testing.T) {
	l := NewLoan(id.New(), id.New(), types.MustMoney("50000"))
	require.Error(t, l.Validate(context.Background()))

	l.BorrowerName = "Pedro Gómez"
	require.NoError(t, l.Validate(context.Background()))
}
