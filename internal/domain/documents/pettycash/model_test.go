package pettycash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/payment"
)

func TestSignedAmount(t *testing.T) {
	in := NewTransaction(id.New(), id.New(), TypeIncome, types.MustMoney("500000"))
	assert.True(t, in.SignedAmount().Equal(types.MustMoney("500000")))

	out := NewTransaction(id.New(), id.New(), TypeExpense, types.MustMoney("200000"))
	assert.True(t, out.SignedAmount().Equal(types.MustMoney("-200000")))
}

func TestValidate(t *testing.T) {
	doc := NewTransaction(id.New(), id.New(), TypeExpense, types.MustMoney("10000"))
	require.NoError(t, doc.Validate(context.Background()))

	doc.Amount = types.Zero()
	require.Error(t, doc.Validate(context.Background()), "zero amount")

	doc.Amount = types.MustMoney("10000")
	doc.Type = "transfer"
	require.Error(t, doc.Validate(context.Background()), "unknown type")
}

func TestValidate_CreditNeedsCounterparty(t *testing.T) {
	doc := NewTransaction(id.New(), id.New(), TypeExpense, types.MustMoney("10000"))

	doc.PaymentMethod = payment.Credito
	require.Error(t, doc.Validate(context.Background()))

	supplierID := id.New()
	doc.SupplierID = &supplierID
	require.NoError(t, doc.Validate(context.Background()))

	doc.PaymentMethod = payment.TarjetaSocio
	require.Error(t, doc.Validate(context.Background()))

	partnerID := id.New()
	doc.PaymentPartnerID = &partnerID
	require.NoError(t, doc.Validate(context.Background()))
}

func TestValidate_IncomeCannotBeOnCredit(t *testing.T) {
	doc := NewTransaction(id.New(), id.New(), TypeIncome, types.MustMoney("10000"))
	supplierID := id.New()
	doc.SupplierID = &supplierID
	doc.PaymentMethod = payment.Credito

	require.Error(t, doc.Validate(context.Background()))
}
