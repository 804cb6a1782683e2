package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/payment"
)

func testPurchase(method payment.Method) *Purchase {
	p := NewPurchase(id.New(), id.New(), method)
	p.Date = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	return p
}

func TestTotals(t *testing.T) {
	p := testPurchase(payment.Contado)
	p.AddLine(id.New(), types.NewQuantityFromFloat64(4), types.MustMoney("25000"), decimal.NewFromInt(19))
	p.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("80000"), decimal.Zero)

	// 4×25000 + 80000 = 180000; IVA = 100000×19% = 19000
	assert.True(t, p.Subtotal.Equal(types.MustMoney("180000")), "subtotal = %s", p.Subtotal)
	assert.True(t, p.TaxAmount.Equal(types.MustMoney("19000")), "tax = %s", p.TaxAmount)
	assert.True(t, p.TotalAmount.Equal(types.MustMoney("199000")))
}

func TestValidate(t *testing.T) {
	p := testPurchase(payment.Contado)
	require.Error(t, p.Validate(context.Background()), "no lines")

	p.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("10000"), decimal.Zero)
	require.NoError(t, p.Validate(context.Background()))

	p.Lines[0].Quantity = 0
	require.Error(t, p.Validate(context.Background()), "zero quantity")
}

func TestValidate_PartnerCardRequiresPartner(t *testing.T) {
	p := testPurchase(payment.TarjetaSocio)
	p.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("10000"), decimal.Zero)

	require.Error(t, p.Validate(context.Background()))

	partnerID := id.New()
	p.PaymentPartnerID = &partnerID
	require.NoError(t, p.Validate(context.Background()))
}

func TestPaymentMethod_IsCredit(t *testing.T) {
	assert.False(t, payment.Contado.IsCredit())
	assert.True(t, payment.Credito.IsCredit())
	assert.True(t, payment.TarjetaSocio.IsCredit())
}

func TestGenerateMovements(t *testing.T) {
	p := testPurchase(payment.Credito)
	firstPart := id.New()
	p.AddLine(firstPart, types.NewQuantityFromFloat64(4), types.MustMoney("25000"), decimal.NewFromInt(19))
	p.AddLine(id.New(), types.NewQuantityFromFloat64(2), types.MustMoney("15000"), decimal.Zero)

	set, err := p.GenerateMovements(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Stock, 2)

	m := set.Stock[0]
	assert.Equal(t, entity.RecordTypeReceipt, m.RecordType)
	assert.Equal(t, p.LocationID, m.LocationID)
	assert.Equal(t, firstPart, m.ProductID)
	assert.Equal(t, types.NewQuantityFromFloat64(4), m.Quantity)
	assert.Equal(t, "Purchase", m.RecorderType)
	assert.Equal(t, p.PostedVersion+1, m.RecorderVersion)
}
