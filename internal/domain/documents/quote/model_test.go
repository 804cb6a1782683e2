package quote

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

func ref(v id.ID) *id.ID { return &v }

func newTestQuote() *Quote {
	return NewQuote(id.New(), id.New(), id.New(), id.New())
}

func serviceItem(price string, qty float64) Item {
	return Item{
		Type:      ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(qty),
		UnitPrice: types.MustMoney(price),
	}
}

func inventoryItem(price, cost string, qty float64) Item {
	return Item{
		Type:      ItemInventory,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(qty),
		UnitPrice: types.MustMoney(price),
		CostPrice: types.MustMoney(cost),
	}
}

func TestQuoteTotals(t *testing.T) {
	q := newTestQuote()

	// Mano de obra: 2 × 100000, sin descuento
	q.AddItem(serviceItem("100000", 2))
	// Repuesto: 1 × 80000 con 10% de descuento de línea, IVA 19%
	it := inventoryItem("80000", "50000", 1)
	it.Discount = decimal.NewFromInt(10)
	it.TaxRate = decimal.NewFromInt(19)
	q.AddItem(it)

	// subtotal = 200000 + 80000×0.9 = 272000
	assert.True(t, q.Subtotal().Equal(types.MustMoney("272000")),
		"subtotal = %s", q.Subtotal())

	// tax = 72000 × 19% = 13680
	assert.True(t, q.TaxAmount().Equal(types.MustMoney("13680")),
		"tax = %s", q.TaxAmount())

	// total = 272000 + 13680
	assert.True(t, q.Total().Equal(types.MustMoney("285680")),
		"total = %s", q.Total())
}

func TestQuoteTotals_GeneralDiscount(t *testing.T) {
	q := newTestQuote()
	q.GeneralDiscount = decimal.NewFromInt(50)

	it := serviceItem("100000", 1)
	it.TaxRate = decimal.NewFromInt(19)
	q.AddItem(it)

	// subtotal sigue siendo 100000; el descuento general aplica en el total
	assert.True(t, q.Subtotal().Equal(types.MustMoney("100000")))
	// tax = 100000×0.5 × 19% = 9500
	assert.True(t, q.TaxAmount().Equal(types.MustMoney("9500")))
	// total = 50000 + 9500
	assert.True(t, q.Total().Equal(types.MustMoney("59500")), "total = %s", q.Total())
}

func TestQuoteTotals_OnlyApprovedItems(t *testing.T) {
	q := newTestQuote()
	q.AddItem(serviceItem("100000", 1))
	q.AddItem(serviceItem("200000", 1))

	require.NoError(t, q.Send())
	require.NoError(t, q.Approve([]id.ID{q.Items[0].LineID}))

	assert.Equal(t, StatusAprobado, q.Status)
	assert.True(t, q.Subtotal().Equal(types.MustMoney("100000")),
		"subtotal over approved items only, got %s", q.Subtotal())
	assert.Len(t, q.ApprovedItems(), 1)
}

func TestApprove_EmptySelectionRejects(t *testing.T) {
	q := newTestQuote()
	q.AddItem(serviceItem("100000", 1))

	require.NoError(t, q.Send())
	require.NoError(t, q.Approve(nil))

	assert.Equal(t, StatusRechazado, q.Status)
}

func TestStatusFlow(t *testing.T) {
	q := newTestQuote()
	q.AddItem(serviceItem("100000", 1))

	// Draft cannot be approved directly
	require.Error(t, q.Approve([]id.ID{q.Items[0].LineID}))

	require.NoError(t, q.Send())
	require.Error(t, q.Send(), "double send must fail")

	require.NoError(t, q.MarkReviewed())
	require.NoError(t, q.Approve([]id.ID{q.Items[0].LineID}))
	require.NoError(t, q.MarkInvoiced())

	// Facturado is terminal
	require.Error(t, q.Reject())
	require.Error(t, q.MarkInvoiced())
}

func TestCanInvoice(t *testing.T) {
	q := newTestQuote()
	q.AddItem(serviceItem("100000", 1))

	// Not approved yet
	err := q.CanInvoice()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeQuoteNotApproved, appErr.Code)

	require.NoError(t, q.Send())
	require.NoError(t, q.Approve([]id.ID{q.Items[0].LineID}))
	assert.NoError(t, q.CanInvoice())
}

func TestCanInvoice_PlaceholderBlocked(t *testing.T) {
	q := newTestQuote()
	q.AddItem(serviceItem("100000", 1))
	q.AddItem(Item{
		Type:        ItemPlaceholder,
		Description: "Repuesto por cotizar",
	})

	require.NoError(t, q.Send())
	require.NoError(t, q.Approve([]id.ID{q.Items[0].LineID, q.Items[1].LineID}))

	err := q.CanInvoice()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodePlaceholderItem, appErr.Code)

	// Deselecting the placeholder unblocks invoicing
	q.Status = StatusRevisado
	require.NoError(t, q.Approve([]id.ID{q.Items[0].LineID}))
	assert.NoError(t, q.CanInvoice())
}

func TestItemRevenueAndCost(t *testing.T) {
	it := inventoryItem("80000", "50000", 2)
	it.Commission = types.MustMoney("5000")

	assert.True(t, it.Revenue().Equal(types.MustMoney("160000")))
	// cost = commission + costPrice×qty = 5000 + 100000
	assert.True(t, it.Cost().Equal(types.MustMoney("105000")))

	srv := serviceItem("60000", 1)
	assert.True(t, srv.Cost().IsZero(), "service items carry no parts cost")
}

func TestValidate(t *testing.T) {
	q := newTestQuote()
	q.AddItem(serviceItem("100000", 1))
	require.NoError(t, q.Validate(context.Background()))

	// Missing product on a non-placeholder line
	bad := newTestQuote()
	bad.AddItem(Item{Type: ItemService, Quantity: types.NewQuantityFromFloat64(1)})
	require.Error(t, bad.Validate(context.Background()))

	// Placeholder without product is fine
	ph := newTestQuote()
	ph.AddItem(Item{Type: ItemPlaceholder, Description: "pendiente"})
	require.NoError(t, ph.Validate(context.Background()))
}
