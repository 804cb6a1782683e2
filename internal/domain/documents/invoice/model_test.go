package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/quote"
)

var (
	issueDate = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	dueDate   = issueDate.AddDate(0, 0, 30)
)

func ref(v id.ID) *id.ID { return &v }

func approvedQuote(items ...quote.Item) *quote.Quote {
	q := quote.NewQuote(id.New(), id.New(), id.New(), id.New())
	for _, it := range items {
		q.AddItem(it)
	}
	lineIDs := make([]id.ID, 0, len(q.Items))
	for _, it := range q.Items {
		lineIDs = append(lineIDs, it.LineID)
	}
	if err := q.Send(); err != nil {
		panic(err)
	}
	if err := q.Approve(lineIDs); err != nil {
		panic(err)
	}
	return q
}

func buildTestInvoice(quotes ...*quote.Quote) *Invoice {
	return Build(id.New(), id.New(), id.New(), id.New(), "Cliente Prueba",
		issueDate, dueDate, quotes)
}

func TestBuild_SnapshotAndTotals(t *testing.T) {
	q := approvedQuote(
		quote.Item{
			Type:      quote.ItemService,
			ProductID: ref(id.New()),
			Quantity:  types.NewQuantityFromFloat64(2),
			UnitPrice: types.MustMoney("100000"),
		},
		quote.Item{
			Type:      quote.ItemInventory,
			ProductID: ref(id.New()),
			Quantity:  types.NewQuantityFromFloat64(1),
			UnitPrice: types.MustMoney("80000"),
			CostPrice: types.MustMoney("50000"),
			TaxRate:   decimal.NewFromInt(19),
		},
	)

	inv := buildTestInvoice(q)

	require.Len(t, inv.Items, 2)
	require.Len(t, inv.QuoteIDs, 1)
	assert.Equal(t, q.ID, inv.QuoteIDs[0])
	assert.Equal(t, q.ID, inv.Items[0].QuoteID)

	// subtotal = 200000 + 80000; tax = 80000×19% = 15200
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("280000")), "subtotal = %s", inv.Subtotal)
	assert.True(t, inv.TaxAmount.Equal(types.MustMoney("15200")), "tax = %s", inv.TaxAmount)
	assert.True(t, inv.TotalAmount.Equal(inv.Subtotal.Add(inv.TaxAmount)))

	assert.Equal(t, StatusPendiente, inv.Status)
	require.NoError(t, inv.Validate(context.Background()))
}

func TestBuild_SkipsUnapprovedItems(t *testing.T) {
	q := quote.NewQuote(id.New(), id.New(), id.New(), id.New())
	q.AddItem(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
	})
	q.AddItem(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("999999"),
	})
	require.NoError(t, q.Send())
	require.NoError(t, q.Approve([]id.ID{q.Items[0].LineID}))

	inv := buildTestInvoice(q)

	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("100000")))
}

func TestBuild_FoldsGeneralDiscountIntoLines(t *testing.T) {
	q := approvedQuote(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
		Discount:  decimal.NewFromInt(10),
	})
	q.GeneralDiscount = decimal.NewFromInt(20)

	inv := buildTestInvoice(q)

	// effective discount: 1−0.9×0.8 = 28%
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Discount.Equal(decimal.NewFromInt(28)),
		"effective discount = %s", inv.Items[0].Discount)
	// line revenue matches the quote-level computation: 100000×0.72
	assert.True(t, inv.Items[0].Revenue().Equal(types.MustMoney("72000")))
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("72000")))
}

func TestPaymentFlow(t *testing.T) {
	q := approvedQuote(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
	})
	inv := buildTestInvoice(q)
	accountID := id.New()

	require.NoError(t, inv.MarkPaid(accountID, issueDate.AddDate(0, 0, 5)))
	assert.Equal(t, StatusPagada, inv.Status)
	require.NotNil(t, inv.PaidAt)
	require.NotNil(t, inv.PaymentAccountID)

	// Terminal: no further transitions
	assert.Error(t, inv.MarkPaid(accountID, issueDate.AddDate(0, 0, 6)))
	assert.Error(t, inv.Cancel())
	assert.Error(t, inv.MarkOverdue(dueDate.AddDate(0, 0, 1)))
}

func TestMarkOverdue(t *testing.T) {
	q := approvedQuote(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
	})
	inv := buildTestInvoice(q)

	// Not yet due
	require.Error(t, inv.MarkOverdue(dueDate))

	require.NoError(t, inv.MarkOverdue(dueDate.AddDate(0, 0, 1)))
	assert.Equal(t, StatusVencida, inv.Status)

	// Overdue invoices can still be paid
	require.NoError(t, inv.MarkPaid(id.New(), dueDate.AddDate(0, 0, 10)))
}

func TestFactoring_RetentionReleasedExactlyOnce(t *testing.T) {
	q := approvedQuote(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("1000000"),
	})
	inv := buildTestInvoice(q)

	info := FactoringInfo{
		Company:         "Factoring Andino",
		Commission:      types.MustMoney("30000"),
		RetentionAmount: types.MustMoney("100000"),
		Date:            issueDate.AddDate(0, 0, 2),
		AccountID:       id.New(),
	}
	require.NoError(t, inv.ApplyFactoring(info))
	assert.Equal(t, StatusPagadaFactoring, inv.Status)
	require.NotNil(t, inv.Factoring)
	assert.False(t, inv.Factoring.RetentionReleased)

	// The one permitted sub-transition on a terminal invoice
	releaseAt := issueDate.AddDate(0, 1, 0)
	require.NoError(t, inv.ReleaseRetention(releaseAt))
	assert.True(t, inv.Factoring.RetentionReleased)
	require.NotNil(t, inv.Factoring.RetentionReleasedAt)

	// Exactly once
	err := inv.ReleaseRetention(releaseAt.AddDate(0, 0, 1))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeRetentionReleased, appErr.Code)

	// Other transitions remain blocked
	assert.Error(t, inv.Cancel())
	assert.Error(t, inv.MarkPaid(id.New(), releaseAt))
}

func TestReleaseRetention_RequiresFactoring(t *testing.T) {
	q := approvedQuote(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
	})
	inv := buildTestInvoice(q)

	require.Error(t, inv.ReleaseRetention(issueDate))
}

func TestGenerateMovements_OnlyStockedParts(t *testing.T) {
	partID := id.New()
	q := approvedQuote(
		quote.Item{
			Type:      quote.ItemService,
			ProductID: ref(id.New()),
			Quantity:  types.NewQuantityFromFloat64(1),
			UnitPrice: types.MustMoney("100000"),
		},
		quote.Item{
			Type:      quote.ItemInventory,
			ProductID: ref(partID),
			Quantity:  types.NewQuantityFromFloat64(2),
			UnitPrice: types.MustMoney("80000"),
			CostPrice: types.MustMoney("50000"),
		},
		quote.Item{
			Type:             quote.ItemInventory,
			ProductID:        ref(id.New()),
			Quantity:         types.NewQuantityFromFloat64(1),
			UnitPrice:        types.MustMoney("20000"),
			SuppliedByClient: true,
		},
	)
	inv := buildTestInvoice(q)

	set, err := inv.GenerateMovements(context.Background())
	require.NoError(t, err)

	// Only the shop-supplied part moves stock
	require.Len(t, set.Stock, 1)
	m := set.Stock[0]
	assert.Equal(t, partID, m.ProductID)
	assert.Equal(t, entity.RecordTypeExpense, m.RecordType)
	assert.Equal(t, inv.LocationID, m.LocationID)
	assert.Equal(t, types.NewQuantityFromFloat64(2), m.Quantity)
	assert.Equal(t, "Invoice", m.RecorderType)
}

func TestValidate_TotalIdentity(t *testing.T) {
	q := approvedQuote(quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
	})
	inv := buildTestInvoice(q)
	require.NoError(t, inv.Validate(context.Background()))

	inv.TotalAmount = inv.TotalAmount.Add(types.MustMoney("1"))
	require.Error(t, inv.Validate(context.Background()))
}
