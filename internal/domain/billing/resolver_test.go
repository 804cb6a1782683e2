package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/quote"
)

func approvedQuote(workOrderID id.ID) *quote.Quote {
	q := quote.NewQuote(id.New(), workOrderID, id.New(), id.New())
	q.AddItem(quote.Item{
		Type:      quote.ItemService,
		ProductID: func() *id.ID { v := id.New(); return &v }(),
		Quantity:  types.NewQuantityFromFloat64(1),
		UnitPrice: types.MustMoney("100000"),
	})
	if err := q.Send(); err != nil {
		panic(err)
	}
	if err := q.Approve([]id.ID{q.Items[0].LineID}); err != nil {
		panic(err)
	}
	return q
}

func invoiceFor(workOrderID id.ID, quotes ...*quote.Quote) *invoice.Invoice {
	issued := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return invoice.Build(id.New(), workOrderID, id.New(), id.New(), "Cliente",
		issued, issued.AddDate(0, 0, 30), quotes)
}

func TestResolve_PartiallyBilled(t *testing.T) {
	workOrderID := id.New()
	billedQuote := approvedQuote(workOrderID)
	openQuote := approvedQuote(workOrderID)
	inv := invoiceFor(workOrderID, billedQuote)

	st := Resolve(workOrderID, []*invoice.Invoice{inv}, []*quote.Quote{billedQuote, openQuote})

	assert.True(t, st.IsInvoiced)
	assert.Equal(t, 1, st.InvoiceCount)
	assert.True(t, st.TotalInvoiced.Equal(inv.TotalAmount))
	require.Len(t, st.InvoicedQuotes, 1)
	assert.Equal(t, billedQuote.ID, st.InvoicedQuotes[0])
	require.Len(t, st.PendingQuotes, 1)
	assert.Equal(t, openQuote.ID, st.PendingQuotes[0])
	assert.Equal(t, IndicatorPartially, st.Indicator)
}

func TestResolve_FullyBilled(t *testing.T) {
	workOrderID := id.New()
	q := approvedQuote(workOrderID)
	inv := invoiceFor(workOrderID, q)

	st := Resolve(workOrderID, []*invoice.Invoice{inv}, []*quote.Quote{q})

	assert.Equal(t, IndicatorFully, st.Indicator)
	assert.Empty(t, st.PendingQuotes)
}

func TestResolve_PendingWithoutInvoices(t *testing.T) {
	workOrderID := id.New()
	q := approvedQuote(workOrderID)

	st := Resolve(workOrderID, nil, []*quote.Quote{q})

	assert.False(t, st.IsInvoiced)
	assert.Equal(t, IndicatorPending, st.Indicator)
	require.Len(t, st.PendingQuotes, 1)
}

func TestResolve_NoIndicatorWhenEmpty(t *testing.T) {
	st := Resolve(id.New(), nil, nil)

	assert.False(t, st.IsInvoiced)
	assert.Equal(t, 0, st.InvoiceCount)
	assert.True(t, st.TotalInvoiced.IsZero())
	assert.Equal(t, IndicatorNone, st.Indicator)
}

func TestResolve_IgnoresOtherWorkOrdersAndCancelled(t *testing.T) {
	workOrderID := id.New()
	otherID := id.New()

	foreignQuote := approvedQuote(otherID)
	foreignInvoice := invoiceFor(otherID, foreignQuote)

	q := approvedQuote(workOrderID)
	cancelled := invoiceFor(workOrderID, q)
	require.NoError(t, cancelled.Cancel())

	st := Resolve(workOrderID,
		[]*invoice.Invoice{foreignInvoice, cancelled},
		[]*quote.Quote{foreignQuote, q})

	assert.Equal(t, 0, st.InvoiceCount)
	// The quote's invoice was voided, so it is pending again
	assert.Equal(t, IndicatorPending, st.Indicator)
}

func TestResolve_DraftQuotesAreNotPending(t *testing.T) {
	workOrderID := id.New()
	draft := quote.NewQuote(id.New(), workOrderID, id.New(), id.New())

	st := Resolve(workOrderID, nil, []*quote.Quote{draft})

	assert.Empty(t, st.PendingQuotes)
	assert.Equal(t, IndicatorNone, st.Indicator)
}
