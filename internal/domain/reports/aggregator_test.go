package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/domain/documents/purchase"
	"tallerpro/internal/domain/documents/quote"
	"tallerpro/internal/domain/documents/timeentry"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/internal/domain/payment"
)

var reportDay = time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)

func ref(v id.ID) *id.ID { return &v }

// builtInvoice assembles a billed invoice through the real quote
// approval path so item snapshots match production data.
func builtInvoice(workOrderID, clientID, advisorID id.ID, issued time.Time, items ...quote.Item) *invoice.Invoice {
	q := quote.NewQuote(id.New(), workOrderID, clientID, advisorID)
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
	return invoice.Build(id.New(), workOrderID, clientID, advisorID, "Cliente",
		issued, issued.AddDate(0, 0, 30), []*quote.Quote{q})
}

func serviceItem(price string, qty float64) quote.Item {
	return quote.Item{
		Type:      quote.ItemService,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(qty),
		UnitPrice: types.MustMoney(price),
	}
}

func inventoryItem(price, cost string, qty float64) quote.Item {
	return quote.Item{
		Type:      quote.ItemInventory,
		ProductID: ref(id.New()),
		Quantity:  types.NewQuantityFromFloat64(qty),
		UnitPrice: types.MustMoney(price),
		CostPrice: types.MustMoney(cost),
	}
}

func TestProfitIdentity(t *testing.T) {
	// items=[{unitPrice:100000, quantity:2, type:service}]
	inv := builtInvoice(id.New(), id.New(), id.New(), reportDay,
		serviceItem("100000", 2))

	require.Len(t, inv.Items, 1)
	revenue := inv.Items[0].Revenue()
	cost := inv.Items[0].Cost()
	assert.True(t, revenue.Equal(types.MustMoney("200000")))
	assert.True(t, cost.IsZero())

	pnl := ComputePnL(HalfMonth(reportDay), []*invoice.Invoice{inv}, nil)
	assert.True(t, pnl.GrossProfit.Equal(revenue.Sub(cost)),
		"gross profit %s != Σrevenue−Σcost %s", pnl.GrossProfit, revenue.Sub(cost))
	assert.True(t, pnl.GrossProfit.Equal(types.MustMoney("200000")))
}

func TestPnL_COGSAndExpenses(t *testing.T) {
	inv := builtInvoice(id.New(), id.New(), id.New(), reportDay,
		serviceItem("150000", 1),
		inventoryItem("80000", "50000", 2))

	rent := expense.NewOperatingExpense(id.New(), id.New(), expense.CategoryArriendo, types.MustMoney("30000"))
	utilities := expense.NewOperatingExpense(id.New(), id.New(), expense.CategoryServicios, types.MustMoney("20000"))

	pnl := ComputePnL(HalfMonth(reportDay), []*invoice.Invoice{inv},
		[]*expense.OperatingExpense{rent, utilities})

	// revenue = 150000 + 160000; COGS = 2×50000
	assert.True(t, pnl.TotalRevenue.Equal(types.MustMoney("310000")))
	assert.True(t, pnl.COGS.Equal(types.MustMoney("100000")))
	assert.True(t, pnl.GrossProfit.Equal(types.MustMoney("210000")))
	assert.True(t, pnl.OperatingExpenses.Equal(types.MustMoney("50000")))
	assert.True(t, pnl.NetProfit.Equal(types.MustMoney("160000")))
	assert.True(t, pnl.ExpensesByCategory[expense.CategoryArriendo].Equal(types.MustMoney("30000")))
}

func TestPnL_EmptyInputIsZero(t *testing.T) {
	pnl := ComputePnL(HalfMonth(reportDay), nil, nil)
	assert.True(t, pnl.TotalRevenue.IsZero())
	assert.True(t, pnl.NetProfit.IsZero())
}

func TestMarginZeroGuard(t *testing.T) {
	// A fully discounted invoice has subtotal 0; margin must be 0, not a
	// division error.
	item := serviceItem("100000", 1)
	item.Discount = decimal.NewFromInt(100)
	inv := builtInvoice(id.New(), id.New(), id.New(), reportDay, item)
	require.True(t, inv.Subtotal.IsZero())

	rows := ProfitabilityByWorkOrder([]*invoice.Invoice{inv})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].MarginPercent.IsZero())
}

func TestProfitability_CostComponents(t *testing.T) {
	workOrderID := id.New()
	item := inventoryItem("200000", "120000", 1)
	item.Commission = types.MustMoney("10000")
	inv := builtInvoice(workOrderID, id.New(), id.New(), reportDay, item)

	require.NoError(t, inv.ApplyFactoring(invoice.FactoringInfo{
		Company:         "Factoring Andino",
		Commission:      types.MustMoney("5000"),
		RetentionAmount: types.MustMoney("20000"),
		Date:            reportDay,
		AccountID:       id.New(),
	}))

	rows := ProfitabilityByWorkOrder([]*invoice.Invoice{inv})
	require.Len(t, rows, 1)
	row := rows[0]

	assert.True(t, row.Subtotal.Equal(types.MustMoney("200000")))
	assert.True(t, row.PartsCost.Equal(types.MustMoney("120000")))
	assert.True(t, row.CommissionCost.Equal(types.MustMoney("10000")))
	assert.True(t, row.FactoringCost.Equal(types.MustMoney("5000")))
	// 200000 − 135000 = 65000; margin 32.5%
	assert.True(t, row.GrossProfit.Equal(types.MustMoney("65000")))
	assert.True(t, row.MarginPercent.Equal(decimal.RequireFromString("32.5")),
		"margin = %s", row.MarginPercent)
}

func TestDaysOverdueFloor(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 10, DaysOverdue(today, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysOverdue(today, time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC)))
}

func TestReceivables_SortedByDaysOverdue(t *testing.T) {
	today := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)

	fresh := builtInvoice(id.New(), id.New(), id.New(), today.AddDate(0, 0, -5), serviceItem("100000", 1))
	fresh.DueDate = today.AddDate(0, 0, 5)

	stale := builtInvoice(id.New(), id.New(), id.New(), today.AddDate(0, -2, 0), serviceItem("200000", 1))
	stale.DueDate = today.AddDate(0, 0, -10)
	require.NoError(t, stale.MarkOverdue(today))

	paid := builtInvoice(id.New(), id.New(), id.New(), today, serviceItem("50000", 1))
	require.NoError(t, paid.MarkPaid(id.New(), today))

	report := Receivables(today, []*invoice.Invoice{fresh, stale, paid})

	require.Len(t, report.Entries, 2)
	assert.Equal(t, stale.ID, report.Entries[0].InvoiceID)
	assert.Equal(t, 10, report.Entries[0].DaysOverdue)
	assert.Equal(t, 0, report.Entries[1].DaysOverdue)
	assert.True(t, report.Total.Equal(types.MustMoney("300000")))
}

func TestPayables_GroupedByCounterparty(t *testing.T) {
	supplierID := id.New()
	partnerID := id.New()

	onCredit := purchase.NewPurchase(id.New(), supplierID, payment.Credito)
	onCredit.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("100000"), decimal.Zero)

	moreCredit := purchase.NewPurchase(id.New(), supplierID, payment.Credito)
	moreCredit.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("50000"), decimal.Zero)

	cash := purchase.NewPurchase(id.New(), id.New(), payment.Contado)
	cash.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.MustMoney("999999"), decimal.Zero)

	cardTx := pettycash.NewTransaction(id.New(), id.New(), pettycash.TypeExpense, types.MustMoney("30000"))
	cardTx.PaymentMethod = payment.TarjetaSocio
	cardTx.PaymentPartnerID = &partnerID

	report := Payables(
		[]*purchase.Purchase{onCredit, moreCredit, cash},
		[]*pettycash.Transaction{cardTx})

	require.Len(t, report.Entries, 2)
	assert.Equal(t, PayableToSupplier, report.Entries[0].Kind)
	assert.Equal(t, supplierID, report.Entries[0].CounterpartyID)
	assert.True(t, report.Entries[0].Total.Equal(types.MustMoney("150000")))
	assert.Equal(t, PayableToPartner, report.Entries[1].Kind)
	assert.True(t, report.Entries[1].Total.Equal(types.MustMoney("30000")))
	assert.True(t, report.Total.Equal(types.MustMoney("180000")))
}

func TestAdvisorCommissions(t *testing.T) {
	advisor := staff.NewStaffMember("EMP-00001", "Laura Ríos", staff.RoleAdvisor, id.New())
	advisor.CommissionRate = decimal.NewFromInt(10)

	period := HalfMonth(reportDay)

	// Profitable invoice inside the period: profit 200000
	good := builtInvoice(id.New(), id.New(), advisor.ID, reportDay, serviceItem("200000", 1))

	// Aggregate-negative invoice: positive item profit must not count
	lossItem := inventoryItem("100000", "150000", 1)
	bad := builtInvoice(id.New(), id.New(), advisor.ID, reportDay,
		lossItem, serviceItem("10000", 1))

	// Outside the period
	late := builtInvoice(id.New(), id.New(), advisor.ID, period.To.AddDate(0, 0, 1), serviceItem("500000", 1))

	report := AdvisorCommissions(period, []*staff.StaffMember{advisor},
		[]*invoice.Invoice{good, bad, late})

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	assert.True(t, entry.ProfitBase.Equal(types.MustMoney("200000")), "base = %s", entry.ProfitBase)
	assert.True(t, entry.Commission.Equal(types.MustMoney("20000")), "commission = %s", entry.Commission)
	assert.True(t, report.Total.Equal(entry.Commission))
}

func TestHalfMonth(t *testing.T) {
	first := HalfMonth(time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, first.From.Day())
	assert.Equal(t, 16, first.To.Day())

	second := HalfMonth(time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 16, second.From.Day())
	assert.Equal(t, time.July, second.To.Month())
	assert.True(t, second.Contains(time.Date(2026, 6, 30, 23, 0, 0, 0, time.UTC)))
	assert.False(t, second.Contains(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRetention(t *testing.T) {
	repeat := id.New()
	oneTime := id.New()

	invoices := []*invoice.Invoice{
		builtInvoice(id.New(), repeat, id.New(), reportDay, serviceItem("100000", 1)),
		builtInvoice(id.New(), repeat, id.New(), reportDay, serviceItem("100000", 1)),
		builtInvoice(id.New(), oneTime, id.New(), reportDay, serviceItem("200000", 1)),
	}

	report := Retention(4, invoices)

	assert.Equal(t, 4, report.TotalClients)
	assert.Equal(t, 1, report.ReturningClients)
	assert.True(t, report.RetentionRate.Equal(decimal.NewFromInt(25)), "rate = %s", report.RetentionRate)
	// CLV = 400000 total billed / 4 clients
	assert.True(t, report.CLV.Equal(types.MustMoney("100000")), "clv = %s", report.CLV)
}

func TestRetention_ZeroClients(t *testing.T) {
	report := Retention(0, nil)
	assert.True(t, report.RetentionRate.IsZero())
	assert.True(t, report.CLV.IsZero())
}

func TestAccountBalanceRoundTrip(t *testing.T) {
	accountID := id.New()

	income := pettycash.NewTransaction(id.New(), accountID, pettycash.TypeIncome, types.MustMoney("500000"))
	outflow := pettycash.NewTransaction(id.New(), accountID, pettycash.TypeExpense, types.MustMoney("200000"))

	balance := AccountBalance(accountID,
		[]*pettycash.Transaction{income, outflow}, nil)
	assert.True(t, balance.Equal(types.MustMoney("300000")), "balance = %s", balance)

	opExpense := expense.NewOperatingExpense(id.New(), accountID, expense.CategoryServicios, types.MustMoney("100000"))
	balance = AccountBalance(accountID,
		[]*pettycash.Transaction{income, outflow},
		[]*expense.OperatingExpense{opExpense})
	assert.True(t, balance.Equal(types.MustMoney("200000")), "balance = %s", balance)

	// Other accounts never bleed in
	other := AccountBalance(id.New(),
		[]*pettycash.Transaction{income, outflow},
		[]*expense.OperatingExpense{opExpense})
	assert.True(t, other.IsZero())
}

func TestEfficiency(t *testing.T) {
	locationID := id.New()
	adv := id.New()

	start := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	wo := workorder.NewWorkOrder(locationID, id.New(), id.New(), adv, "user", start)
	// Recepción 4h, Diagnóstico 20h, invoiced 24h after diagnosis start
	require.NoError(t, wo.Advance(workorder.StageRecepcion, "user", "", start.Add(4*time.Hour)))

	issued := start.Add(28 * time.Hour)
	inv := builtInvoice(wo.ID, id.New(), adv, issued, serviceItem("100000", 1))

	report := Efficiency([]*workorder.WorkOrder{wo}, []*invoice.Invoice{inv})

	assert.Equal(t, 1, report.CompletedOrders)
	assert.True(t, report.AverageCycleHours.Equal(decimal.NewFromInt(28)),
		"cycle = %s", report.AverageCycleHours)
	assert.Equal(t, workorder.StageDiagnostico, report.SlowestStage)

	require.Len(t, report.Stages, 2)
	assert.Equal(t, workorder.StageDiagnostico, report.Stages[0].Stage)
	assert.True(t, report.Stages[0].AverageHours.Equal(decimal.NewFromInt(24)))
}

func TestEfficiency_NoCompletedOrders(t *testing.T) {
	report := Efficiency(nil, nil)
	assert.Equal(t, 0, report.CompletedOrders)
	assert.True(t, report.AverageCycleHours.IsZero())
	assert.Empty(t, report.Stages)
}

func TestPayroll(t *testing.T) {
	locationID := id.New()
	tech := staff.NewStaffMember("EMP-00002", "Andrés Mora", staff.RoleTechnician, locationID)
	tech.HourlyRate = types.MustMoney("15000")

	period := HalfMonth(reportDay)

	shift := timeentry.NewTimeEntry(locationID, tech.ID, period.From.Add(8*time.Hour))
	require.NoError(t, shift.Close(period.From.Add(16*time.Hour)))

	halfShift := timeentry.NewTimeEntry(locationID, tech.ID, period.From.AddDate(0, 0, 1).Add(8*time.Hour))
	require.NoError(t, halfShift.Close(period.From.AddDate(0, 0, 1).Add(12*time.Hour)))

	// Outside the period
	old := timeentry.NewTimeEntry(locationID, tech.ID, period.From.AddDate(0, -1, 0))
	require.NoError(t, old.Close(period.From.AddDate(0, -1, 0).Add(8*time.Hour)))

	report := Payroll(period, []*staff.StaffMember{tech},
		[]*timeentry.TimeEntry{shift, halfShift, old})

	require.Len(t, report.Entries, 1)
	entry := report.Entries[0]
	assert.True(t, entry.Hours.Equal(decimal.NewFromInt(12)), "hours = %s", entry.Hours)
	assert.True(t, entry.GrossPay.Equal(types.MustMoney("180000")), "pay = %s", entry.GrossPay)
}
