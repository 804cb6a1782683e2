package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

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

var hundred = decimal.NewFromInt(100)

// billable filters out cancelled invoices; every metric ignores them.
func billable(invoices []*invoice.Invoice) []*invoice.Invoice {
	kept := make([]*invoice.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status != invoice.StatusCancelada {
			kept = append(kept, inv)
		}
	}
	return kept
}

// partsCost sums costPrice×quantity over inventory items.
func partsCost(items []invoice.Item) types.Money {
	total := types.Zero()
	for _, it := range items {
		if it.Type == quote.ItemInventory {
			total = total.Add(it.CostPrice.Mul(it.Quantity.Decimal()))
		}
	}
	return total
}

// ProfitabilityByWorkOrder computes cost breakdowns per work order from
// its invoices. Margin is 0 when the subtotal is 0.
func ProfitabilityByWorkOrder(invoices []*invoice.Invoice) []WorkOrderProfitability {
	grouped := make(map[id.ID]*WorkOrderProfitability)
	order := make([]id.ID, 0)

	for _, inv := range billable(invoices) {
		row, ok := grouped[inv.WorkOrderID]
		if !ok {
			row = &WorkOrderProfitability{
				WorkOrderID:    inv.WorkOrderID,
				Subtotal:       types.Zero(),
				PartsCost:      types.Zero(),
				CommissionCost: types.Zero(),
				FactoringCost:  types.Zero(),
			}
			grouped[inv.WorkOrderID] = row
			order = append(order, inv.WorkOrderID)
		}

		row.Subtotal = row.Subtotal.Add(inv.Subtotal)
		row.PartsCost = row.PartsCost.Add(partsCost(inv.Items))
		for _, it := range inv.Items {
			row.CommissionCost = row.CommissionCost.Add(it.Commission)
		}
		if inv.Factoring != nil {
			row.FactoringCost = row.FactoringCost.Add(inv.Factoring.Commission)
		}
	}

	result := make([]WorkOrderProfitability, 0, len(order))
	for _, workOrderID := range order {
		row := grouped[workOrderID]
		row.GrossProfit = row.Subtotal.
			Sub(row.PartsCost).
			Sub(row.CommissionCost).
			Sub(row.FactoringCost)
		if row.Subtotal.IsZero() {
			row.MarginPercent = decimal.Zero
		} else {
			row.MarginPercent = row.GrossProfit.Div(row.Subtotal).Mul(hundred).Round(2)
		}
		result = append(result, *row)
	}
	return result
}

// ComputePnL builds the P&L statement: revenue from invoice subtotals,
// COGS from billed parts, net after operating expenses.
func ComputePnL(period Period, invoices []*invoice.Invoice, expenses []*expense.OperatingExpense) ProfitAndLoss {
	pnl := ProfitAndLoss{
		Period:             period,
		TotalRevenue:       types.Zero(),
		COGS:               types.Zero(),
		OperatingExpenses:  types.Zero(),
		ExpensesByCategory: make(map[expense.Category]types.Money),
	}

	for _, inv := range billable(invoices) {
		pnl.TotalRevenue = pnl.TotalRevenue.Add(inv.Subtotal)
		pnl.COGS = pnl.COGS.Add(partsCost(inv.Items))
	}
	pnl.GrossProfit = pnl.TotalRevenue.Sub(pnl.COGS)

	for _, e := range expenses {
		pnl.OperatingExpenses = pnl.OperatingExpenses.Add(e.Amount)
		current, ok := pnl.ExpensesByCategory[e.Category]
		if !ok {
			current = types.Zero()
		}
		pnl.ExpensesByCategory[e.Category] = current.Add(e.Amount)
	}
	pnl.NetProfit = pnl.GrossProfit.Sub(pnl.OperatingExpenses)

	return pnl
}

// DaysOverdue returns whole days past the due date, 0 when not yet due.
func DaysOverdue(today, dueDate time.Time) int {
	days := int(today.Sub(dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Receivables lists Pendiente and Vencida invoices sorted by days
// overdue descending.
func Receivables(today time.Time, invoices []*invoice.Invoice) ReceivablesReport {
	report := ReceivablesReport{
		Entries: make([]ReceivableEntry, 0),
		Total:   types.Zero(),
	}

	for _, inv := range invoices {
		if inv.Status != invoice.StatusPendiente && inv.Status != invoice.StatusVencida {
			continue
		}
		report.Entries = append(report.Entries, ReceivableEntry{
			InvoiceID:   inv.ID,
			Number:      inv.Number,
			ClientName:  inv.ClientName,
			Amount:      inv.TotalAmount,
			DueDate:     inv.DueDate,
			DaysOverdue: DaysOverdue(today, inv.DueDate),
		})
		report.Total = report.Total.Add(inv.TotalAmount)
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].DaysOverdue > report.Entries[j].DaysOverdue
	})

	return report
}

// Payables groups credit spending by counterparty: supplier credit by
// supplier, partner-card spending by payment partner.
func Payables(purchases []*purchase.Purchase, transactions []*pettycash.Transaction) PayablesReport {
	report := PayablesReport{
		Entries: make([]PayableEntry, 0),
		Total:   types.Zero(),
	}

	type key struct {
		kind PayableKind
		id   id.ID
	}
	grouped := make(map[key]types.Money)
	order := make([]key, 0)

	add := func(k key, amount types.Money) {
		current, ok := grouped[k]
		if !ok {
			current = types.Zero()
			order = append(order, k)
		}
		grouped[k] = current.Add(amount)
		report.Total = report.Total.Add(amount)
	}

	for _, p := range purchases {
		switch p.PaymentMethod {
		case payment.Credito:
			add(key{PayableToSupplier, p.SupplierID}, p.TotalAmount)
		case payment.TarjetaSocio:
			if p.PaymentPartnerID != nil {
				add(key{PayableToPartner, *p.PaymentPartnerID}, p.TotalAmount)
			}
		}
	}

	for _, t := range transactions {
		if t.Type != pettycash.TypeExpense {
			continue
		}
		switch t.PaymentMethod {
		case payment.Credito:
			if t.SupplierID != nil {
				add(key{PayableToSupplier, *t.SupplierID}, t.Amount)
			}
		case payment.TarjetaSocio:
			if t.PaymentPartnerID != nil {
				add(key{PayableToPartner, *t.PaymentPartnerID}, t.Amount)
			}
		}
	}

	for _, k := range order {
		report.Entries = append(report.Entries, PayableEntry{
			Kind:           k.kind,
			CounterpartyID: k.id,
			Total:          grouped[k],
		})
	}

	return report
}

// AdvisorCommissions computes the half-month commission per advisor:
// the base is the sum of positive item profits, accumulated only for
// invoices whose aggregate profit is positive.
func AdvisorCommissions(period Period, advisors []*staff.StaffMember, invoices []*invoice.Invoice) CommissionReport {
	report := CommissionReport{
		Period:  period,
		Entries: make([]CommissionEntry, 0, len(advisors)),
		Total:   types.Zero(),
	}

	for _, adv := range advisors {
		base := types.Zero()

		for _, inv := range billable(invoices) {
			if inv.AdvisorID != adv.ID || !period.Contains(inv.Date) {
				continue
			}

			aggregate := types.Zero()
			positive := types.Zero()
			for _, it := range inv.Items {
				profit := it.Revenue().Sub(it.Cost())
				aggregate = aggregate.Add(profit)
				if profit.IsPositive() {
					positive = positive.Add(profit)
				}
			}
			if aggregate.IsPositive() {
				base = base.Add(positive)
			}
		}

		commission := types.ApplyPercent(base, adv.CommissionRate)
		report.Entries = append(report.Entries, CommissionEntry{
			AdvisorID:      adv.ID,
			AdvisorName:    adv.Name,
			CommissionRate: adv.CommissionRate,
			ProfitBase:     base,
			Commission:     commission,
		})
		report.Total = report.Total.Add(commission)
	}

	return report
}

// Retention measures repeat business and average client lifetime value.
func Retention(totalClients int, invoices []*invoice.Invoice) RetentionReport {
	report := RetentionReport{
		TotalClients:  totalClients,
		RetentionRate: decimal.Zero,
		CLV:           types.Zero(),
	}

	perClient := make(map[id.ID]int)
	totalBilled := types.Zero()
	for _, inv := range billable(invoices) {
		perClient[inv.ClientID]++
		totalBilled = totalBilled.Add(inv.TotalAmount)
	}

	for _, count := range perClient {
		if count > 1 {
			report.ReturningClients++
		}
	}

	if totalClients > 0 {
		clients := decimal.NewFromInt(int64(totalClients))
		report.RetentionRate = decimal.NewFromInt(int64(report.ReturningClients)).
			Div(clients).Mul(hundred).Round(2)
		report.CLV = totalBilled.Div(clients).Round(2)
	}

	return report
}

// Efficiency measures stage dwell times over invoiced work orders. The
// last visited stage ends at the invoice issue date; cycle time runs
// from the first history entry to that date.
func Efficiency(workOrders []*workorder.WorkOrder, invoices []*invoice.Invoice) EfficiencyReport {
	report := EfficiencyReport{
		AverageCycleHours: decimal.Zero,
		Stages:            make([]StageMetric, 0),
	}

	// Earliest live invoice per work order marks completion.
	invoicedAt := make(map[id.ID]time.Time)
	for _, inv := range billable(invoices) {
		current, ok := invoicedAt[inv.WorkOrderID]
		if !ok || inv.Date.Before(current) {
			invoicedAt[inv.WorkOrderID] = inv.Date
		}
	}

	type acc struct {
		total  decimal.Decimal
		orders int
	}
	perStage := make(map[workorder.Stage]*acc)
	totalCycle := decimal.Zero

	for _, wo := range workOrders {
		end, ok := invoicedAt[wo.ID]
		if !ok || len(wo.History) == 0 {
			continue
		}
		report.CompletedOrders++

		cycle := decimal.NewFromFloat(end.Sub(wo.History[0].Date).Hours())
		totalCycle = totalCycle.Add(cycle)

		for i, entry := range wo.History {
			stageEnd := end
			if i+1 < len(wo.History) {
				stageEnd = wo.History[i+1].Date
			}
			hours := decimal.NewFromFloat(stageEnd.Sub(entry.Date).Hours())

			a, ok := perStage[entry.Stage]
			if !ok {
				a = &acc{}
				perStage[entry.Stage] = a
			}
			a.total = a.total.Add(hours)
			a.orders++
		}
	}

	if report.CompletedOrders == 0 {
		return report
	}

	report.AverageCycleHours = totalCycle.
		Div(decimal.NewFromInt(int64(report.CompletedOrders))).Round(2)

	slowest := decimal.Zero
	for stage, a := range perStage {
		avg := a.total.Div(decimal.NewFromInt(int64(a.orders))).Round(2)
		report.Stages = append(report.Stages, StageMetric{
			Stage:        stage,
			AverageHours: avg,
			Orders:       a.orders,
		})
		if avg.GreaterThan(slowest) {
			slowest = avg
			report.SlowestStage = stage
		}
	}

	sort.Slice(report.Stages, func(i, j int) bool {
		return report.Stages[j].AverageHours.LessThan(report.Stages[i].AverageHours)
	})

	return report
}

// AccountBalance derives the balance of one financial account:
// petty cash income minus petty cash expenses minus operating expenses.
func AccountBalance(accountID id.ID, transactions []*pettycash.Transaction, expenses []*expense.OperatingExpense) types.Money {
	balance := types.Zero()

	for _, t := range transactions {
		if t.AccountID != accountID {
			continue
		}
		balance = balance.Add(t.SignedAmount())
	}

	for _, e := range expenses {
		if e.AccountID != accountID {
			continue
		}
		balance = balance.Sub(e.Amount)
	}

	return balance
}

// Payroll sums closed shifts per staff member and applies the hourly
// rate. Open shifts count zero hours.
func Payroll(period Period, members []*staff.StaffMember, entries []*timeentry.TimeEntry) PayrollReport {
	report := PayrollReport{
		Period:  period,
		Entries: make([]PayrollEntry, 0, len(members)),
		Total:   types.Zero(),
	}

	hoursByStaff := make(map[id.ID]decimal.Decimal)
	for _, e := range entries {
		if !period.Contains(e.ClockIn) {
			continue
		}
		hoursByStaff[e.StaffID] = hoursByStaff[e.StaffID].Add(e.Hours())
	}

	for _, m := range members {
		hours := hoursByStaff[m.ID]
		gross := m.HourlyRate.Mul(hours).Round(2)
		report.Entries = append(report.Entries, PayrollEntry{
			StaffID:    m.ID,
			StaffName:  m.Name,
			Hours:      hours,
			HourlyRate: m.HourlyRate,
			GrossPay:   gross,
		})
		report.Total = report.Total.Add(gross)
	}

	return report
}
