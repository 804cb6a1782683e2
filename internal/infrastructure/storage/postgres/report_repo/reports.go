// Package report_repo provides the PostgreSQL snapshot source for the
// reporting aggregator.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/domain/documents/purchase"
	"tallerpro/internal/domain/documents/timeentry"
	"tallerpro/internal/domain/documents/workorder"
	"tallerpro/internal/domain/filter"
	"tallerpro/internal/domain/reports"
	"tallerpro/internal/infrastructure/storage/postgres"
	"tallerpro/internal/infrastructure/storage/postgres/catalog_repo"
	"tallerpro/internal/infrastructure/storage/postgres/document_repo"
)

// ReportRepo implements reports.Repository by composing the document and
// catalog repositories. The aggregator works on in-memory snapshots, so
// each method loads one full slice.
type ReportRepo struct {
	txm         *postgres.TxManager
	invoices    *document_repo.InvoiceRepo
	workOrders  *document_repo.WorkOrderRepo
	expenses    *document_repo.ExpenseRepo
	pettyCash   *document_repo.PettyCashRepo
	purchases   *document_repo.PurchaseRepo
	timeEntries *document_repo.TimeEntryRepo
	staff       *catalog_repo.StaffRepo
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:         txm,
		invoices:    document_repo.NewInvoiceRepo(txm),
		workOrders:  document_repo.NewWorkOrderRepo(txm),
		expenses:    document_repo.NewExpenseRepo(txm),
		pettyCash:   document_repo.NewPettyCashRepo(txm),
		purchases:   document_repo.NewPurchaseRepo(txm),
		timeEntries: document_repo.NewTimeEntryRepo(txm),
		staff:       catalog_repo.NewStaffRepo(txm),
	}
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportRepo)(nil)

func snapshotFilter(locationID *id.ID) domain.ListFilter {
	return domain.ListFilter{
		LocationID: locationID,
		OrderBy:    "date",
	}
}

// Invoices loads invoices in the window with items, quote links and
// factoring populated.
func (r *ReportRepo) Invoices(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*invoice.Invoice, error) {
	res, err := r.invoices.List(ctx, invoice.ListFilter{
		ListFilter: snapshotFilter(locationID),
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("load invoices: %w", err)
	}

	for _, doc := range res.Items {
		if err := r.invoices.LoadFull(ctx, doc); err != nil {
			return nil, fmt.Errorf("load invoice %s: %w", doc.ID, err)
		}
	}

	return res.Items, nil
}

// WorkOrdersWithHistory loads work orders in the window with their stage
// history.
func (r *ReportRepo) WorkOrdersWithHistory(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*workorder.WorkOrder, error) {
	res, err := r.workOrders.List(ctx, workorder.ListFilter{
		ListFilter: snapshotFilter(locationID),
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("load work orders: %w", err)
	}

	for _, doc := range res.Items {
		history, err := r.workOrders.GetHistory(ctx, doc.ID)
		if err != nil {
			return nil, fmt.Errorf("load history %s: %w", doc.ID, err)
		}
		doc.History = history
	}

	return res.Items, nil
}

// OperatingExpenses loads operating expenses in the window.
func (r *ReportRepo) OperatingExpenses(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*expense.OperatingExpense, error) {
	res, err := r.expenses.List(ctx, expense.ListFilter{
		ListFilter: snapshotFilter(locationID),
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("load operating expenses: %w", err)
	}
	return res.Items, nil
}

// PettyCashTransactions loads petty cash transactions in the window.
func (r *ReportRepo) PettyCashTransactions(ctx context.Context, locationID *id.ID, accountID *id.ID, from, to *time.Time) ([]*pettycash.Transaction, error) {
	res, err := r.pettyCash.List(ctx, pettycash.ListFilter{
		ListFilter: snapshotFilter(locationID),
		AccountID:  accountID,
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("load petty cash: %w", err)
	}
	return res.Items, nil
}

// Purchases loads purchase headers in the window.
func (r *ReportRepo) Purchases(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*purchase.Purchase, error) {
	res, err := r.purchases.List(ctx, purchase.ListFilter{
		ListFilter: snapshotFilter(locationID),
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}
	return res.Items, nil
}

// StaffMembers loads active staff, optionally scoped to a branch and role.
func (r *ReportRepo) StaffMembers(ctx context.Context, locationID *id.ID, role *staff.Role) ([]*staff.StaffMember, error) {
	if locationID != nil {
		return r.staff.ListByLocation(ctx, *locationID, role)
	}

	f := domain.ListFilter{OrderBy: "name"}
	f.AdvancedFilters = append(f.AdvancedFilters, filter.Item{
		Field: "active", Operator: filter.Equal, Value: true,
	})
	if role != nil {
		f.AdvancedFilters = append(f.AdvancedFilters, filter.Item{
			Field: "role", Operator: filter.Equal, Value: *role,
		})
	}

	res, err := r.staff.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}
	return res.Items, nil
}

// TimeEntries loads time entries whose clock-in falls in the window.
func (r *ReportRepo) TimeEntries(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*timeentry.TimeEntry, error) {
	res, err := r.timeEntries.List(ctx, timeentry.ListFilter{
		ListFilter: domain.ListFilter{LocationID: locationID, OrderBy: "clock_in"},
		DateFrom:   from,
		DateTo:     to,
	})
	if err != nil {
		return nil, fmt.Errorf("load time entries: %w", err)
	}
	return res.Items, nil
}

// ClientCount counts registered clients company-wide.
func (r *ReportRepo) ClientCount(ctx context.Context) (int, error) {
	var count int
	sql := "SELECT COUNT(*) FROM cat_clients WHERE deletion_mark = false"
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}
