package reports

import (
	"context"
	"time"

	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/catalogs/staff"
	"tallerpro/internal/domain/documents/expense"
	"tallerpro/internal/domain/documents/invoice"
	"tallerpro/internal/domain/documents/pettycash"
	"tallerpro/internal/domain/documents/purchase"
	"tallerpro/internal/domain/documents/timeentry"
	"tallerpro/internal/domain/documents/workorder"
)

// Repository fetches the snapshots the aggregator computes over.
// Invoices come fully loaded (items, factoring, quote links); work
// orders come with their history.
type Repository interface {
	Invoices(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*invoice.Invoice, error)
	WorkOrdersWithHistory(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*workorder.WorkOrder, error)

	OperatingExpenses(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*expense.OperatingExpense, error)
	PettyCashTransactions(ctx context.Context, locationID *id.ID, accountID *id.ID, from, to *time.Time) ([]*pettycash.Transaction, error)
	Purchases(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*purchase.Purchase, error)

	StaffMembers(ctx context.Context, locationID *id.ID, role *staff.Role) ([]*staff.StaffMember, error)
	TimeEntries(ctx context.Context, locationID *id.ID, from, to *time.Time) ([]*timeentry.TimeEntry, error)

	ClientCount(ctx context.Context) (int, error)
}
