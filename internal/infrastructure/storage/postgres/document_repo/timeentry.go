package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain"
	"tallerpro/internal/domain/documents/timeentry"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const timeEntriesTable = "doc_time_entries"

// TimeEntryRepo implements timeentry.Repository.
type TimeEntryRepo struct {
	*BaseDocumentRepo[*timeentry.TimeEntry]
}

// NewTimeEntryRepo creates a new time entry repository.
func NewTimeEntryRepo(txm *postgres.TxManager) *TimeEntryRepo {
	return &TimeEntryRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*timeentry.TimeEntry](
			txm,
			timeEntriesTable,
			postgres.ExtractDBColumns[timeentry.TimeEntry](),
			func() *timeentry.TimeEntry { return &timeentry.TimeEntry{} },
		),
	}
}

// GetOpenEntry returns the staff member's open shift. A staff member has
// at most one.
func (r *TimeEntryRepo) GetOpenEntry(ctx context.Context, staffID id.ID) (*timeentry.TimeEntry, error) {
	entry := &timeentry.TimeEntry{}

	q := r.baseSelect().
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"clock_out": nil}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("clock_in DESC").
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.querier(ctx), entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("time_entry", staffID.String())
		}
		return nil, fmt.Errorf("get open entry: %w", err)
	}

	return entry, nil
}

// List retrieves time entries with filtering.
func (r *TimeEntryRepo) List(ctx context.Context, f timeentry.ListFilter) (domain.ListResult[*timeentry.TimeEntry], error) {
	q := r.commonWhere(r.baseSelect(), f.ListFilter)

	if f.StaffID != nil {
		q = q.Where(squirrel.Eq{"staff_id": *f.StaffID})
	}
	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"clock_in": *f.DateFrom})
	}
	if f.DateTo != nil {
		q = q.Where(squirrel.Lt{"clock_in": *f.DateTo})
	}
	if f.OnlyOpen {
		q = q.Where(squirrel.Eq{"clock_out": nil})
	}

	if f.OrderBy == "" {
		f.OrderBy = "-clock_in"
	}

	return r.listQuery(ctx, q, f.ListFilter)
}
