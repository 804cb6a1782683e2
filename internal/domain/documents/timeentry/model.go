// Package timeentry provides the TimeEntry document (turno): a time
// clock punch pair per staff member, the raw input for payroll.
package timeentry

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
)

// TimeEntry represents one worked interval. An entry with a nil
// ClockOut is an open shift.
type TimeEntry struct {
	entity.Document

	StaffID id.ID `db:"staff_id" json:"staffId"`

	ClockIn  time.Time  `db:"clock_in" json:"clockIn"`
	ClockOut *time.Time `db:"clock_out" json:"clockOut,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewTimeEntry opens a shift for the staff member.
func NewTimeEntry(locationID, staffID id.ID, clockIn time.Time) *TimeEntry {
	return &TimeEntry{
		Document: entity.NewDocument(locationID),
		StaffID:  staffID,
		ClockIn:  clockIn,
	}
}

// IsOpen reports whether the shift has not been closed yet.
func (t *TimeEntry) IsOpen() bool {
	return t.ClockOut == nil
}

// Close stamps the clock-out time.
func (t *TimeEntry) Close(clockOut time.Time) error {
	if !t.IsOpen() {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Shift is already closed",
		).WithDetail("entry_id", t.ID.String())
	}
	if !clockOut.After(t.ClockIn) {
		return apperror.NewValidation("clock-out must be after clock-in").
			WithDetail("clock_in", t.ClockIn).
			WithDetail("clock_out", clockOut)
	}
	t.ClockOut = &clockOut
	return nil
}

// Hours returns the worked duration in decimal hours, zero while open.
func (t *TimeEntry) Hours() decimal.Decimal {
	if t.ClockOut == nil {
		return decimal.Zero
	}
	minutes := t.ClockOut.Sub(t.ClockIn).Minutes()
	return decimal.NewFromFloat(minutes).Div(decimal.NewFromInt(60)).Round(2)
}

// Validate implements entity.Validatable.
func (t *TimeEntry) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.StaffID) {
		return apperror.NewValidation("staff member is required").
			WithDetail("field", "staffId")
	}

	if t.ClockIn.IsZero() {
		return apperror.NewValidation("clock-in is required").
			WithDetail("field", "clockIn")
	}

	if t.ClockOut != nil && !t.ClockOut.After(t.ClockIn) {
		return apperror.NewValidation("clock-out must be after clock-in").
			WithDetail("field", "clockOut")
	}

	return nil
}
