// Package stocktake provides the Stocktake document (conteo físico):
// a physical count of parts at a branch whose deviations post stock
// adjustments. Surplus becomes a receipt, shortage an expense.
package stocktake

import (
	"context"
	"time"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/posting"
)

// Status represents the counting workflow state.
type Status string

const (
	StatusBorrador   Status = "borrador"
	StatusEnConteo   Status = "en_conteo"
	StatusCompletado Status = "completado"
	StatusCancelado  Status = "cancelado"
)

// Line is one product under count.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// BookQty is the register balance when the sheet was prepared
	BookQty types.Quantity `db:"book_qty" json:"bookQty"`

	// CountedQty is the physically counted quantity; nil until counted
	CountedQty *types.Quantity `db:"counted_qty" json:"countedQty,omitempty"`

	// Deviation = counted − book. Positive is surplus, negative shortage.
	Deviation types.Quantity `db:"deviation" json:"deviation"`

	// UnitCost values the deviation for the shrinkage report
	UnitCost       types.Money `db:"unit_cost" json:"unitCost"`
	DeviationValue types.Money `db:"deviation_value" json:"deviationValue"`

	Counted   bool       `db:"counted" json:"counted"`
	CountedAt *time.Time `db:"counted_at" json:"countedAt,omitempty"`
	CountedBy string     `db:"counted_by" json:"countedBy,omitempty"`
}

// Stocktake represents a physical inventory count at a branch.
type Stocktake struct {
	entity.Document

	Status Status `db:"status" json:"status"`

	// ResponsibleID is the staff member leading the count
	ResponsibleID *id.ID `db:"responsible_id" json:"responsibleId,omitempty"`

	// CompletedAt is set when every line has been counted
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`

	// Totals (calculated from lines)
	TotalBookQty    types.Quantity `db:"total_book_qty" json:"totalBookQty"`
	TotalCountedQty types.Quantity `db:"total_counted_qty" json:"totalCountedQty"`
	TotalSurplus    types.Quantity `db:"total_surplus" json:"totalSurplus"`
	TotalShortage   types.Quantity `db:"total_shortage" json:"totalShortage"`

	Lines []Line `db:"-" json:"lines"`
}

// NewStocktake creates a draft count for a branch.
func NewStocktake(locationID id.ID) *Stocktake {
	return &Stocktake{
		Document: entity.NewDocument(locationID),
		Status:   StatusBorrador,
		Lines:    make([]Line, 0),
	}
}

// AddLine appends a product to the count sheet.
func (st *Stocktake) AddLine(productID id.ID, bookQty types.Quantity, unitCost types.Money) {
	st.Lines = append(st.Lines, Line{
		LineID:    id.New(),
		LineNo:    len(st.Lines) + 1,
		ProductID: productID,
		BookQty:   bookQty,
		UnitCost:  unitCost,
	})
	st.recalculateTotals()
}

// RecordCount stores the counted quantity for a line and derives its
// deviation.
func (st *Stocktake) RecordCount(lineNo int, countedQty types.Quantity, countedBy string, at time.Time) error {
	if lineNo < 1 || lineNo > len(st.Lines) {
		return apperror.NewValidation("invalid line number").
			WithDetail("lineNo", lineNo)
	}
	if countedQty.IsNegative() {
		return apperror.NewValidation("counted quantity cannot be negative").
			WithDetail("lineNo", lineNo)
	}

	l := &st.Lines[lineNo-1]
	l.CountedQty = &countedQty
	l.Deviation = countedQty - l.BookQty
	l.DeviationValue = l.UnitCost.Mul(l.Deviation.Decimal())
	l.Counted = true
	l.CountedAt = &at
	l.CountedBy = countedBy

	st.recalculateTotals()
	return nil
}

func (st *Stocktake) recalculateTotals() {
	st.TotalBookQty = 0
	st.TotalCountedQty = 0
	st.TotalSurplus = 0
	st.TotalShortage = 0

	for _, l := range st.Lines {
		st.TotalBookQty += l.BookQty
		if l.CountedQty == nil {
			continue
		}
		st.TotalCountedQty += *l.CountedQty
		if l.Deviation.IsPositive() {
			st.TotalSurplus += l.Deviation
		} else if l.Deviation.IsNegative() {
			st.TotalShortage += l.Deviation.Neg()
		}
	}
}

// Validate implements entity.Validatable.
func (st *Stocktake) Validate(ctx context.Context) error {
	if err := st.Document.Validate(ctx); err != nil {
		return err
	}

	switch st.Status {
	case StatusBorrador, StatusEnConteo, StatusCompletado, StatusCancelado:
	default:
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(st.Status))
	}

	seen := make(map[id.ID]int, len(st.Lines))
	for i, l := range st.Lines {
		if id.IsNil(l.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if prev, ok := seen[l.ProductID]; ok {
			return apperror.NewValidation("product counted twice").
				WithDetail("lineNo", i+1).
				WithDetail("duplicateOf", prev)
		}
		seen[l.ProductID] = i + 1
	}

	return nil
}

// Start moves the count from draft to in progress. The sheet is frozen
// from here on; only counted quantities change.
func (st *Stocktake) Start() error {
	if st.Status != StatusBorrador {
		return apperror.NewBusinessRule(
			"STOCKTAKE_NOT_DRAFT",
			"Count can only start from draft",
		).WithDetail("status", string(st.Status))
	}
	if len(st.Lines) == 0 {
		return apperror.NewBusinessRule(
			"STOCKTAKE_EMPTY",
			"Count sheet has no lines",
		)
	}
	st.Status = StatusEnConteo
	return nil
}

// Complete closes the count once every line has been counted.
func (st *Stocktake) Complete(at time.Time) error {
	if st.Status != StatusEnConteo {
		return apperror.NewBusinessRule(
			"STOCKTAKE_NOT_IN_PROGRESS",
			"Count can only complete while in progress",
		).WithDetail("status", string(st.Status))
	}
	for i, l := range st.Lines {
		if !l.Counted {
			return apperror.NewBusinessRule(
				"LINE_NOT_COUNTED",
				"All lines must be counted before completing",
			).WithDetail("lineNo", i+1)
		}
	}
	st.Status = StatusCompletado
	st.CompletedAt = &at
	return nil
}

// Cancel abandons an unfinished count.
func (st *Stocktake) Cancel() error {
	if st.Status == StatusCompletado || st.Posted {
		return apperror.NewBusinessRule(
			"STOCKTAKE_COMPLETED",
			"Completed count cannot be cancelled",
		)
	}
	st.Status = StatusCancelado
	return nil
}

// --- Postable implementation ---

// GetDocumentType returns the document type name.
func (st *Stocktake) GetDocumentType() string {
	return "Stocktake"
}

// CanPost requires a completed count with every line counted.
func (st *Stocktake) CanPost(ctx context.Context) error {
	if err := st.Validate(ctx); err != nil {
		return err
	}

	if st.Status != StatusCompletado {
		return apperror.NewBusinessRule(
			"STOCKTAKE_NOT_COMPLETED",
			"Count must be completed before posting",
		).WithDetail("status", string(st.Status))
	}

	for i, l := range st.Lines {
		if !l.Counted {
			return apperror.NewBusinessRule(
				"LINE_NOT_COUNTED",
				"All lines must be counted before posting",
			).WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GenerateMovements turns deviations into stock adjustments: surplus is
// a receipt, shortage an expense. Exact counts produce nothing.
func (st *Stocktake) GenerateMovements(ctx context.Context) (*posting.MovementSet, error) {
	movements := posting.NewMovementSet()

	newVersion := st.PostedVersion + 1

	for _, l := range st.Lines {
		if l.Deviation.IsZero() {
			continue
		}

		recordType := entity.RecordTypeReceipt
		qty := l.Deviation
		if l.Deviation.IsNegative() {
			recordType = entity.RecordTypeExpense
			qty = l.Deviation.Neg()
		}

		movements.AddStock(entity.NewStockMovement(
			st.ID,
			st.GetDocumentType(),
			newVersion,
			st.Date,
			recordType,
			st.LocationID,
			l.ProductID,
			qty,
		))
	}

	return movements, nil
}

// Ensure interface compliance at compile time.
var _ posting.Postable = (*Stocktake)(nil)
