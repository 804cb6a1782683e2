// Package stock provides the parts stock accumulation register.
// Movements are generated by posting Purchases (receipts) and Invoices
// containing inventory items (expenses); balances are derived by summation.
package stock

import (
	"context"
	"time"

	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

// Repository defines operations for the stock register.
type Repository interface {
	// Movement operations

	// CreateMovements batch inserts movements (used during posting)
	CreateMovements(ctx context.Context, movements []entity.StockMovement) error

	// DeleteMovementsByRecorder removes all movements for a document with
	// recorder_version < beforeVersion. Used during unposting or re-posting.
	DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error

	// GetMovementsByRecorder retrieves all movements for a document
	GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error)

	// Balance operations

	// GetBalance returns current balance for location+product
	GetBalance(ctx context.Context, locationID, productID id.ID) (entity.StockBalance, error)

	// GetBalanceForUpdate returns balance with row lock for stock control
	GetBalanceForUpdate(ctx context.Context, locationID, productID id.ID) (entity.StockBalance, error)

	// GetBalancesByLocation returns balances for a branch
	GetBalancesByLocation(ctx context.Context, locationID id.ID, filter BalanceFilter) ([]entity.StockBalance, error)

	// GetBalancesByProduct returns balances across all branches for a product
	GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error)

	// Reporting

	// GetMovementHistory returns movement history for a product
	GetMovementHistory(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error)

	// GetTurnover calculates receipt and expense totals for a period
	GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error)

	// Maintenance

	// RecalculateBalances rebuilds the balance table from movements
	RecalculateBalances(ctx context.Context, locationID, productID *id.ID) error
}

// BalanceFilter for filtering balance queries.
type BalanceFilter struct {
	ProductIDs  []id.ID
	ExcludeZero bool
	BelowMin    bool // only products below their MinStock
}

// MovementFilter for filtering movement history.
type MovementFilter struct {
	LocationID *id.ID
	RecordType *entity.RecordType
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
	Offset     int
}

// TurnoverFilter for turnover reports.
type TurnoverFilter struct {
	LocationID *id.ID
	ProductID  *id.ID
	FromDate   time.Time
	ToDate     time.Time
}

// Turnover represents receipt/expense totals.
type Turnover struct {
	LocationID     id.ID          `json:"locationId,omitempty"`
	ProductID      id.ID          `json:"productId,omitempty"`
	OpeningBalance types.Quantity `json:"openingBalance"`
	Receipt        types.Quantity `json:"receipt"`
	Expense        types.Quantity `json:"expense"`
	ClosingBalance types.Quantity `json:"closingBalance"`
}
