// Package register_repo provides PostgreSQL implementations for register
// repositories.
package register_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/registers/stock"
	"tallerpro/internal/infrastructure/storage/postgres"
)

const (
	stockMovementsTable = "reg_stock_movements"
	stockBalancesTable  = "reg_stock_balances"
)

var stockMovementCols = []string{
	"line_id", "recorder_id", "recorder_type", "recorder_version",
	"period", "record_type",
	"location_id", "product_id", "quantity", "created_at",
}

// StockRepo implements stock.Repository. Balances are maintained
// incrementally on every movement write, so reads never scan the
// movement log.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)

// CreateMovements batch inserts movements and applies their balance deltas.
func (r *StockRepo) CreateMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	// Fast path: COPY when inside a transaction
	if r.txm.GetTx(ctx) != nil {
		inserter := postgres.NewBatchInserter(r.txm)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, []any{
				m.LineID, m.RecorderID, m.RecorderType, m.RecorderVersion,
				m.Period, m.RecordType,
				m.LocationID, m.ProductID, m.Quantity, m.CreatedAt,
			})
		}
		if _, err := inserter.CopyFromSlice(ctx, stockMovementsTable, stockMovementCols, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return r.applyBalanceDeltas(ctx, movements, 1)
	}

	q := r.builder.Insert(stockMovementsTable).Columns(stockMovementCols...)
	for _, m := range movements {
		q = q.Values(
			m.LineID, m.RecorderID, m.RecorderType, m.RecorderVersion,
			m.Period, m.RecordType,
			m.LocationID, m.ProductID, m.Quantity, m.CreatedAt,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return r.applyBalanceDeltas(ctx, movements, 1)
}

// DeleteMovementsByRecorder removes movements of earlier document
// versions, reversing their balance effect.
func (r *StockRepo) DeleteMovementsByRecorder(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	q := r.builder.Select(stockMovementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		Where(squirrel.Lt{"recorder_version": beforeVersion})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}

	var stale []entity.StockMovement
	querier := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &stale, sql, args...); err != nil {
		return fmt.Errorf("select stale movements: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	del := r.builder.Delete(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		Where(squirrel.Lt{"recorder_version": beforeVersion})

	sql, args, err = del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}

	return r.applyBalanceDeltas(ctx, stale, -1)
}

// applyBalanceDeltas upserts balance rows from a movement set. sign is 1
// when recording and -1 when reversing.
func (r *StockRepo) applyBalanceDeltas(ctx context.Context, movements []entity.StockMovement, sign int64) error {
	type key struct {
		locationID id.ID
		productID  id.ID
	}

	deltas := make(map[key]int64)
	lastAt := make(map[key]time.Time)
	order := make([]key, 0, len(movements))

	for _, m := range movements {
		k := key{m.LocationID, m.ProductID}
		if _, seen := deltas[k]; !seen {
			order = append(order, k)
		}

		qty := m.Quantity.Int64Scaled()
		if m.RecordType == entity.RecordTypeExpense {
			qty = -qty
		}
		deltas[k] += qty * sign

		if m.Period.After(lastAt[k]) {
			lastAt[k] = m.Period
		}
	}

	sql := `
		INSERT INTO reg_stock_balances (location_id, product_id, quantity, last_movement_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (location_id, product_id) DO UPDATE SET
			quantity = reg_stock_balances.quantity + EXCLUDED.quantity,
			last_movement_at = GREATEST(reg_stock_balances.last_movement_at, EXCLUDED.last_movement_at),
			updated_at = NOW()
	`

	querier := r.txm.GetQuerier(ctx)
	for _, k := range order {
		if _, err := querier.Exec(ctx, sql, k.locationID, k.productID, deltas[k], lastAt[k]); err != nil {
			return fmt.Errorf("upsert balance: %w", err)
		}
	}

	return nil
}

// GetMovementsByRecorder retrieves movements for a document.
func (r *StockRepo) GetMovementsByRecorder(ctx context.Context, recorderID id.ID) ([]entity.StockMovement, error) {
	q := r.builder.Select(stockMovementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// GetBalance returns the current balance for location+product.
func (r *StockRepo) GetBalance(ctx context.Context, locationID, productID id.ID) (entity.StockBalance, error) {
	return r.getBalance(ctx, locationID, productID, false)
}

// GetBalanceForUpdate returns the balance with a row lock for stock control.
func (r *StockRepo) GetBalanceForUpdate(ctx context.Context, locationID, productID id.ID) (entity.StockBalance, error) {
	return r.getBalance(ctx, locationID, productID, true)
}

func (r *StockRepo) getBalance(ctx context.Context, locationID, productID id.ID, forUpdate bool) (entity.StockBalance, error) {
	var balance entity.StockBalance

	q := r.builder.Select(
		"location_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{
			"location_id": locationID,
			"product_id":  productID,
		}).Limit(1)

	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return balance, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &balance, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			// A product with no movements has a zero balance
			return entity.StockBalance{
				LocationID: locationID,
				ProductID:  productID,
				Quantity:   0,
			}, nil
		}
		return balance, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

// GetBalancesByLocation returns balances for one branch.
func (r *StockRepo) GetBalancesByLocation(ctx context.Context, locationID id.ID, filter stock.BalanceFilter) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"b.location_id", "b.product_id",
		"b.quantity", "b.last_movement_at", "b.updated_at",
	).From(stockBalancesTable + " b").
		Where(squirrel.Eq{"b.location_id": locationID})

	if filter.ExcludeZero {
		q = q.Where(squirrel.NotEq{"b.quantity": int64(0)})
	}

	if len(filter.ProductIDs) > 0 {
		q = q.Where(squirrel.Eq{"b.product_id": filter.ProductIDs})
	}

	if filter.BelowMin {
		q = q.Join("cat_products p ON p.id = b.product_id").
			Where(squirrel.Expr("b.quantity < p.min_stock"))
	}

	q = q.OrderBy("b.product_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetBalancesByProduct returns non-zero balances for a product across branches.
func (r *StockRepo) GetBalancesByProduct(ctx context.Context, productID id.ID) ([]entity.StockBalance, error) {
	q := r.builder.Select(
		"location_id", "product_id",
		"quantity", "last_movement_at", "updated_at",
	).From(stockBalancesTable).
		Where(squirrel.Eq{"product_id": productID}).
		Where(squirrel.NotEq{"quantity": int64(0)}).
		OrderBy("location_id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var balances []entity.StockBalance
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &balances, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	return balances, nil
}

// GetMovementHistory returns movement history for a product.
func (r *StockRepo) GetMovementHistory(ctx context.Context, productID id.ID, filter stock.MovementFilter) ([]entity.StockMovement, error) {
	q := r.builder.Select(stockMovementCols...).
		From(stockMovementsTable).
		Where(squirrel.Eq{"product_id": productID})

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}

	if filter.RecordType != nil {
		q = q.Where(squirrel.Eq{"record_type": *filter.RecordType})
	}

	if filter.FromDate != nil {
		q = q.Where(squirrel.GtOrEq{"period": *filter.FromDate})
	}

	if filter.ToDate != nil {
		q = q.Where(squirrel.LtOrEq{"period": *filter.ToDate})
	}

	q = q.OrderBy("period DESC", "created_at DESC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []entity.StockMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	return movements, nil
}

// GetTurnover calculates opening balance, receipts and expenses for a period.
func (r *StockRepo) GetTurnover(ctx context.Context, filter stock.TurnoverFilter) (stock.Turnover, error) {
	var result stock.Turnover

	args := []any{filter.FromDate, filter.ToDate}
	conditions := "period >= $1 AND period < $2"
	argIndex := 3

	if filter.LocationID != nil {
		conditions += fmt.Sprintf(" AND location_id = $%d", argIndex)
		args = append(args, *filter.LocationID)
		result.LocationID = *filter.LocationID
		argIndex++
	}

	if filter.ProductID != nil {
		conditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *filter.ProductID)
		result.ProductID = *filter.ProductID
	}

	sql := fmt.Sprintf(`
		SELECT
			COALESCE(SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE 0 END), 0) AS receipt,
			COALESCE(SUM(CASE WHEN record_type = 'expense' THEN quantity ELSE 0 END), 0) AS expense
		FROM reg_stock_movements
		WHERE %s
	`, conditions)

	querier := r.txm.GetQuerier(ctx)
	var receiptScaled, expenseScaled int64
	err := querier.QueryRow(ctx, sql, args...).Scan(&receiptScaled, &expenseScaled)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return result, fmt.Errorf("calculate turnover: %w", err)
	}
	result.Receipt = types.NewQuantityFromInt64Scaled(receiptScaled)
	result.Expense = types.NewQuantityFromInt64Scaled(expenseScaled)

	openingArgs := []any{filter.FromDate}
	openingConditions := "period < $1"
	argIndex = 2

	if filter.LocationID != nil {
		openingConditions += fmt.Sprintf(" AND location_id = $%d", argIndex)
		openingArgs = append(openingArgs, *filter.LocationID)
		argIndex++
	}

	if filter.ProductID != nil {
		openingConditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		openingArgs = append(openingArgs, *filter.ProductID)
	}

	openingSQL := fmt.Sprintf(`
		SELECT COALESCE(
			SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE -quantity END),
			0
		)
		FROM reg_stock_movements
		WHERE %s
	`, openingConditions)

	var openingScaled int64
	err = querier.QueryRow(ctx, openingSQL, openingArgs...).Scan(&openingScaled)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return result, fmt.Errorf("calculate opening balance: %w", err)
	}
	result.OpeningBalance = types.NewQuantityFromInt64Scaled(openingScaled)

	result.ClosingBalance = result.OpeningBalance + result.Receipt - result.Expense

	return result, nil
}

// RecalculateBalances rebuilds the balance table from the movement log.
func (r *StockRepo) RecalculateBalances(ctx context.Context, locationID, productID *id.ID) error {
	conditions := ""
	args := []any{}
	argIndex := 1

	if locationID != nil {
		conditions += fmt.Sprintf(" AND location_id = $%d", argIndex)
		args = append(args, *locationID)
		argIndex++
	}
	if productID != nil {
		conditions += fmt.Sprintf(" AND product_id = $%d", argIndex)
		args = append(args, *productID)
	}

	querier := r.txm.GetQuerier(ctx)

	deleteSQL := "DELETE FROM reg_stock_balances WHERE TRUE" + conditions
	if _, err := querier.Exec(ctx, deleteSQL, args...); err != nil {
		return fmt.Errorf("clear balances: %w", err)
	}

	rebuildSQL := fmt.Sprintf(`
		INSERT INTO reg_stock_balances (location_id, product_id, quantity, last_movement_at, updated_at)
		SELECT
			location_id,
			product_id,
			SUM(CASE WHEN record_type = 'receipt' THEN quantity ELSE -quantity END),
			MAX(period),
			NOW()
		FROM reg_stock_movements
		WHERE TRUE%s
		GROUP BY location_id, product_id
	`, conditions)

	if _, err := querier.Exec(ctx, rebuildSQL, args...); err != nil {
		return fmt.Errorf("rebuild balances: %w", err)
	}

	return nil
}
