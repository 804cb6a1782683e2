package stock

import (
	"context"
	"fmt"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/pkg/logger"
)

// Service provides business operations for the stock register.
// Transactions are managed by the caller (posting engine / document services).
type Service struct {
	repo Repository
}

// NewService creates a new stock register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordMovements records stock movements from a document posting.
// Called during document posting within a transaction.
func (s *Service) RecordMovements(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	for i, m := range movements {
		if !m.Quantity.IsPositive() {
			return apperror.NewValidation(fmt.Sprintf("movement %d: quantity must be positive", i))
		}
		if id.IsNil(m.RecorderID) {
			return apperror.NewValidation(fmt.Sprintf("movement %d: recorder_id is required", i))
		}
	}

	if err := s.repo.CreateMovements(ctx, movements); err != nil {
		return fmt.Errorf("create movements: %w", err)
	}

	logger.Info(ctx, "recorded stock movements",
		"count", len(movements),
		"recorder_id", movements[0].RecorderID,
	)

	return nil
}

// ReverseMovements removes movements for a document (used during unposting).
func (s *Service) ReverseMovements(ctx context.Context, recorderID id.ID, beforeVersion int) error {
	if err := s.repo.DeleteMovementsByRecorder(ctx, recorderID, beforeVersion); err != nil {
		return fmt.Errorf("delete movements: %w", err)
	}
	return nil
}

// Reservation represents a stock check request.
type Reservation struct {
	LocationID  id.ID
	ProductID   id.ID
	RequiredQty types.Quantity
}

// CheckAndReserveStock validates stock availability with pessimistic locking.
// Must be called within a transaction before creating expense movements.
func (s *Service) CheckAndReserveStock(ctx context.Context, items []Reservation) error {
	for _, item := range items {
		balance, err := s.repo.GetBalanceForUpdate(ctx, item.LocationID, item.ProductID)
		if err != nil {
			return fmt.Errorf("get balance for %s: %w", item.ProductID, err)
		}

		if balance.Quantity < item.RequiredQty {
			return apperror.NewInsufficientStock(
				item.ProductID.String(),
				item.RequiredQty.String(),
				balance.Quantity.String(),
			)
		}
	}

	return nil
}

// GetProductAvailability returns available quantity across branches.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	balances, err := s.repo.GetBalancesByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("get balances: %w", err)
	}

	var total types.Quantity
	for _, b := range balances {
		total += b.Quantity
	}

	return total, nil
}

// GetLocationStock returns all products with stock in a branch.
func (s *Service) GetLocationStock(ctx context.Context, locationID id.ID) ([]entity.StockBalance, error) {
	return s.repo.GetBalancesByLocation(ctx, locationID, BalanceFilter{
		ExcludeZero: true,
	})
}

// GetMovements returns movement history for a product.
func (s *Service) GetMovements(ctx context.Context, productID id.ID, filter MovementFilter) ([]entity.StockMovement, error) {
	return s.repo.GetMovementHistory(ctx, productID, filter)
}

// GetStockReport generates a turnover report for the period.
func (s *Service) GetStockReport(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}
