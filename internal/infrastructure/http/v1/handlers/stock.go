package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
	"tallerpro/internal/domain/registers/stock"
)

// StockHandler serves the stock register: balances, movement history,
// turnover, and maintenance.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
	repo    stock.Repository
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service, repo stock.Repository) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
		repo:        repo,
	}
}

// GetBalances handles GET /registers/stock/balances.
// Requires locationId or productId; belowMin narrows to reorder alerts.
func (h *StockHandler) GetBalances(c *gin.Context) {
	ctx := c.Request.Context()

	locationID, ok := h.ParseIDQuery(c, "locationId")
	if !ok {
		return
	}
	productID, ok := h.ParseIDQuery(c, "productId")
	if !ok {
		return
	}

	switch {
	case locationID != nil:
		filter := stock.BalanceFilter{
			ExcludeZero: c.Query("excludeZero") != "false",
			BelowMin:    c.Query("belowMin") == "true",
		}
		if productID != nil {
			filter.ProductIDs = []id.ID{*productID}
		}

		balances, err := h.repo.GetBalancesByLocation(ctx, *locationID, filter)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": balances})

	case productID != nil:
		balances, err := h.repo.GetBalancesByProduct(ctx, *productID)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": balances})

	default:
		h.Error(c, apperror.NewValidation("locationId or productId is required"))
	}
}

// GetAvailability handles GET /registers/stock/availability/:productId -
// free quantity across all branches.
func (h *StockHandler) GetAvailability(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	available, err := h.service.GetProductAvailability(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"productId": productID,
		"available": available,
	})
}

// GetMovements handles GET /registers/stock/movements.
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	productIDStr := c.Query("productId")
	if productIDStr == "" {
		h.Error(c, apperror.NewValidation("productId is required"))
		return
	}

	productID, err := id.Parse(productIDStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	filter := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	var ok bool
	if filter.LocationID, ok = h.ParseIDQuery(c, "locationId"); !ok {
		return
	}
	if filter.FromDate, ok = h.ParseTimeQuery(c, "fromDate"); !ok {
		return
	}
	if filter.ToDate, ok = h.ParseTimeQuery(c, "toDate"); !ok {
		return
	}

	movements, err := h.service.GetMovements(ctx, productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": movements})
}

// GetTurnover handles GET /registers/stock/turnover - receipt/expense
// totals over a period.
func (h *StockHandler) GetTurnover(c *gin.Context) {
	ctx := c.Request.Context()

	var filter stock.TurnoverFilter

	var ok bool
	if filter.LocationID, ok = h.ParseIDQuery(c, "locationId"); !ok {
		return
	}
	if filter.ProductID, ok = h.ParseIDQuery(c, "productId"); !ok {
		return
	}

	from, ok := h.ParseTimeQuery(c, "fromDate")
	if !ok {
		return
	}
	to, ok := h.ParseTimeQuery(c, "toDate")
	if !ok {
		return
	}
	if from == nil || to == nil {
		h.Error(c, apperror.NewValidation("fromDate and toDate are required"))
		return
	}
	filter.FromDate = *from
	filter.ToDate = *to

	report, err := h.service.GetStockReport(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"turnover": report,
		"period": gin.H{
			"from": from.Format(time.RFC3339),
			"to":   to.Format(time.RFC3339),
		},
	})
}

// RecalculateBalances handles POST /registers/stock/recalculate -
// rebuilds the balance table from movements.
func (h *StockHandler) RecalculateBalances(c *gin.Context) {
	ctx := c.Request.Context()

	locationID, ok := h.ParseIDQuery(c, "locationId")
	if !ok {
		return
	}
	productID, ok := h.ParseIDQuery(c, "productId")
	if !ok {
		return
	}

	if err := h.repo.RecalculateBalances(ctx, locationID, productID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "stock balances recalculated")
}
