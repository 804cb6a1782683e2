package dto

import (
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/documents/stocktake"
)

// StocktakeLineRequest is one product placed on the count sheet by hand.
type StocktakeLineRequest struct {
	ProductID id.ID          `json:"productId" binding:"required"`
	BookQty   types.Quantity `json:"bookQty"`
	UnitCost  types.Money    `json:"unitCost"`
}

// CreateStocktakeRequest opens a draft physical count. Lines are
// optional; most counts fill the sheet from register balances instead.
type CreateStocktakeRequest struct {
	ResponsibleID *id.ID `json:"responsibleId"`
	Comment       string `json:"comment,omitempty"`

	Lines []StocktakeLineRequest `json:"lines"`
}

// ToEntity converts DTO to domain entity scoped to the active branch.
func (r *CreateStocktakeRequest) ToEntity(locationID id.ID) *stocktake.Stocktake {
	st := stocktake.NewStocktake(locationID)
	st.ResponsibleID = r.ResponsibleID
	st.Comment = r.Comment
	for _, l := range r.Lines {
		st.AddLine(l.ProductID, l.BookQty, l.UnitCost)
	}
	return st
}

// RecordCountRequest stores the counted quantity of one sheet line.
type RecordCountRequest struct {
	LineNo     int            `json:"lineNo" binding:"required,min=1"`
	CountedQty types.Quantity `json:"countedQty"`
}
