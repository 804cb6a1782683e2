// Package posting coordinates document posting: validating the document,
// generating its register movements and recording them atomically.
package posting

import (
	"context"

	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
)

// Postable is implemented by documents that generate register movements.
type Postable interface {
	// GetID returns the document ID
	GetID() id.ID

	// GetDocumentType returns the recorder type (e.g., "Purchase", "Invoice")
	GetDocumentType() string

	// GetPostedVersion returns the current posting iteration
	GetPostedVersion() int

	// IsPosted returns true if document movements are currently recorded
	IsPosted() bool

	// MarkPosted / MarkUnposted flip the posted flag; MarkPosted also
	// advances the posting version
	MarkPosted()
	MarkUnposted()

	// CanPost validates if the document can be posted
	CanPost(ctx context.Context) error

	// GenerateMovements produces the register movements for this document
	GenerateMovements(ctx context.Context) (*MovementSet, error)
}

// MovementSet groups all register movements produced by one document.
// Registers are added here as the system grows.
type MovementSet struct {
	Stock []entity.StockMovement
}

// NewMovementSet creates an empty movement set.
func NewMovementSet() *MovementSet {
	return &MovementSet{}
}

// IsEmpty returns true if the set carries no movements at all.
func (s *MovementSet) IsEmpty() bool {
	return s == nil || len(s.Stock) == 0
}

// AddStock appends stock movements to the set.
func (s *MovementSet) AddStock(movements ...entity.StockMovement) {
	s.Stock = append(s.Stock, movements...)
}
