package invoice

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for invoice numbers (FV-2026-00001).
	NumberPrefix = "FV"

	// NumeratorStrategy: invoices are fiscal documents, DIAN numbering
	// must be gapless, so the strict strategy is mandatory.
	NumeratorStrategy = numerator.StrategyStrict
)
