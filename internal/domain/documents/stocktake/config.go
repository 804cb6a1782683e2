package stocktake

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for stocktake numbers (CF-2026-00001, conteo físico).
	NumberPrefix = "CF"

	// NumeratorStrategy: internal document, gaps are acceptable.
	NumeratorStrategy = numerator.StrategyCached
)
