package quote

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for quote numbers (COT-2026-00001).
	NumberPrefix = "COT"

	// NumeratorStrategy: quotes are internal documents, the cached
	// strategy is fine.
	NumeratorStrategy = numerator.StrategyCached
)
