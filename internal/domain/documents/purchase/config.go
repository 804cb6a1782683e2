package purchase

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for purchase numbers (CMP-2026-00001).
	NumberPrefix = "CMP"

	// NumeratorStrategy: internal document, gaps are acceptable.
	NumeratorStrategy = numerator.StrategyCached
)
