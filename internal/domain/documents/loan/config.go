package loan

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for loan numbers (PRE-2026-00001).
	NumberPrefix = "PRE"

	NumeratorStrategy = numerator.StrategyCached
)
