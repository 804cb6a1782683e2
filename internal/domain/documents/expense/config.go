package expense

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for operating expense numbers (GO-2026-00001).
	NumberPrefix = "GO"

	NumeratorStrategy = numerator.StrategyCached
)
