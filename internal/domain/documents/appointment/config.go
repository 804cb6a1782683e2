package appointment

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for appointment numbers (CIT-2026-00001).
	NumberPrefix = "CIT"

	NumeratorStrategy = numerator.StrategyCached
)
