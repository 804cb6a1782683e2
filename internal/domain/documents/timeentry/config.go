package timeentry

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for time entry numbers (TRN-2026-00001).
	NumberPrefix = "TRN"

	NumeratorStrategy = numerator.StrategyCached
)
