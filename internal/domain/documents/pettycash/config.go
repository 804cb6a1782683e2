package pettycash

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for petty cash numbers (CM-2026-00001).
	NumberPrefix = "CM"

	NumeratorStrategy = numerator.StrategyCached
)
