package workorder

import "tallerpro/pkg/numerator"

const (
	// NumberPrefix for work order numbers (OT-2026-00001).
	NumberPrefix = "OT"

	// NumeratorStrategy: work orders are internal documents, gaps after a
	// restart are acceptable, so the cached strategy is used.
	NumeratorStrategy = numerator.StrategyCached
)
