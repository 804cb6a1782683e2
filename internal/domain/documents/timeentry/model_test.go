package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
)

func TestShiftLifecycle(t *testing.T) {
	clockIn := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	e := NewTimeEntry(id.New(), id.New(), clockIn)
	e.Date = clockIn

	require.True(t, e.IsOpen())
	assert.True(t, e.Hours().IsZero())
	require.NoError(t, e.Validate(context.Background()))

	// 8.5 hour shift
	require.NoError(t, e.Close(clockIn.Add(8*time.Hour+30*time.Minute)))
	require.False(t, e.IsOpen())
	assert.True(t, e.Hours().Equal(decimal.RequireFromString("8.5")), "hours = %s", e.Hours())

	// Double close rejected
	require.Error(t, e.Close(clockIn.Add(9*time.Hour)))
}

func TestClose_RejectsBackwardsClock(t *testing.T) {
	clockIn := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)
	e := NewTimeEntry(id.New(), id.New(), clockIn)

	require.Error(t, e.Close(clockIn))
	require.Error(t, e.Close(clockIn.Add(-time.Minute)))
	require.True(t, e.IsOpen())
}
