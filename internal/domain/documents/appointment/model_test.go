package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
)

func testAppointment() *Appointment {
	at := time.Date(2026, 7, 15, 10, 0, 0, 0, time.UTC)
	a := NewAppointment(id.New(), id.New(), id.New(), at)
	a.Date = at.AddDate(0, 0, -3)
	return a
}

func TestStatusFlow(t *testing.T) {
	a := testAppointment()
	require.NoError(t, a.Validate(context.Background()))
	assert.Equal(t, StatusProgramada, a.Status)

	require.NoError(t, a.Confirm())
	assert.Equal(t, StatusConfirmada, a.Status)

	workOrderID := id.New()
	require.NoError(t, a.Fulfill(&workOrderID))
	assert.Equal(t, StatusCumplida, a.Status)
	require.NotNil(t, a.WorkOrderID)

	// Terminal
	assert.Error(t, a.Confirm())
	assert.Error(t, a.Cancel())
	assert.Error(t, a.Fulfill(nil))
}

func TestCancel(t *testing.T) {
	a := testAppointment()
	require.NoError(t, a.Cancel())
	assert.Equal(t, StatusCancelada, a.Status)
	assert.Error(t, a.Confirm())
}
