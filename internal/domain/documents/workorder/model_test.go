package workorder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/id"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func newTestOrder() *WorkOrder {
	return NewWorkOrder(id.New(), id.New(), id.New(), id.New(), "user-1", t0)
}

func TestNewWorkOrder_StartsAtReception(t *testing.T) {
	wo := newTestOrder()

	assert.Equal(t, StageRecepcion, wo.Stage())
	assert.Equal(t, StatusProgramado, wo.Status)
	require.Len(t, wo.History, 1)
	assert.Equal(t, StageRecepcion, wo.History[0].Stage)
}

func TestAdvance_FullPipeline(t *testing.T) {
	wo := newTestOrder()

	// Walk the whole canonical pipeline; each step must land on the next
	// stage and append exactly one history entry.
	for i := 1; i < len(canonicalOrder); i++ {
		now := t0.Add(time.Duration(i) * time.Hour)
		err := wo.Advance(canonicalOrder[i-1], "user-1", "", now)
		require.NoError(t, err, "advance from %s", canonicalOrder[i-1])

		assert.Equal(t, canonicalOrder[i], wo.Stage())
		assert.Len(t, wo.History, i+1)

		// Stage sequence strictly increasing in canonical order
		assert.Greater(t, stageIndex(wo.Stage()), stageIndex(canonicalOrder[i-1]))
	}

	assert.Equal(t, StageEntregado, wo.Stage())
	assert.NoError(t, wo.Validate(context.Background()))

	// Terminal: no further advance
	err := wo.Advance(StageEntregado, "user-1", "", t0.Add(24*time.Hour))
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidTransition(err))
}

func TestAdvance_StaleStageFailsUnchanged(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))
	require.Equal(t, StageDiagnostico, wo.Stage())

	historyBefore := len(wo.History)
	versionBefore := wo.Version

	// Every wrong expected stage must fail and leave the order untouched.
	for _, wrong := range []Stage{
		StageRecepcion,
		StagePendienteCotizacion,
		StageEnReparacion,
		StageEntregado,
		StageCancelado,
	} {
		err := wo.Advance(wrong, "user-1", "", t0.Add(2*time.Hour))
		require.Error(t, err, "expected stale-stage error for %s", wrong)
		assert.True(t, apperror.IsInvalidTransition(err))

		assert.Equal(t, StageDiagnostico, wo.Stage())
		assert.Len(t, wo.History, historyBefore)
		assert.Equal(t, versionBefore, wo.Version)
	}
}

func TestRetreat(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))
	require.NoError(t, wo.Advance(StageDiagnostico, "user-1", "", t0.Add(2*time.Hour)))
	require.Equal(t, StagePendienteCotizacion, wo.Stage())

	err := wo.Retreat(StagePendienteCotizacion, "user-1", "volver a revisar", t0.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StageDiagnostico, wo.Stage())
	assert.Len(t, wo.History, 4)

	// Cannot retreat past the first stage
	require.NoError(t, wo.Retreat(StageDiagnostico, "user-1", "", t0.Add(4*time.Hour)))
	err = wo.Retreat(StageRecepcion, "user-1", "", t0.Add(5*time.Hour))
	require.Error(t, err)
}

func TestRetreat_InvoicedOrderRejected(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))
	require.NoError(t, wo.MarkInvoiced())

	err := wo.Retreat(StageDiagnostico, "user-1", "", t0.Add(2*time.Hour))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyInvoiced, appErr.Code)
}

func TestRequireAttention_BranchFromDiagnostico(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))

	err := wo.RequireAttention(StageDiagnostico, "user-1", "motor con daño mayor", t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StageAtencionRequerida, wo.Stage())

	// Advancing from the branch continues to Esperando Aprobación
	require.NoError(t, wo.Advance(StageAtencionRequerida, "user-1", "", t0.Add(3*time.Hour)))
	assert.Equal(t, StageEsperandoAprobacion, wo.Stage())
}

func TestRequireAttention_OnlyFromDiagnostico(t *testing.T) {
	wo := newTestOrder()

	err := wo.RequireAttention(StageRecepcion, "user-1", "", t0.Add(time.Hour))
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidTransition(err))
}

func TestCancel_TerminatesOrder(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))

	err := wo.Cancel("cliente desistió", "user-1", t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StageCancelado, wo.Stage())
	assert.Equal(t, StatusCancelado, wo.Status)
	assert.Equal(t, "cliente desistió", wo.CancelReason)
	assert.NoError(t, wo.Validate(context.Background()))

	// Once cancelled, every transition must fail.
	assert.Error(t, wo.Advance(StageCancelado, "user-1", "", t0.Add(3*time.Hour)))
	assert.Error(t, wo.Advance(StageDiagnostico, "user-1", "", t0.Add(3*time.Hour)))
	assert.Error(t, wo.Retreat(StageCancelado, "user-1", "", t0.Add(3*time.Hour)))
	assert.Error(t, wo.Cancel("de nuevo", "user-1", t0.Add(3*time.Hour)))
	assert.Error(t, wo.AssignTechnician(id.New()))
}

func TestCancel_InvoicedOrderRejected(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.MarkInvoiced())

	err := wo.Cancel("tarde", "user-1", t0.Add(time.Hour))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAlreadyInvoiced, appErr.Code)
}

func TestAssignTechnician_DoesNotChangeStage(t *testing.T) {
	wo := newTestOrder()
	techID := id.New()

	require.NoError(t, wo.AssignTechnician(techID))
	require.NotNil(t, wo.TechnicianID)
	assert.Equal(t, techID, *wo.TechnicianID)
	assert.Equal(t, StageRecepcion, wo.Stage())
	assert.Len(t, wo.History, 1)
}

func TestLinkQuote_Idempotent(t *testing.T) {
	wo := newTestOrder()
	quoteID := id.New()

	wo.LinkQuote(quoteID)
	wo.LinkQuote(quoteID)

	assert.Len(t, wo.LinkedQuoteIDs, 1)
}

func TestValidate_HistoryChronology(t *testing.T) {
	wo := newTestOrder()
	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))

	// Corrupt the history order
	wo.History[1].Date = t0.Add(-time.Hour)

	err := wo.Validate(context.Background())
	require.Error(t, err)
}

func TestStatusFollowsStage(t *testing.T) {
	wo := newTestOrder()

	require.NoError(t, wo.Advance(StageRecepcion, "user-1", "", t0.Add(time.Hour)))
	assert.Equal(t, StatusEnProceso, wo.Status)

	wo.SetWaitingParts(true)
	assert.Equal(t, StatusEsperaRepuestos, wo.Status)
	wo.SetWaitingParts(false)
	assert.Equal(t, StatusEnProceso, wo.Status)
}
