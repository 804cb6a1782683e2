package stocktake

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/apperror"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

var countTime = time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC)

func testCount() *Stocktake {
	st := NewStocktake(id.New())
	st.Date = countTime
	return st
}

func TestNewStocktake_StartsDraft(t *testing.T) {
	st := testCount()

	assert.Equal(t, StatusBorrador, st.Status)
	assert.False(t, st.Posted)
	assert.Empty(t, st.Lines)
}

func TestRecordCount_ComputesDeviation(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(10), types.MustMoney("25000"))
	st.AddLine(id.New(), types.NewQuantityFromFloat64(5), types.MustMoney("80000"))
	require.NoError(t, st.Start())

	// 12 counted vs 10 on the books: surplus of 2
	require.NoError(t, st.RecordCount(1, types.NewQuantityFromFloat64(12), "user-1", countTime))
	// 3 counted vs 5: shortage of 2
	require.NoError(t, st.RecordCount(2, types.NewQuantityFromFloat64(3), "user-1", countTime))

	assert.Equal(t, types.NewQuantityFromFloat64(2), st.Lines[0].Deviation)
	assert.True(t, st.Lines[0].DeviationValue.Equal(types.MustMoney("50000")), "surplus value = %s", st.Lines[0].DeviationValue)
	assert.Equal(t, types.NewQuantityFromFloat64(-2), st.Lines[1].Deviation)
	assert.True(t, st.Lines[1].DeviationValue.Equal(types.MustMoney("-160000")), "shortage value = %s", st.Lines[1].DeviationValue)

	assert.Equal(t, types.NewQuantityFromFloat64(15), st.TotalBookQty)
	assert.Equal(t, types.NewQuantityFromFloat64(15), st.TotalCountedQty)
	assert.Equal(t, types.NewQuantityFromFloat64(2), st.TotalSurplus)
	assert.Equal(t, types.NewQuantityFromFloat64(2), st.TotalShortage)
}

func TestRecordCount_RejectsBadInput(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(10), types.Zero())

	require.Error(t, st.RecordCount(2, types.NewQuantityFromFloat64(1), "user-1", countTime), "line out of range")
	require.Error(t, st.RecordCount(1, types.NewQuantityFromFloat64(-1), "user-1", countTime), "negative count")
}

func TestStart_RequiresDraftWithLines(t *testing.T) {
	st := testCount()
	require.Error(t, st.Start(), "empty sheet")

	st.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.Zero())
	require.NoError(t, st.Start())
	require.Error(t, st.Start(), "already started")
}

func TestComplete_RequiresAllLinesCounted(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(10), types.Zero())
	st.AddLine(id.New(), types.NewQuantityFromFloat64(5), types.Zero())
	require.NoError(t, st.Start())

	require.NoError(t, st.RecordCount(1, types.NewQuantityFromFloat64(10), "user-1", countTime))

	err := st.Complete(countTime)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "LINE_NOT_COUNTED", appErr.Code)

	require.NoError(t, st.RecordCount(2, types.NewQuantityFromFloat64(5), "user-1", countTime))
	require.NoError(t, st.Complete(countTime))
	assert.Equal(t, StatusCompletado, st.Status)
	require.NotNil(t, st.CompletedAt)
}

func TestCancel_CompletedCountFails(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.Zero())
	require.NoError(t, st.Start())
	require.NoError(t, st.RecordCount(1, types.NewQuantityFromFloat64(1), "user-1", countTime))
	require.NoError(t, st.Complete(countTime))

	require.Error(t, st.Cancel())
}

func TestCanPost_RequiresCompleted(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.Zero())
	require.NoError(t, st.Start())

	err := st.CanPost(context.Background())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "STOCKTAKE_NOT_COMPLETED", appErr.Code)
}

func TestValidate_DuplicateProduct(t *testing.T) {
	st := testCount()
	productID := id.New()
	st.AddLine(productID, types.NewQuantityFromFloat64(1), types.Zero())
	st.AddLine(productID, types.NewQuantityFromFloat64(2), types.Zero())

	require.Error(t, st.Validate(context.Background()))
}

func TestGenerateMovements_AdjustsDeviationsOnly(t *testing.T) {
	st := testCount()
	surplusPart := id.New()
	exactPart := id.New()
	shortagePart := id.New()
	st.AddLine(surplusPart, types.NewQuantityFromFloat64(10), types.Zero())
	st.AddLine(exactPart, types.NewQuantityFromFloat64(4), types.Zero())
	st.AddLine(shortagePart, types.NewQuantityFromFloat64(6), types.Zero())
	require.NoError(t, st.Start())

	require.NoError(t, st.RecordCount(1, types.NewQuantityFromFloat64(13), "user-1", countTime))
	require.NoError(t, st.RecordCount(2, types.NewQuantityFromFloat64(4), "user-1", countTime))
	require.NoError(t, st.RecordCount(3, types.NewQuantityFromFloat64(1), "user-1", countTime))
	require.NoError(t, st.Complete(countTime))

	set, err := st.GenerateMovements(context.Background())
	require.NoError(t, err)
	require.Len(t, set.Stock, 2, "exact count produces no movement")

	surplus := set.Stock[0]
	assert.Equal(t, entity.RecordTypeReceipt, surplus.RecordType)
	assert.Equal(t, surplusPart, surplus.ProductID)
	assert.Equal(t, types.NewQuantityFromFloat64(3), surplus.Quantity)
	assert.Equal(t, st.LocationID, surplus.LocationID)
	assert.Equal(t, "Stocktake", surplus.RecorderType)
	assert.Equal(t, st.PostedVersion+1, surplus.RecorderVersion)

	shortage := set.Stock[1]
	assert.Equal(t, entity.RecordTypeExpense, shortage.RecordType)
	assert.Equal(t, shortagePart, shortage.ProductID)
	assert.Equal(t, types.NewQuantityFromFloat64(5), shortage.Quantity)
}
