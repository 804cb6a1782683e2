package stocktake

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/appctx"
	"tallerpro/internal/core/entity"
	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
	"tallerpro/internal/domain/registers/stock"
)

type stubTxManager struct{}

func (stubTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// stubRepo embeds the interface so only the methods under test exist.
type stubRepo struct {
	Repository
	doc        *Stocktake
	savedLines []Line
	updated    bool
}

func (r *stubRepo) GetForUpdate(_ context.Context, _ id.ID) (*Stocktake, error) {
	return r.doc, nil
}

func (r *stubRepo) GetLines(_ context.Context, _ id.ID) ([]Line, error) {
	return r.doc.Lines, nil
}

func (r *stubRepo) Update(_ context.Context, _ *Stocktake) error {
	r.updated = true
	return nil
}

func (r *stubRepo) SaveLines(_ context.Context, _ id.ID, lines []Line) error {
	r.savedLines = lines
	return nil
}

// stubStockRepo serves fixed balances for the sheet preparation.
type stubStockRepo struct {
	stock.Repository
	balances []entity.StockBalance
}

func (r *stubStockRepo) GetBalancesByLocation(_ context.Context, _ id.ID, _ stock.BalanceFilter) ([]entity.StockBalance, error) {
	return r.balances, nil
}

func TestPrepareSheet_FillsLinesFromBalances(t *testing.T) {
	st := testCount()
	firstPart := id.New()
	secondPart := id.New()

	repo := &stubRepo{doc: st}
	stockService := stock.NewService(&stubStockRepo{balances: []entity.StockBalance{
		{LocationID: st.LocationID, ProductID: firstPart, Quantity: types.NewQuantityFromFloat64(8)},
		{LocationID: st.LocationID, ProductID: secondPart, Quantity: types.NewQuantityFromFloat64(2.5)},
	}})

	svc := NewService(repo, stockService, nil, nil, stubTxManager{})

	doc, err := svc.PrepareSheet(context.Background(), st.ID)
	require.NoError(t, err)

	require.Len(t, doc.Lines, 2)
	assert.Equal(t, firstPart, doc.Lines[0].ProductID)
	assert.Equal(t, types.NewQuantityFromFloat64(8), doc.Lines[0].BookQty)
	assert.Equal(t, secondPart, doc.Lines[1].ProductID)
	assert.Equal(t, types.NewQuantityFromFloat64(2.5), doc.Lines[1].BookQty)
	assert.Equal(t, types.NewQuantityFromFloat64(10.5), doc.TotalBookQty)

	assert.True(t, repo.updated)
	assert.Len(t, repo.savedLines, 2)
}

func TestPrepareSheet_OnlyInDraft(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(1), types.Zero())
	require.NoError(t, st.Start())

	svc := NewService(&stubRepo{doc: st}, stock.NewService(&stubStockRepo{}), nil, nil, stubTxManager{})

	_, err := svc.PrepareSheet(context.Background(), st.ID)
	require.Error(t, err)
}

func TestRecordCount_StampsActingUser(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(10), types.Zero())
	require.NoError(t, st.Start())

	repo := &stubRepo{doc: st}
	svc := NewService(repo, nil, nil, nil, stubTxManager{})

	ctx := appctx.WithRequest(context.Background(), appctx.RequestContext{
		UserID: "user-7",
		Now:    countTime,
	})

	doc, err := svc.RecordCount(ctx, st.ID, 1, types.NewQuantityFromFloat64(9))
	require.NoError(t, err)

	line := doc.Lines[0]
	assert.True(t, line.Counted)
	assert.Equal(t, "user-7", line.CountedBy)
	require.NotNil(t, line.CountedAt)
	assert.Equal(t, countTime, *line.CountedAt)
	assert.Equal(t, types.NewQuantityFromFloat64(-1), line.Deviation)
	assert.True(t, repo.updated)
}

func TestRecordCount_RequiresInProgress(t *testing.T) {
	st := testCount()
	st.AddLine(id.New(), types.NewQuantityFromFloat64(10), types.Zero())

	svc := NewService(&stubRepo{doc: st}, nil, nil, nil, stubTxManager{})

	_, err := svc.RecordCount(context.Background(), st.ID, 1, types.NewQuantityFromFloat64(9))
	require.Error(t, err, "still in draft")
}
