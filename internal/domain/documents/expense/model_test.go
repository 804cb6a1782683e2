package expense

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tallerpro/internal/core/id"
	"tallerpro/internal/core/types"
)

func TestValidate(t *testing.T) {
	doc := NewOperatingExpense(id.New(), id.New(), CategoryArriendo, types.MustMoney("2500000"))
	require.NoError(t, doc.Validate(context.Background()))

	doc.Category = "marketing"
	require.Error(t, doc.Validate(context.Background()), "unknown category")

	doc.Category = CategoryServicios
	doc.Amount = types.MustMoney("-1")
	require.Error(t, doc.Validate(context.Background()), "negative amount")
}
