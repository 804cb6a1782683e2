package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tallerpro/internal/domain/filter"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name", "code", "mileage"}, func() any { return nil })
}

func TestApplyAdvancedFilters_Operators(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name     string
		item     filter.Item
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "Greater",
			item:     filter.Item{Field: "mileage", Operator: filter.Greater, Value: 10},
			wantSQL:  "SELECT id, name, code, mileage FROM test_table WHERE mileage > $1",
			wantArgs: []any{10},
		},
		{
			name:     "Less",
			item:     filter.Item{Field: "mileage", Operator: filter.Less, Value: 5},
			wantSQL:  "SELECT id, name, code, mileage FROM test_table WHERE mileage < $1",
			wantArgs: []any{5},
		},
		{
			name:     "Contains",
			item:     filter.Item{Field: "name", Operator: filter.Contains, Value: "per"},
			wantSQL:  "SELECT id, name, code, mileage FROM test_table WHERE name ILIKE $1",
			wantArgs: []any{"%per%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{tt.item})
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)

			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestApplyAdvancedFilters_RejectsUnknownColumn(t *testing.T) {
	repo := newTestRepo()

	_, err := repo.applyAdvancedFilters(repo.baseSelect(), []filter.Item{
		{Field: "name; DROP TABLE test_table", Operator: filter.Equal, Value: "x"},
	})

	assert.Error(t, err)
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	got, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "name ASC", got)

	got, err = repo.parseOrderBy("-created_at")
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", got)

	got, err = repo.parseOrderBy("+code")
	require.NoError(t, err)
	assert.Equal(t, "code ASC", got)

	_, err = repo.parseOrderBy("no_such_column")
	assert.Error(t, err)
}
