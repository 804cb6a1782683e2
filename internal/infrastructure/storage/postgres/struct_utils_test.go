package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tallerpro/internal/domain/catalogs/client"
	"tallerpro/internal/domain/documents/workorder"
)

func TestExtractDBColumns_WalksEmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[client.Client]()

	// Base catalog columns come from the embedded entity.Catalog
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "code")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "version")
	// Entity-specific columns
	assert.Contains(t, cols, "document_type")
	assert.Contains(t, cols, "document_number")
}

func TestExtractDBColumns_SkipsIgnoredFields(t *testing.T) {
	cols := ExtractDBColumns[workorder.WorkOrder]()

	// History lives in its own table, tagged db:"-"
	assert.NotContains(t, cols, "-")
	for _, c := range cols {
		assert.NotEmpty(t, c)
	}
}

func TestStructToMap(t *testing.T) {
	c := client.NewClient("CLI-00001", "Juan Pérez", client.DocCedula, "1020304050")

	m := StructToMap(c)

	assert.Equal(t, c.ID, m["id"])
	assert.Equal(t, "CLI-00001", m["code"])
	assert.Equal(t, "Juan Pérez", m["name"])
	assert.Equal(t, "1020304050", m["document_number"])
	assert.NotContains(t, m, "-")
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("x"))
}
