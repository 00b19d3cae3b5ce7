package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"netqa-go/pkg/testhelpers"
)

func tableDDL(t *testing.T, db *gorm.DB, table string) string {
	t.Helper()
	var ddl string
	require.NoError(t, db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&ddl).Error)
	require.NotEmpty(t, ddl, "table %s missing", table)
	return ddl
}

func TestAutoMigrate_ForeignKeysPointAtParents(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	tests := []struct {
		table      string
		references []string
	}{
		{"questions", []string{"REFERENCES `users`"}},
		{"solutions", []string{"REFERENCES `questions`"}},
		{"feedbacks", []string{"REFERENCES `users`", "REFERENCES `solutions`"}},
		{"knowledge", []string{"REFERENCES `protocols`"}},
		{"solution_references_knowledge", []string{"REFERENCES `solutions`", "REFERENCES `knowledge`"}},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			ddl := tableDDL(t, db, tt.table)
			for _, ref := range tt.references {
				assert.Contains(t, ddl, ref)
			}
		})
	}

	// 父表自身不应引用子表
	assert.NotContains(t, tableDDL(t, db, "users"), "REFERENCES")
	assert.NotContains(t, tableDDL(t, db, "protocols"), "REFERENCES")
}
