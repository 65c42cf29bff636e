package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_tasks.sql"}, names)
}

// Tasks are owned by the token subject, which need not have a user row.
func TestMigrations_TasksHaveNoUserForeignKey(t *testing.T) {
	body, err := fs.ReadFile(Migrations, "00002_create_tasks.sql")
	require.NoError(t, err)
	assert.NotContains(t, string(body), "REFERENCES")
	assert.Contains(t, string(body), "user_id    UUID NOT NULL,")
}
