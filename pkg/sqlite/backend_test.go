package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

func TestNewBackendRoundTrip(t *testing.T) {
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	_, err := b.Insert(types.Document{types.FieldEmail: "a@b.co", types.FieldFirstName: "Al"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	reopened := NewBackend()
	require.NoError(t, reopened.Attach(cfg))
	t.Cleanup(func() { _ = reopened.Detach() })

	_, doc, err := reopened.FindOne(types.Where(types.FieldEmail, "a@b.co"))
	require.NoError(t, err)
	assert.Equal(t, "Al", doc[types.FieldFirstName])
}
