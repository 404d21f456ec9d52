// Package storetest provides a conformance suite for types.DocumentStore
// implementations.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) types.DocumentStore

func doc(email, first string) types.Document {
	return types.Contact{Email: email, FirstName: first}.Document()
}

// Run exercises the DocumentStore contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name  string
		check func(t *testing.T, s types.DocumentStore)
	}{
		{
			name: "empty store returns empty slice",
			check: func(t *testing.T, s types.DocumentStore) {
				all, err := s.All()
				require.NoError(t, err)
				assert.NotNil(t, all)
				assert.Empty(t, all)
			},
		},
		{
			name: "insert returns distinct non-empty ids",
			check: func(t *testing.T, s types.DocumentStore) {
				id1, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				id2, err := s.Insert(doc("c@d.co", "Cy"))
				require.NoError(t, err)
				assert.NotEmpty(t, id1)
				assert.NotEqual(t, id1, id2)
			},
		},
		{
			name: "all preserves insertion order",
			check: func(t *testing.T, s types.DocumentStore) {
				emails := []string{"z@b.co", "a@b.co", "m@b.co"}
				for _, e := range emails {
					_, err := s.Insert(doc(e, "Al"))
					require.NoError(t, err)
				}
				all, err := s.All()
				require.NoError(t, err)
				require.Len(t, all, 3)
				for i, e := range emails {
					assert.Equal(t, e, all[i][types.FieldEmail])
				}
			},
		},
		{
			name: "all returns a snapshot",
			check: func(t *testing.T, s types.DocumentStore) {
				_, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				all, err := s.All()
				require.NoError(t, err)
				all[0][types.FieldFirstName] = "Mutated"

				again, err := s.All()
				require.NoError(t, err)
				assert.Equal(t, "Al", again[0][types.FieldFirstName])
			},
		},
		{
			name: "find one by email",
			check: func(t *testing.T, s types.DocumentStore) {
				_, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				want, err := s.Insert(doc("c@d.co", "Cy"))
				require.NoError(t, err)

				id, got, err := s.FindOne(types.Where(types.FieldEmail, "c@d.co"))
				require.NoError(t, err)
				assert.Equal(t, want, id)
				assert.Equal(t, doc("c@d.co", "Cy"), got)
			},
		},
		{
			name: "find one without match returns ErrNotFound",
			check: func(t *testing.T, s types.DocumentStore) {
				_, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				_, _, err = s.FindOne(types.Where(types.FieldEmail, "A@B.CO"))
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "update merges patch",
			check: func(t *testing.T, s types.DocumentStore) {
				id, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				require.NoError(t, s.Update(id, types.Document{types.FieldLastName: "Gore"}))

				_, got, err := s.FindOne(types.Where(types.FieldEmail, "a@b.co"))
				require.NoError(t, err)
				assert.Equal(t, "Al", got[types.FieldFirstName])
				assert.Equal(t, "Gore", got[types.FieldLastName])
				assert.Len(t, got, 5)
			},
		},
		{
			name: "update can change the key field",
			check: func(t *testing.T, s types.DocumentStore) {
				id, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				require.NoError(t, s.Update(id, types.Document{types.FieldEmail: "new@b.co"}))

				_, _, err = s.FindOne(types.Where(types.FieldEmail, "a@b.co"))
				assert.ErrorIs(t, err, types.ErrNotFound)
				gotID, _, err := s.FindOne(types.Where(types.FieldEmail, "new@b.co"))
				require.NoError(t, err)
				assert.Equal(t, id, gotID)
			},
		},
		{
			name: "empty patch leaves document unchanged",
			check: func(t *testing.T, s types.DocumentStore) {
				id, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				require.NoError(t, s.Update(id, types.Document{}))

				all, err := s.All()
				require.NoError(t, err)
				assert.Equal(t, []types.Document{doc("a@b.co", "Al")}, all)
			},
		},
		{
			name: "update unknown id returns ErrNotFound",
			check: func(t *testing.T, s types.DocumentStore) {
				err := s.Update("no-such-id", types.Document{types.FieldLastName: "X"})
				assert.ErrorIs(t, err, types.ErrNotFound)
			},
		},
		{
			name: "remove deletes exactly one document",
			check: func(t *testing.T, s types.DocumentStore) {
				_, err := s.Insert(doc("a@b.co", "Al"))
				require.NoError(t, err)
				id, err := s.Insert(doc("c@d.co", "Cy"))
				require.NoError(t, err)
				_, err = s.Insert(doc("e@f.co", "Ed"))
				require.NoError(t, err)

				require.NoError(t, s.Remove(id))
				all, err := s.All()
				require.NoError(t, err)
				assert.Equal(t, []types.Document{doc("a@b.co", "Al"), doc("e@f.co", "Ed")}, all)
			},
		},
		{
			name: "remove unknown id returns ErrNotFound",
			check: func(t *testing.T, s types.DocumentStore) {
				assert.ErrorIs(t, s.Remove("no-such-id"), types.ErrNotFound)
			},
		},
		{
			name: "empty id is invalid",
			check: func(t *testing.T, s types.DocumentStore) {
				assert.ErrorIs(t, s.Update("", types.Document{}), types.ErrInvalidID)
				assert.ErrorIs(t, s.Remove(""), types.ErrInvalidID)
			},
		},
		{
			name: "inserted document is copied",
			check: func(t *testing.T, s types.DocumentStore) {
				d := doc("a@b.co", "Al")
				_, err := s.Insert(d)
				require.NoError(t, err)
				d[types.FieldFirstName] = "Mutated"

				_, got, err := s.FindOne(types.Where(types.FieldEmail, "a@b.co"))
				require.NoError(t, err)
				assert.Equal(t, "Al", got[types.FieldFirstName])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, newStore(t))
		})
	}
}
