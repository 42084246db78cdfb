package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyRepositoryChanges(t *testing.T) {
	changes := EmptyRepositoryChanges()

	// Slices are present but empty so JSON consumers see [] not null
	assert.NotNil(t, changes.TrackedChanges)
	assert.NotNil(t, changes.UntrackedChanges)
	assert.True(t, changes.IsEmpty())

	data, err := json.Marshal(changes)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
}

func TestRepositoryChanges_IsEmpty(t *testing.T) {
	assert.True(t, RepositoryChanges{}.IsEmpty())
	assert.False(t, RepositoryChanges{
		TrackedChanges: []TrackedChange{{Path: "a.go"}},
	}.IsEmpty())
	assert.False(t, RepositoryChanges{
		UntrackedChanges: []UntrackedChange{{Path: "b.go"}},
	}.IsEmpty())
}
