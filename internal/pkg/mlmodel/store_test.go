package mlmodel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduinsight/eduinsight/internal/pkg/apperrors"
)

func TestStoreLoadMissingArtifact(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "rf_model.json"))

	assert.False(t, store.Exists())

	_, err := store.Load()
	assert.ErrorIs(t, err, apperrors.ErrModelNotFound)
}

func TestStoreSaveAndLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "models", "rf_model.json"))

	require.NoError(t, store.Save(twoLeafArtifact()))
	assert.True(t, store.Exists())

	forest, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "test", forest.Artifact().Version)

	// Cached instance is reused while the file is unchanged.
	again, err := store.Load()
	require.NoError(t, err)
	assert.Same(t, forest, again)
}

func TestStoreReloadsAfterRetrain(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "rf_model.json"))

	require.NoError(t, store.Save(twoLeafArtifact()))
	first, err := store.Load()
	require.NoError(t, err)

	retrained := twoLeafArtifact()
	retrained.Version = "retrained"
	require.NoError(t, store.Save(retrained))

	second, err := store.Load()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "retrained", second.Artifact().Version)
}

func TestStoreLoadMalformedArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rf_model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()
	assert.ErrorIs(t, err, apperrors.ErrModelMalformed)
}

func TestStoreSaveRejectsInvalidArtifact(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "rf_model.json"))

	artifact := twoLeafArtifact()
	artifact.Trees = nil
	assert.Error(t, store.Save(artifact))
	assert.False(t, store.Exists())
}
