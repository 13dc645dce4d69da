package draft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-golang/internal/storage"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "dealDraft.json"))

	rec := storage.DealRecord{
		OwnerID: "user-1",
		Name:    "Acme Renewal",
		Amount:  750,
		Products: []storage.DealProduct{
			{ID: "p1", Name: "Widget", UnitPrice: 50, Quantity: 3, TotalPrice: 150},
		},
	}

	require.NoError(t, store.Save(rec))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec, *loaded)
}

func TestFileStore_EmptySlot(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "dealDraft.json"))

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded, "missing file reads as empty slot")
}

func TestFileStore_CorruptedSlotReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dealDraft.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "tru`), 0644))

	store := NewFileStore(path)

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "corrupted slot is discarded on read")
}

func TestFileStore_SingleSlot(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "dealDraft.json"))

	require.NoError(t, store.Save(storage.DealRecord{Name: "First"}))
	require.NoError(t, store.Save(storage.DealRecord{Name: "Second"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Second", loaded.Name, "a newer draft overwrites the previous one")
}

func TestFileStore_Clear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "dealDraft.json"))

	require.NoError(t, store.Save(storage.DealRecord{Name: "Acme Renewal"}))
	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, store.Clear(), "clearing an empty slot is not an error")
}
