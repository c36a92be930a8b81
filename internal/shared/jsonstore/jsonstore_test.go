package jsonstore_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-leavehub/internal/shared/jsonstore"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestCollection_OpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	c, err := jsonstore.Open[record](path)

	assert.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestCollection_MutatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	c, err := jsonstore.Open[record](path)
	assert.NoError(t, err)

	err = c.Mutate(func(items []record) ([]record, error) {
		return append(items, record{ID: 1, Name: "first"}, record{ID: 2, Name: "second"}), nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	// File on disk is a complete indented JSON array.
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	var onDisk []record
	assert.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []record{{ID: 1, Name: "first"}, {ID: 2, Name: "second"}}, onDisk)
	assert.Contains(t, string(data), "\n  ")

	reloaded, err := jsonstore.Open[record](path)
	assert.NoError(t, err)
	assert.Equal(t, onDisk, reloaded.Snapshot())
}

func TestCollection_MutateErrorLeavesStateUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	c, err := jsonstore.Open[record](path)
	assert.NoError(t, err)
	assert.NoError(t, c.Mutate(func(items []record) ([]record, error) {
		return append(items, record{ID: 1, Name: "keep"}), nil
	}))

	boom := errors.New("boom")
	err = c.Mutate(func(items []record) ([]record, error) {
		items[0].Name = "mutated"
		return items, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []record{{ID: 1, Name: "keep"}}, c.Snapshot())
}

func TestCollection_SnapshotIsACopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	c, err := jsonstore.Open[record](path)
	assert.NoError(t, err)
	assert.NoError(t, c.Mutate(func(items []record) ([]record, error) {
		return append(items, record{ID: 1, Name: "original"}), nil
	}))

	snap := c.Snapshot()
	snap[0].Name = "changed"

	assert.Equal(t, "original", c.Snapshot()[0].Name)
}

func TestCollection_OpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := jsonstore.Open[record](path)

	assert.Error(t, err)
}
