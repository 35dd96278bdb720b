package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	isLib "github.com/matryer/is"
)

func TestFileStoreRoundTrip(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	fs, err := NewFileStore(path)
	is.NoErr(err)

	_, err = fs.Get(ctx, "missing")
	is.True(errors.Is(err, ErrNotFound))

	is.NoErr(fs.Set(ctx, "anonCounter", []byte("123")))
	value, err := fs.Get(ctx, "anonCounter")
	is.NoErr(err)
	is.Equal(string(value), "123")

	is.NoErr(fs.Delete(ctx, "anonCounter"))
	_, err = fs.Get(ctx, "anonCounter")
	is.True(errors.Is(err, ErrNotFound))

	// Deleting an absent key is not an error.
	is.NoErr(fs.Delete(ctx, "anonCounter"))
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")

	fs, err := NewFileStore(path)
	is.NoErr(err)
	is.NoErr(fs.Set(ctx, "feedbacks", []byte(`[{"id":"f1"}]`)))

	reopened, err := NewFileStore(path)
	is.NoErr(err)
	value, err := reopened.Get(ctx, "feedbacks")
	is.NoErr(err)
	is.Equal(string(value), `[{"id":"f1"}]`)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data.json")
	is.NoErr(os.WriteFile(path, []byte("{{{"), 0o644))

	fs, err := NewFileStore(path)
	is.NoErr(err)
	_, err = fs.Get(ctx, "feedbacks")
	is.True(errors.Is(err, ErrNotFound))

	// The next write replaces the corrupt file.
	is.NoErr(fs.Set(ctx, "anonCounter", []byte("122")))
	reopened, err := NewFileStore(path)
	is.NoErr(err)
	value, err := reopened.Get(ctx, "anonCounter")
	is.NoErr(err)
	is.Equal(string(value), "122")
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	is := isLib.New(t)
	ctx := context.Background()
	ms := NewMemoryStore()

	original := []byte("122")
	is.NoErr(ms.Set(ctx, "anonCounter", original))
	original[0] = 'X'

	value, err := ms.Get(ctx, "anonCounter")
	is.NoErr(err)
	is.Equal(string(value), "122")

	// Mutating the returned slice must not affect the stored value.
	value[0] = 'Y'
	again, err := ms.Get(ctx, "anonCounter")
	is.NoErr(err)
	is.Equal(string(again), "122")
}
