package filestore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/docchat/internal/config"
)

type nopSeekCloser struct {
	*bytes.Reader
}

func (nopSeekCloser) Close() error { return nil }

func TestLocalStoreSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": dir},
	})
	require.NoError(t, err)
	require.Equal(t, "local", store.Type())

	payload := []byte("hello file store")
	err = store.Save(context.Background(), "doc.txt", nopSeekCloser{bytes.NewReader(payload)}, int64(len(payload)))
	require.NoError(t, err)

	rc, err := store.Open(context.Background(), "doc.txt")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, payload, data)
}

func TestLocalStoreRejectsBadKeys(t *testing.T) {
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "a/b.txt", `a\b.txt`} {
		err := store.Save(context.Background(), key, nopSeekCloser{bytes.NewReader(nil)}, 0)
		require.Error(t, err, "key %q", key)
		_, err = store.Open(context.Background(), key)
		require.Error(t, err, "key %q", key)
	}
}

func TestLocalStoreOpenMissingKey(t *testing.T) {
	store, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": t.TempDir()},
	})
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "missing.txt")
	require.Error(t, err)
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(config.FileStoreConfig{Type: "ftp"})
	require.Error(t, err)

	_, err = New(config.FileStoreConfig{})
	require.Error(t, err)
}

func TestNew_LocalRequiresDir(t *testing.T) {
	_, err := New(config.FileStoreConfig{
		Type: "local",
		Data: map[string]interface{}{},
	})
	require.Error(t, err)
}
