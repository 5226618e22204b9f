package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-student-jobs/credentials/filestore"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Durable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")

	first := filestore.New(path)
	require.NoError(t, first.SetTokens("a1", utils.Ptr("r1")))

	// a second instance (another process, a "page reload") sees the same state
	second := filestore.New(path)
	require.Equal(t, "a1", utils.Value(second.GetAccessToken()))
	require.Equal(t, "r1", utils.Value(second.GetRefreshToken()))

	require.NoError(t, second.ClearTokens())
	require.False(t, first.IsAuthenticated())

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileStore_FileLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := filestore.New(path)
	require.NoError(t, s.SetTokens("a1", utils.Ptr("r1")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"access_token":"a1","refresh_token":"r1"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := filestore.New(path)
	require.Nil(t, s.GetAccessToken())
	require.False(t, s.IsAuthenticated())

	// a new login replaces the unreadable file
	require.NoError(t, s.SetTokens("a1", nil))
	require.Equal(t, "a1", utils.Value(s.GetAccessToken()))
	require.Nil(t, s.GetRefreshToken())
}
