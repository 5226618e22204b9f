package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jrsteele09/go-student-jobs/credentials/filestore"
	"github.com/jrsteele09/go-student-jobs/internal/config"
	"github.com/jrsteele09/go-student-jobs/internal/utils"
	"github.com/jrsteele09/go-student-jobs/stubserver"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t       *testing.T
	baseURL string
	dataDir string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dataDir := t.TempDir()
	t.Setenv("DATA_FOLDER", dataDir)
	t.Setenv("DEMO_EMAIL", "student@example.com")
	t.Setenv("DEMO_PASSWORD", "password123")
	t.Setenv("ENV", "TEST")

	srv, err := stubserver.New(config.New(), stubserver.InMemoryRepos())
	require.NoError(t, err)
	httpSrv := httptest.NewServer(srv)
	t.Cleanup(httpSrv.Close)

	return &cli{t: t, baseURL: httpSrv.URL, dataDir: dataDir}
}

func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--base-url", c.baseURL, "--env-file", filepath.Join(c.dataDir, "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (c *cli) credentials() *filestore.FileStore {
	return filestore.New(filepath.Join(c.dataDir, "credentials.json"))
}

func TestCLI_LoginAndBrowse(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("", "status")
	require.NoError(t, err)
	require.Contains(t, out, "logged out")

	out, err = c.run("student@example.com\npassword123\n", "login")
	require.NoError(t, err)
	require.Contains(t, out, "Logged in as student@example.com")
	require.True(t, c.credentials().IsAuthenticated())

	out, err = c.run("", "status")
	require.NoError(t, err)
	require.Contains(t, out, "Account:      student@example.com")

	out, err = c.run("", "jobs")
	require.NoError(t, err)
	require.Contains(t, out, "Graduate Software Engineer")

	_, err = c.run("", "save", "1")
	require.NoError(t, err)
	out, err = c.run("", "saved", "-o", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"external_id": "seed-1"`)

	out, err = c.run("", "apply", "1", "--notes", "sent CV")
	require.NoError(t, err)
	require.Contains(t, out, "applied")

	out, err = c.run("", "app-status", "1", "interviewing")
	require.NoError(t, err)
	require.Contains(t, out, "interviewing")

	_, err = c.run("", "app-status", "1", "hired")
	require.Error(t, err, "unknown statuses are rejected before sending")

	out, err = c.run("", "profile", "update", "--course", "Law", "--skills", "1,3")
	require.NoError(t, err)
	require.Contains(t, out, "Law")
	require.Contains(t, out, "Communication, Excel")

	_, err = c.run("", "logout")
	require.NoError(t, err)
	require.False(t, c.credentials().IsAuthenticated())

	_, err = c.run("", "saved")
	require.EqualError(t, err, "not logged in, run 'jobportal login' first")
}

func TestCLI_BadLogin(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "login", "-e", "student@example.com", "-p", "wrong-password")
	require.EqualError(t, err, "No active account found with the given credentials")
	require.False(t, c.credentials().IsAuthenticated())
}

func TestCLI_SessionExpired(t *testing.T) {
	c := newCLI(t)
	require.NoError(t, c.credentials().SetTokens("stale-access", utils.Ptr("stale-refresh")))

	_, err := c.run("", "profile")
	require.EqualError(t, err, msgSessionExpired)

	_, statErr := os.Stat(filepath.Join(c.dataDir, "credentials.json"))
	require.True(t, os.IsNotExist(statErr), "tokens are cleared")
}
