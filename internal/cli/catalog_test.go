package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Lifecycle(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	stdout, _, err := executeCommand(t, "--db", db, "save", "testdata/defs/recent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "created recent (revision 1)\n", stdout)

	stdout, _, err = executeCommand(t, "--db", db, "save", "testdata/defs/recent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "unchanged recent (revision 1)\n", stdout)

	stdout, _, err = executeCommand(t, "--db", db, "show", "recent")
	require.NoError(t, err)
	assert.Equal(t, recentBody+"\n", stdout)

	stdout, _, err = executeCommand(t, "--db", db, "--indent", "2", "show", "recent")
	require.NoError(t, err)
	assert.Contains(t, stdout, "\n  \"size\": 10\n")

	stdout, _, err = executeCommand(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "recent")

	stdout, _, err = executeCommand(t, "--db", db, "delete", "recent")
	require.NoError(t, err)
	assert.Equal(t, "deleted recent\n", stdout)

	stdout, _, err = executeCommand(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Equal(t, "No saved queries.\n", stdout)
}

func TestCatalog_SaveWithNameReportsDuplicates(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	_, _, err := executeCommand(t, "--db", db, "save", "testdata/defs/recent.yaml")
	require.NoError(t, err)

	stdout, stderr, err := executeCommand(t, "--db", db, "--format", "json", "save", "testdata/defs/recent.yaml", "--name", "recent-copy")
	require.NoError(t, err)
	assert.Contains(t, stderr, "renders the same body")

	var resp struct {
		Status string     `json:"status"`
		Data   SaveResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "created", resp.Data.Outcome)
	assert.Equal(t, "recent-copy", resp.Data.Query.Name)
	assert.Equal(t, []string{"recent"}, resp.Data.Duplicates)
	assert.Equal(t, recentBody, resp.Data.Query.Body)
}

func TestCatalog_NotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	for _, args := range [][]string{{"show", "missing"}, {"delete", "missing"}} {
		t.Run(args[0], func(t *testing.T) {
			_, stderr, err := executeCommand(t, append([]string{"--db", db}, args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, stderr, "Error ["+ErrCodeQueryNotFound+"]")
		})
	}
}

func TestCatalog_ListJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")

	stdout, _, err := executeCommand(t, "--db", db, "--format", "json", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, stdout)
}

func TestCatalog_OpenFailure(t *testing.T) {
	_, stderr, err := executeCommand(t, "--db", "/nonexistent/dir/catalog.db", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error ["+ErrCodeCatalog+"]")
}

func TestShortFingerprint(t *testing.T) {
	assert.Equal(t, "0123456789ab", shortFingerprint("0123456789abcdef"))
	assert.Equal(t, "abc", shortFingerprint("abc"))
}
