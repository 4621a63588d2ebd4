package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "02_term_all_fields.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "term_all_fields", scenario.Name)
	assert.NotEmpty(t, scenario.Description)
	assert.Nil(t, scenario.Request)
	assert.Nil(t, scenario.Skip)

	term, ok := scenario.Query["term"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "test", term["field"])
	assert.Equal(t, 123, term["value"])
}

func TestLoadScenario_SkipFlag(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "03_bool_skipped_filter.yaml"))
	require.NoError(t, err)
	require.NotNil(t, scenario.Skip)
	assert.True(t, *scenario.Skip)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: typo
description: misspelled expect key
query: {match_all: {}}
expected: '{"match_all":{}}'
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing name",
			content: "description: d\nquery: {match_all: {}}\nexpect: '{}'\n",
			errMsg:  "name is required",
		},
		{
			name:    "name with separator",
			content: "name: a/b\ndescription: d\nquery: {match_all: {}}\nexpect: '{}'\n",
			errMsg:  "must not contain path separators",
		},
		{
			name:    "missing description",
			content: "name: n\nquery: {match_all: {}}\nexpect: '{}'\n",
			errMsg:  "description is required",
		},
		{
			name:    "neither query nor request",
			content: "name: n\ndescription: d\nexpect: '{}'\n",
			errMsg:  "one of query or request is required",
		},
		{
			name:    "both query and request",
			content: "name: n\ndescription: d\nquery: {match_all: {}}\nrequest: {size: 1}\nexpect: '{}'\n",
			errMsg:  "mutually exclusive",
		},
		{
			name:    "missing expect",
			content: "name: n\ndescription: d\nquery: {match_all: {}}\n",
			errMsg:  "expect is required",
		},
		{
			name:    "expect not json",
			content: "name: n\ndescription: d\nquery: {match_all: {}}\nexpect: '{nope'\n",
			errMsg:  "expect is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadScenarios_OrderedByFileName(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"term_required",
		"term_all_fields",
		"bool_skipped_filter",
		"request_paging",
		"nested_bool",
	}, names)
}

func TestLoadScenarios_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	content := "name: same\ndescription: d\nquery: {match_all: {}}\nexpect: '{\"match_all\":{}}'\n"
	writeScenario(t, dir, "a.yaml", content)
	writeScenario(t, dir, "b.yml", content)
	writeScenario(t, dir, "notes.txt", "ignored")

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate scenario name "same"`)
}

func TestLoadScenarios_MissingDir(t *testing.T) {
	_, err := LoadScenarios(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
