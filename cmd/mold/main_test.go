package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/askretov/mold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApply(t *testing.T) {
	var out bytes.Buffer
	base := mold.NewFields(mold.F("email", "john@example.com"), mold.F("name", "John"))
	changes := mold.NewFields(mold.F("name", "Johnny"))
	require.NoError(t, apply(&out, []string{"name", "email"}, base, changes, mold.Strict, false))
	assert.Equal(t,
		`{"validated":{"name":"Johnny","email":"john@example.com"},"changes":{"name":"Johnny"},"status":"Changed"}`+"\n",
		out.String())
}

func TestApply_unknownField(t *testing.T) {
	var out bytes.Buffer
	changes := mold.NewFields(mold.F("bogus", "x"))
	err := apply(&out, []string{"name"}, mold.Fields{}, changes, mold.Strict, false)
	assert.True(t, mold.IsInvalidFieldErr(err))
	assert.Empty(t, out.String())

	require.NoError(t, apply(&out, []string{"name"}, mold.Fields{}, changes, mold.Lenient, false))
	assert.Equal(t, `{"validated":{},"changes":{},"status":"NotChanged"}`+"\n", out.String())
}

func TestApplyCmd(t *testing.T) {
	basePath := writeFile(t, "base.yaml", "name: John\nage: 30\nrole: admin\n")
	changesPath := writeFile(t, "changes.json", `{"age": 31}`)

	testCases := []struct {
		name      string
		args      []string
		expected  string
		wantError bool
	}{
		{
			name:     "lenient",
			args:     []string{"apply", "-f", "name,age", "-b", basePath, "-c", changesPath, "--lenient"},
			expected: `{"validated":{"name":"John","age":31},"changes":{"age":31},"status":"Changed"}` + "\n",
		}, {
			name:      "strict",
			args:      []string{"apply", "-f", "name,age", "-b", basePath, "-c", changesPath},
			wantError: true,
		}, {
			name:      "missingFields",
			args:      []string{"apply", "-b", basePath},
			wantError: true,
		}, {
			name:      "missingFile",
			args:      []string{"apply", "-f", "name", "-b", filepath.Join(t.TempDir(), "nope.yaml")},
			wantError: true,
		},
	}
	for _, tc := range testCases {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(tc.args)
		err := cmd.Execute()
		if tc.wantError {
			assert.Error(t, err, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.expected, out.String(), tc.name)
	}
}

func TestLoadFields(t *testing.T) {
	fields, err := loadFields("")
	require.NoError(t, err)
	assert.Equal(t, 0, fields.Len())

	fields, err = loadFields(writeFile(t, "empty.yaml", "\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, fields.Len())

	_, err = loadFields(writeFile(t, "list.yaml", "- a\n"))
	assert.Error(t, err)
}
