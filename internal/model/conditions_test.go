package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	require.NoError(t, reg.Validate())
	require.Len(t, reg.Conditions, 4)

	c, ok := reg.Lookup("하늘고")
	require.True(t, ok)
	assert.Equal(t, 2.0, c.TargetEC)

	_, ok = reg.Lookup("없는학교")
	assert.False(t, ok)
}

func TestLookupNormalizesName(t *testing.T) {
	reg := DefaultRegistry()
	c, ok := reg.Lookup(norm.NFD.String("동산고"))
	require.True(t, ok)
	assert.Equal(t, 8.0, c.TargetEC)
}

func TestLoadRegistry(t *testing.T) {
	path := writeFile(t, "conditions.yaml", `
conditions:
  - name: Alpha
    target_ec: 1.0
  - name: " Beta "
    target_ec: 2.5
growth_keyword: growth
`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, []Condition{{Name: "Alpha", TargetEC: 1.0}, {Name: "Beta", TargetEC: 2.5}}, reg.Conditions)
	assert.Equal(t, DefaultEnvironmentKeyword, reg.EnvironmentKeyword)
	assert.Equal(t, "growth", reg.GrowthKeyword)
}

func TestLoadRegistryRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":     "conditions: []\n",
		"no name":   "conditions:\n  - target_ec: 1\n",
		"zero ec":   "conditions:\n  - name: A\n    target_ec: 0\n",
		"duplicate": "conditions:\n  - name: A\n    target_ec: 1\n  - name: A\n    target_ec: 2\n",
		"bad yaml":  "conditions: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRegistry(writeFile(t, "c.yaml", body))
			assert.Error(t, err)
		})
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
