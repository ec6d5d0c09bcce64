package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hachtel/cmd/hachtel/cmd"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hachtel version "+cmd.Version+"\n", out)
}

func TestCases(t *testing.T) {
	out, err := run(t, "cases")
	require.NoError(t, err)
	for _, name := range []string{"demo", "fourbus", "grid", "ring"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "buses=4 branches=5 measurements=12")
}

func TestEstimate_DemoText(t *testing.T) {
	out, err := run(t, "estimate")
	require.NoError(t, err)
	assert.Contains(t, out, "case demo: CONVERGED")

	// The ranked branch table starts with the wrongly open branch.
	_, table, found := strings.Cut(out, "branch  assumed")
	require.True(t, found)
	rows := strings.Split(strings.TrimSpace(table), "\n")
	require.Greater(t, len(rows), 1)
	assert.True(t, strings.HasPrefix(rows[1], "3_4"), rows[1])
}

func TestEstimate_FlipYAML(t *testing.T) {
	out, err := run(t, "estimate", "--case", "fourbus", "--flip", "3_4", "--format", "yaml")
	require.NoError(t, err)

	var rep struct {
		Status   string `yaml:"status"`
		Branches []struct {
			ID         string  `yaml:"id"`
			Closed     bool    `yaml:"closed"`
			Normalized float64 `yaml:"normalized"`
		} `yaml:"branches"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "CONVERGED", rep.Status)
	require.Len(t, rep.Branches, 5)
	assert.Equal(t, "3_4", rep.Branches[4].ID)
	assert.False(t, rep.Branches[4].Closed)
	assert.InDelta(t, 1.2042, rep.Branches[4].Normalized, 1e-3)
}

func TestEstimate_Hypotheses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hachtel.yaml")
	doc := `
case:
  name: fourbus
hypotheses:
  - name: as-is
  - name: open-3_4
    flip: [3_4]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := run(t, "estimate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 hypotheses")
	assert.Contains(t, out, "* as-is")
	assert.Contains(t, out, "  open-3_4")
}

func TestEstimate_Errors(t *testing.T) {
	_, err := run(t, "estimate", "--case", "ieee14")
	assert.ErrorContains(t, err, "case.name")

	_, err = run(t, "estimate", "--format", "xml")
	assert.ErrorContains(t, err, "xml")

	_, err = run(t, "estimate", "--case", "fourbus", "--flip", "1_3")
	assert.ErrorContains(t, err, "1_3")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("solver:\n  bogus: 1\n"), 0o644))
	_, err = run(t, "estimate", "--config", path)
	assert.ErrorContains(t, err, "loading config")
}
