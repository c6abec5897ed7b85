package cmd

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/incgamma/internal/infrastructure/config"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/logging"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/server"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}

func TestEvalLocal(t *testing.T) {
	out, err := run(t, "p", "--a", "1", "--x", "1", "--json")
	require.NoError(t, err)

	m := decode(t, out)
	assert.Equal(t, "P", m["function"])
	assert.InDelta(t, 0.6321205588285577, m["value"], 1e-15)
	assert.Equal(t, "series", m["region"])
	assert.Equal(t, "local", m["source"])

	out, err = run(t, "q", "--a", "2", "--x", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Q(2, 5) = ")
	assert.Contains(t, out, "region: fraction")
}

func TestEvalUndefined(t *testing.T) {
	out, err := run(t, "p", "--a", "-1", "--x", "1", "--json")
	require.NoError(t, err)

	m := decode(t, out)
	assert.Nil(t, m["value"])
	assert.Equal(t, "none", m["region"])
}

func TestEvalFlags(t *testing.T) {
	t.Run("missing required flag", func(t *testing.T) {
		_, err := run(t, "p", "--a", "1")
		assert.Error(t, err)
	})

	t.Run("iteration cap", func(t *testing.T) {
		_, err := run(t, "p", "--a", "1", "--x", "1", "--max-iterations", "17")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximal count (17) exceeded")

		_, err = run(t, "p", "--a", "1", "--x", "1", "--max-iterations", "18")
		assert.NoError(t, err)
	})

	t.Run("negative cap", func(t *testing.T) {
		_, err := run(t, "q", "--a", "1", "--x", "1", "--max-iterations", "-1")
		assert.Error(t, err)
	})
}

func TestEvalRemote(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false

	srv, err := server.NewServer(cfg, logging.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	out, err := run(t, "q", "--a", "1", "--x", "1", "--json", "--server", ts.URL)
	require.NoError(t, err)

	m := decode(t, out)
	assert.InDelta(t, math.Exp(-1), m["value"], 1e-15)
	assert.Equal(t, ts.URL, m["source"])
	assert.Equal(t, true, m["delegated"])
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte(`
[[cases]]
function = "P"
a = 1.0
x = 1.0
expected = 0.6321205588285577

[[cases]]
function = "Q"
a = 0.5
x = 1.0
expected = 0.15729920705028513
tolerance = 1e-13
`), 0o644))

	out, err := run(t, "verify", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 cases, 0 failed")

	out, err = run(t, "verify", good, "--json")
	require.NoError(t, err)
	m := decode(t, out)
	assert.Equal(t, float64(2), m["cases"])
	assert.Empty(t, m["failures"])

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"cases":[{"function":"P","a":1,"x":1,"expected":0.5}]}`), 0o644))

	out, err = run(t, "verify", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 cases failed")
	assert.Contains(t, out, "FAIL P(1, 1)")

	_, err = run(t, "verify", filepath.Join(dir, "table.csv"))
	assert.Error(t, err)

	_, err = run(t, "verify")
	assert.Error(t, err)
}
