package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/bddgrid/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	valid := func() app.Config {
		cfg := app.DefaultConfig()
		cfg.GraphPaths = []string{"graph"}
		return cfg
	}

	testCases := []struct {
		name    string
		mutate  func(*app.Config)
		wantErr string
	}{
		{name: "defaults with a graph path", mutate: func(*app.Config) {}},
		{name: "no graph path", mutate: func(c *app.Config) { c.GraphPaths = nil }, wantErr: "Config.GraphPaths: failed 'required' check"},
		{name: "empty graph path", mutate: func(c *app.Config) { c.GraphPaths = []string{""} }, wantErr: "Config.GraphPaths[0]: failed 'required' check"},
		{name: "bad log format", mutate: func(c *app.Config) { c.LogFormat = "xml" }, wantErr: "Config.LogFormat: failed 'oneof' check"},
		{name: "bad log level", mutate: func(c *app.Config) { c.LogLevel = "trace" }, wantErr: "Config.LogLevel: failed 'oneof' check"},
		{name: "no workers", mutate: func(c *app.Config) { c.Workers = 0 }, wantErr: "Config.Workers: failed 'min' check"},
		{name: "no output", mutate: func(c *app.Config) { c.OutputDir = "" }, wantErr: "Config.OutputDir: failed 'required' check"},
		{name: "port out of range", mutate: func(c *app.Config) { c.HealthcheckPort = 70000 }, wantErr: "Config.HealthcheckPort: failed 'max' check"},
		{name: "publish section is not checked", mutate: func(c *app.Config) { c.Publish.URL = "not a url" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			got, err := app.NewConfig(cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, cfg, *got)
		})
	}
}

func TestValidatePublish(t *testing.T) {
	cfg := app.DefaultConfig()
	assert.ErrorContains(t, cfg.ValidatePublish(), "PublishConfig.URL: failed 'required' check")

	cfg.Publish.URL = "http://localhost:3000/socket.io/"
	assert.NoError(t, cfg.ValidatePublish())

	cfg.Publish.Event = ""
	assert.ErrorContains(t, cfg.ValidatePublish(), "PublishConfig.Event: failed 'required' check")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	write := func(t *testing.T, content string) string {
		t.Helper()
		p := filepath.Join(dir, t.Name()+".yaml")
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	t.Run("overlays defaults", func(t *testing.T) {
		path := write(t, `
version: 1
graph: [models, /abs/graph.hcl]
output: out
workers: 8
namespaces:
  ex: https://example.org/pickplace#
publish:
  url: http://localhost:3000/socket.io/
  ack_event: stored
  timeout: 3s
`)
		cfg, err := app.LoadConfigFile(path, app.DefaultConfig())
		require.NoError(t, err)

		base := filepath.Dir(path)
		assert.Equal(t, []string{filepath.Join(base, "models"), "/abs/graph.hcl"}, cfg.GraphPaths)
		assert.Equal(t, filepath.Join(base, "out"), cfg.OutputDir)
		assert.Equal(t, 8, cfg.Workers)
		assert.Equal(t, "info", cfg.LogLevel, "unset keys keep the base value")
		assert.Equal(t, map[string]string{"ex": "https://example.org/pickplace#"}, cfg.Namespaces)
		assert.Equal(t, "feature", cfg.Publish.Event)
		assert.Equal(t, "stored", cfg.Publish.AckEvent)
		assert.Equal(t, 3*time.Second, cfg.Publish.Timeout)
	})

	t.Run("base slices are not modified", func(t *testing.T) {
		path := write(t, "version: 1\nworkers: 2\n")
		base := app.DefaultConfig()
		base.GraphPaths = []string{"graph"}
		cfg, err := app.LoadConfigFile(path, base)
		require.NoError(t, err)
		assert.Equal(t, []string{"graph"}, base.GraphPaths)
		assert.Equal(t, []string{filepath.Join(filepath.Dir(path), "graph")}, cfg.GraphPaths)
	})

	errorCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "missing version", content: "workers: 2\n", wantErr: "unsupported version 0"},
		{name: "future version", content: "version: 2\n", wantErr: "unsupported version 2"},
		{name: "unknown key", content: "version: 1\nthreads: 2\n", wantErr: "field threads not found"},
		{name: "bad duration", content: "version: 1\ndebounce: soon\n", wantErr: "parsing config file"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.LoadConfigFile(write(t, tc.content), app.DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := app.LoadConfigFile(filepath.Join(dir, "nope.yaml"), app.DefaultConfig())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
