package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/visualization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadWithEnv("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "hp.json", cfg.Ontology.DataPath)
	assert.Equal(t, graph.DefaultRootID, cfg.Ontology.RootID)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2, cfg.Query.DefaultDepth)
	assert.Equal(t, 20, cfg.Query.DefaultPageSize)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, logging.InfoLevel, cfg.Level())
	assert.Equal(t, visualization.KindNone, cfg.DefaultLayout())
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadWithEnv("testdata/hpo.yaml", env(nil))
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, logging.DebugLevel, cfg.Level())
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, ":9101", cfg.Server.MetricsAddr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"https://hpo.example.org", "https://www.hpo.example.org"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "s3://ontologies/hp.json.sz", cfg.Ontology.DataPath)
	assert.Equal(t, "eu-west-2", cfg.Ontology.S3Region)
	assert.Equal(t, 3, cfg.Query.DefaultDepth)
	assert.Equal(t, "hierarchical", cfg.Query.DefaultLayout)
	assert.Equal(t, visualization.KindHierarchical, cfg.DefaultLayout())

	// Unset keys keep their defaults.
	assert.Equal(t, 20, cfg.Query.DefaultPageSize)
	assert.Equal(t, graph.DefaultRootID, cfg.Ontology.RootID)
}

func TestEnvOverridesFile(t *testing.T) {
	cfg, err := LoadWithEnv("testdata/hpo.yaml", env(map[string]string{
		"PORT":            "7000",
		"HPO_DATA_PATH":   "/app/hp.json",
		"ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"ENVIRONMENT":     "Production",
		"LOG_LEVEL":       "warn",
		"HPO_ROOT_ID":     "HP_0000118",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/app/hp.json", cfg.Ontology.DataPath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "production", cfg.Environment)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, logging.WarnLevel, cfg.Level())
	assert.Equal(t, "HP_0000118", cfg.Ontology.RootID)
}

func TestEnvironmentOnlyDevelopmentShowsDocs(t *testing.T) {
	for _, value := range []string{"staging", "prod", "dev"} {
		cfg, err := LoadWithEnv("", env(map[string]string{"ENVIRONMENT": value}))
		require.NoError(t, err)
		assert.False(t, cfg.IsDevelopment(), value)
	}

	cfg, err := LoadWithEnv("", env(map[string]string{"ENVIRONMENT": "development"}))
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
}

func TestInvalidPortEnv(t *testing.T) {
	_, err := LoadWithEnv("", env(map[string]string{"PORT": "eighty"}))
	assert.ErrorContains(t, err, "invalid PORT")
}

func TestValidationCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0
	cfg.LogLevel = "chatty"
	cfg.Query.DefaultDepth = 6
	cfg.Query.DefaultPageSize = 101
	cfg.Query.DefaultLayout = "spiral"
	cfg.CORS.AllowedOrigins = nil
	cfg.Layout.Padding = 400

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{
		"server.port", "log_level", "query.default_depth", "query.default_page_size",
		"query.default_layout", "cors.allowed_origins", "layout.padding",
	} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestUnknownKeysRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  prot: 80\n"), 0o644))

	_, err := LoadWithEnv(path, env(nil))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestEmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestMissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), env(nil))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg, err := LoadWithEnv("testdata/hpo.yaml", env(nil))
	require.NoError(t, err)

	data, err := cfg.YAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	again, err := LoadWithEnv(path, env(nil))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestVisualizationLayout(t *testing.T) {
	cfg := Default()
	cfg.Layout.Width = 1024

	layout := cfg.VisualizationLayout()
	assert.Equal(t, 1024.0, layout.Width)
	assert.Equal(t, cfg.Layout.Height, layout.Height)
	assert.NotZero(t, layout.Seed)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, SplitOrigins("*"))
	assert.Equal(t, []string{"a", "b"}, SplitOrigins(" a ,b,,"))
	assert.Empty(t, SplitOrigins(" , "))
}
