// Package config loads process configuration from an optional YAML file
// followed by environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/search"
	"github.com/dd0wney/cluso-hpo/pkg/traversal"
	"github.com/dd0wney/cluso-hpo/pkg/validation"
	"github.com/dd0wney/cluso-hpo/pkg/visualization"
	"gopkg.in/yaml.v3"
)

// EnvironmentDevelopment enables the route listing at /api/docs.
const EnvironmentDevelopment = "development"

// Config is the complete process configuration.
type Config struct {
	Environment string         `yaml:"environment"`
	LogLevel    string         `yaml:"log_level"`
	Server      ServerConfig   `yaml:"server"`
	CORS        CORSConfig     `yaml:"cors"`
	Ontology    OntologyConfig `yaml:"ontology"`
	Query       QueryConfig    `yaml:"query"`
	Layout      LayoutConfig   `yaml:"layout"`
}

// ServerConfig controls the HTTP listeners.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	MetricsAddr     string        `yaml:"metrics_addr"` // separate /metrics listener; empty serves it on the main port
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}

// OntologyConfig says where the ontology comes from.
type OntologyConfig struct {
	DataPath   string `yaml:"data_path"` // file path, .sz snapshot, or s3://bucket/key
	RootID     string `yaml:"root_id"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"`
}

// QueryConfig holds request defaults.
type QueryConfig struct {
	DefaultDepth    int    `yaml:"default_depth"`
	DefaultPageSize int    `yaml:"default_page_size"`
	DefaultLayout   string `yaml:"default_layout"`
}

// LayoutConfig sizes the canvas used for subgraph positions.
type LayoutConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Padding    float64 `yaml:"padding"`
	Iterations int     `yaml:"iterations"`
}

// Default returns the built-in configuration.
func Default() *Config {
	layout := visualization.DefaultLayoutConfig()
	return &Config{
		Environment: "production",
		LogLevel:    "info",
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins:   []string{"*"},
			AllowCredentials: true,
		},
		Ontology: OntologyConfig{
			DataPath: "hp.json",
			RootID:   graph.DefaultRootID,
		},
		Query: QueryConfig{
			DefaultDepth:    traversal.DefaultDepth,
			DefaultPageSize: search.DefaultPageSize,
		},
		Layout: LayoutConfig{
			Width:      layout.Width,
			Height:     layout.Height,
			Padding:    layout.Padding,
			Iterations: layout.Iterations,
		},
	}
}

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads path (skipped when empty), applies the process environment
// and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment.
func LoadWithEnv(path string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg, rejecting unknown keys.
func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides fields from the environment variables the service
// has always honoured.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("HPO_DATA_PATH"); ok && v != "" {
		c.Ontology.DataPath = v
	}
	if v, ok := lookup("HPO_ROOT_ID"); ok && v != "" {
		c.Ontology.RootID = v
	}
	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		c.CORS.AllowedOrigins = SplitOrigins(v)
	}
	if v, ok := lookup("ENVIRONMENT"); ok && v != "" {
		c.Environment = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("AWS_REGION"); ok && v != "" {
		c.Ontology.S3Region = v
	}
	if v, ok := lookup("HPO_S3_ENDPOINT"); ok && v != "" {
		c.Ontology.S3Endpoint = v
	}
	if v, ok := lookup("HPO_METRICS_ADDR"); ok {
		c.Server.MetricsAddr = v
	}
	return nil
}

// SplitOrigins parses a comma separated origin list, dropping blanks.
func SplitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	cv := validation.NewConfigValidator("Config")

	cv.Custom("log_level", func() error {
		if _, ok := logging.ParseLevel(c.LogLevel); !ok {
			return fmt.Errorf("unknown level %q", c.LogLevel)
		}
		return nil
	})
	cv.RangeInt("server.port", c.Server.Port, 1, 65535)
	cv.RangeDuration("server.read_timeout", c.Server.ReadTimeout, time.Second, 10*time.Minute)
	cv.RangeDuration("server.write_timeout", c.Server.WriteTimeout, time.Second, 10*time.Minute)
	cv.RangeDuration("server.shutdown_timeout", c.Server.ShutdownTimeout, time.Second, 10*time.Minute)
	cv.Custom("cors.allowed_origins", func() error {
		if len(c.CORS.AllowedOrigins) == 0 {
			return errors.New("at least one origin is required")
		}
		return nil
	})
	cv.Required("ontology.data_path", c.Ontology.DataPath)
	cv.Required("ontology.root_id", c.Ontology.RootID)
	cv.RangeInt("query.default_depth", c.Query.DefaultDepth, traversal.MinDepth, traversal.MaxDepth)
	cv.RangeInt("query.default_page_size", c.Query.DefaultPageSize, search.MinPageSize, search.MaxPageSize)
	cv.OneOf("query.default_layout", c.Query.DefaultLayout, []string{
		string(visualization.KindNone),
		string(visualization.KindHierarchical),
		string(visualization.KindCircular),
		string(visualization.KindForce),
	})
	cv.PositiveFloat("layout.width", c.Layout.Width)
	cv.PositiveFloat("layout.height", c.Layout.Height)
	cv.When(c.Layout.Padding*2 >= min(c.Layout.Width, c.Layout.Height), func(v *validation.ConfigValidator) {
		v.Custom("layout.padding", func() error {
			return fmt.Errorf("padding %g leaves no drawing area", c.Layout.Padding)
		})
	})
	cv.RangeInt("layout.iterations", c.Layout.Iterations, 1, 1000)

	return cv.Validate()
}

// IsDevelopment reports whether development-only routes are exposed.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvironmentDevelopment
}

// Addr is the main listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Level returns the parsed log level. Validate guarantees it parses.
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// VisualizationLayout converts the layout section for pkg/visualization.
func (c *Config) VisualizationLayout() visualization.LayoutConfig {
	cfg := visualization.DefaultLayoutConfig()
	cfg.Width = c.Layout.Width
	cfg.Height = c.Layout.Height
	cfg.Padding = c.Layout.Padding
	cfg.Iterations = c.Layout.Iterations
	return cfg
}

// YAML renders the configuration as it would be written to a file.
func (c *Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultLayout is the layout applied when a subgraph request names none.
// Validate guarantees it parses.
func (c *Config) DefaultLayout() visualization.Kind {
	kind, _ := visualization.ParseKind(c.Query.DefaultLayout)
	return kind
}
