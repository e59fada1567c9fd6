package main

import (
	"context"
	"io"

	"github.com/dd0wney/cluso-hpo/pkg/config"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/metrics"
	"github.com/dd0wney/cluso-hpo/pkg/ontology"
	"github.com/dd0wney/cluso-hpo/pkg/query"
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dataPath   string
	logLevel   string
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "hpo",
		Short: "Query the Human Phenotype Ontology",
		Long: `hpo loads an OBO graph JSON ontology (hp.json, a .sz snapshot, or an
s3://bucket/key object) and serves term lookup, search, neighbours and
subgraph extraction over REST and GraphQL, or answers them from the shell.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&opts.dataPath, "data", "d", "", "ontology location (overrides config and HPO_DATA_PATH)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides config and LOG_LEVEL)")

	cmd.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newShowCmd(opts),
		newSubgraphCmd(opts),
		newStatsCmd(opts),
		newPackCmd(opts),
		newConfigCmd(opts),
		newBrowseCmd(opts),
	)
	return cmd
}

// loadConfig reads the config file and environment, then applies flag
// overrides and validates again.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataPath != "" {
		cfg.Ontology.DataPath = o.dataPath
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) logging.Logger {
	return logging.NewJSONLogger(w, cfg.Level()).With(logging.String("service", "hpo"))
}

func serviceOptions(cfg *config.Config, reg *metrics.Registry, logger logging.Logger) query.Options {
	return query.Options{
		RootID:        cfg.Ontology.RootID,
		Layout:        cfg.VisualizationLayout(),
		DefaultLayout: cfg.DefaultLayout(),
		Metrics:       reg,
		Logger:        logger,
	}
}

func s3Options(cfg *config.Config) ontology.S3Options {
	return ontology.S3Options{
		Region:   cfg.Ontology.S3Region,
		Endpoint: cfg.Ontology.S3Endpoint,
	}
}

// openService loads the configured ontology for the one-shot commands.
// Their logs go to stderr so stdout carries only results.
func (o *rootOptions) openService(ctx context.Context, cmd *cobra.Command) (*query.Service, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	svc, err := query.Open(ctx, cfg.Ontology.DataPath, s3Options(cfg), serviceOptions(cfg, nil, logger))
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}
