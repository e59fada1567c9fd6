package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-hpo/pkg/config"
	"github.com/dd0wney/cluso-hpo/pkg/graph"
	"github.com/dd0wney/cluso-hpo/pkg/logging"
	"github.com/dd0wney/cluso-hpo/pkg/query"
)

const (
	miniData = "../../pkg/ontology/testdata/mini_hp.json"

	hpAbnormal = "http://purl.obolibrary.org/obo/HP_0000118"
	hpEye      = "http://purl.obolibrary.org/obo/HP_0000478"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), err
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func TestStatsCommand(t *testing.T) {
	out, err := run(t, "stats", "--data", miniData, "--json")
	require.NoError(t, err)

	stats := decode[graph.Stats](t, out)
	assert.Equal(t, graph.Stats{TotalNodes: 6, TotalEdges: 6, RootNode: graph.DefaultRootID}, stats)

	out, err = run(t, "stats", "--data", miniData)
	require.NoError(t, err)
	assert.Contains(t, out, "Relations")
	assert.Contains(t, out, graph.DefaultRootID)
}

func TestSearchCommand(t *testing.T) {
	out, err := run(t, "search", "abnormal", "--data", miniData, "--json")
	require.NoError(t, err)

	resp := decode[query.SearchResponse](t, out)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 20, resp.PageSize)
	require.NotEmpty(t, resp.Nodes)
	assert.Equal(t, hpAbnormal, resp.Nodes[0].ID)

	out, err = run(t, "search", "abnormal", "--data", miniData, "--page", "2", "--page-size", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "HP_0000707")
	assert.Contains(t, out, "page 2, 1 of 4 matches")

	out, err = run(t, "search", "zzzz", "--data", miniData)
	require.NoError(t, err)
	assert.Contains(t, out, `no matches for "zzzz"`)
}

func TestSearchCommandRejectsShortQuery(t *testing.T) {
	_, err := run(t, "search", "a", "--data", miniData)
	assert.ErrorIs(t, err, graph.ErrInvalidQuery)
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "show", "HP_0000478", "--data", miniData)
	require.NoError(t, err)
	assert.Contains(t, out, "Abnormality of the eye")
	assert.Contains(t, out, "Eye defect; Abnormal eye")
	assert.Contains(t, out, "HP_0000118")

	out, err = run(t, "show", "HP:0000478", "--data", miniData, "--parents", "--json")
	require.NoError(t, err)
	parents := decode[query.ParentsResponse](t, out)
	require.Len(t, parents.Parents, 1)
	assert.Equal(t, hpAbnormal, parents.Parents[0].ID)

	out, err = run(t, "show", hpAbnormal, "--data", miniData, "--children", "--json")
	require.NoError(t, err)
	children := decode[query.ChildrenResponse](t, out)
	assert.Len(t, children.Children, 2)
}

func TestShowCommandErrors(t *testing.T) {
	_, err := run(t, "show", "HP_7777777", "--data", miniData)
	assert.ErrorIs(t, err, graph.ErrNotFound)

	_, err = run(t, "show", "HP_0000478", "--data", miniData, "--parents", "--children")
	assert.ErrorContains(t, err, "mutually exclusive")

	_, err = run(t, "show", "--data", miniData)
	assert.Error(t, err)
}

func TestSubgraphCommand(t *testing.T) {
	out, err := run(t, "subgraph", "HP_0000478", "--data", miniData, "--depth", "1", "--layout", "hierarchical", "--json")
	require.NoError(t, err)

	resp := decode[query.SubgraphResponse](t, out)
	require.NotEmpty(t, resp.Nodes)
	assert.Equal(t, hpEye, resp.Nodes[0].ID)
	assert.Len(t, resp.Nodes, 3)
	assert.Equal(t, "hierarchical", resp.Layout)
	assert.Len(t, resp.Positions, 3)

	out, err = run(t, "subgraph", "HP_0000478", "--data", miniData, "--layout", "circular")
	require.NoError(t, err)
	assert.Contains(t, out, "circular layout")
	assert.Contains(t, out, "HP_0000504")

	_, err = run(t, "subgraph", "HP_0000478", "--data", miniData, "--depth", "9")
	assert.ErrorIs(t, err, graph.ErrInvalidQuery)
}

func TestPackCommand(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "hp.json.sz")

	out, err := run(t, "pack", miniData, dst)
	require.NoError(t, err)
	assert.Contains(t, out, "packed")

	out, err = run(t, "stats", "--data", dst, "--json")
	require.NoError(t, err)
	assert.Equal(t, 6, decode[graph.Stats](t, out).TotalNodes)

	_, err = run(t, "pack", miniData, filepath.Join(t.TempDir(), "hp.json.gz"))
	assert.ErrorContains(t, err, "must end in .sz")

	_, err = run(t, "pack", "testdata/missing.json", dst)
	assert.ErrorIs(t, err, graph.ErrLoadFailure)
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config", "--data", "elsewhere.json", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "data_path: elsewhere.json")
	assert.Contains(t, out, "log_level: debug")

	_, err = run(t, "config", "--log-level", "loud")
	assert.ErrorContains(t, err, "log_level")
}

func TestMissingDataFails(t *testing.T) {
	_, err := run(t, "stats", "--data", filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, graph.ErrLoadFailure)
}

func serveConfig(dataPath string) *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Ontology.DataPath = dataPath
	return cfg
}

func TestRunServeLoadsAndShutsDown(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.NewJSONLogger(&logs, logging.InfoLevel)

	ctx, cancel := context.WithTimeout(t.Context(), 500*time.Millisecond)
	defer cancel()

	require.NoError(t, runServe(ctx, serveConfig(miniData), logger))

	text := logs.String()
	assert.Contains(t, text, "http server listening")
	assert.Contains(t, text, "ontology ready")
	assert.Contains(t, text, "server shutdown complete")
}

func TestRunServeFailsOnBadOntology(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()

	err := runServe(ctx, serveConfig(filepath.Join(t.TempDir(), "missing.json")), logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "initial ontology load"), err.Error())
	assert.ErrorIs(t, err, graph.ErrLoadFailure)
}
