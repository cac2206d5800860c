package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/config"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Driver: "sqlite"},
		Collect: config.CollectConfig{
			TimeoutPerSource: 30,
			BackoffPolicy:    "linear",
		},
		Enhance: config.EnhanceConfig{FallbackMode: "graceful"},
	}
}

func TestBuildCollector_NoCredentialedSources(t *testing.T) {
	cfg = testConfig()

	_, err := buildCollector()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources configured")
}

func TestBuildCollector_WithCredentials(t *testing.T) {
	cfg = testConfig()
	cfg.Apollo.Key = "k"
	cfg.Serper.Key = "k"

	coll, err := buildCollector()
	require.NoError(t, err)
	assert.Equal(t, []string{"apollo", "serper"}, coll.Sources())
}

func TestBuildEnhancer_DisabledUsesFallback(t *testing.T) {
	cfg = testConfig()
	cfg.Enhance.LLMEnabled = false

	enh := buildEnhancer()
	require.NotNil(t, enh)

	res := enh.Enhance(context.Background(), nil)
	assert.Equal(t, model.StatusManualFallback, res.EnhancementStatus)
}

func TestBuildEnhancer_EnabledWithoutCredentials(t *testing.T) {
	cfg = testConfig()
	cfg.Enhance.LLMEnabled = true
	cfg.Enhance.Provider = "perplexity"

	agg := &model.AggregateResult{
		Company: "acme",
		Data: map[string]map[string]any{
			model.KeyApollo: {"organization": map[string]any{"name": "Acme"}},
		},
	}
	res := buildEnhancer().Enhance(context.Background(), agg)
	assert.Equal(t, model.StatusManualFallback, res.EnhancementStatus)
	assert.Equal(t, "llm_disabled", res.FallbackReason)
}

func TestInitStore_SQLite(t *testing.T) {
	cfg = testConfig()
	cfg.Store.DatabaseURL = filepath.Join(t.TempDir(), "test.db")

	st, err := initStore(context.Background())
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	run, err := st.CreateRun(context.Background(), "acme", model.ModeQuick)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
}

func TestCollectCmd_RunE_UnknownMode(t *testing.T) {
	cfg = testConfig()
	collectMode = "bogus"
	defer func() { collectMode = "comprehensive" }()

	collectCmd.SetContext(context.Background())
	defer collectCmd.SetContext(nil)

	err := collectCmd.RunE(collectCmd, []string{"acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestWriteCollectOutput_UnknownFormat(t *testing.T) {
	collectFormat = "csv"
	defer func() { collectFormat = "json" }()

	err := writeCollectOutput(&model.AggregateResult{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestHealthEndpoint(t *testing.T) {
	api := &apiServer{}
	srv := httptest.NewServer(api.routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
