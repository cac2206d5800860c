package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/collector"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/enhance"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/source"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/store"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/anthropic"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/gemini"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/perplexity"
)

// initStore opens and migrates the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	var err error

	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// buildCollector assembles the orchestrator from whichever sources are
// credentialed in the config.
func buildCollector() (*collector.Collector, error) {
	opts, err := collector.OptionsFromConfig(cfg.Collect)
	if err != nil {
		return nil, err
	}
	return collector.New(opts, source.BuildSet(cfg))
}

// buildEnhancer wires the configured LLM provider, or none when disabled or
// uncredentialed. A nil provider means every run uses the manual fallback.
func buildEnhancer() *enhance.Enhancer {
	var llm enhance.LLM

	if cfg.Enhance.LLMEnabled {
		switch cfg.Enhance.Provider {
		case "gemini":
			if cfg.Gemini.Key != "" {
				client, err := gemini.New(context.Background(), gemini.Config{
					APIKey: cfg.Gemini.Key,
					Model:  cfg.Gemini.Model,
				})
				if err != nil {
					zap.L().Warn("gemini client init failed, analysis will use manual fallback", zap.Error(err))
				} else {
					llm = enhance.NewGeminiLLM(client)
				}
			}
		case "perplexity":
			if cfg.Perplexity.Key != "" {
				llm = enhance.NewPerplexityLLM(
					perplexity.NewClient(cfg.Perplexity.Key, perplexity.WithModel(cfg.Perplexity.Model)))
			}
		default:
			if cfg.Anthropic.Key != "" {
				llm = enhance.NewAnthropicLLM(
					anthropic.NewClient(cfg.Anthropic.Key, anthropic.WithModel(cfg.Anthropic.Model)))
			}
		}
		if llm == nil {
			zap.L().Warn("llm enabled but provider not credentialed, analysis will use manual fallback",
				zap.String("provider", cfg.Enhance.Provider))
		}
	}

	return enhance.New(llm,
		enhance.WithTimeout(time.Duration(cfg.Enhance.TimeoutSeconds)*time.Second),
		enhance.WithLogger(zap.L()),
	)
}
