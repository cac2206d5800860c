package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/config"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/source"
)

// Options tunes the orchestrator. Zero values get defaults in New.
type Options struct {
	// Timeout bounds each individual source attempt.
	Timeout time.Duration
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// Parallel selects fan-out execution; sequential runs by priority.
	Parallel bool
	// Backoff is the sleep policy between retries.
	Backoff Backoff
	// Overrides are optional per-mode parameter overrides.
	Overrides ModeOverrides
}

// OptionsFromConfig maps the application config onto orchestrator options,
// loading the mode overrides file when one is configured.
func OptionsFromConfig(cc config.CollectConfig) (Options, error) {
	overrides, err := LoadModeOverrides(cc.ModeParamsFile)
	if err != nil {
		return Options{}, err
	}

	maxRetries := cc.MaxRetries
	if !cc.RetryFailedSources {
		maxRetries = 0
	}

	return Options{
		Timeout:    time.Duration(cc.TimeoutPerSource) * time.Second,
		MaxRetries: maxRetries,
		Parallel:   cc.ParallelExecution,
		Backoff:    BackoffFor(cc.BackoffPolicy),
		Overrides:  overrides,
	}, nil
}

// Collector fans collection requests out over the configured sources and
// merges the outcomes into one aggregate result. Individual source failures
// never abort a collection.
type Collector struct {
	configs   []source.Config
	parallel  bool
	runner    *runner
	overrides ModeOverrides
}

// New builds a Collector. Constructing with zero sources is a configuration
// error and the one failure mode reported to the caller.
func New(opts Options, configs []source.Config) (*Collector, error) {
	if len(configs) == 0 {
		return nil, eris.New("collector: no sources configured")
	}
	seen := map[string]struct{}{}
	for _, cfg := range configs {
		if cfg.Name == "" || cfg.Source == nil || cfg.Key == "" {
			return nil, eris.Errorf("collector: incomplete source config %+v", cfg)
		}
		if _, dup := seen[cfg.Name]; dup {
			return nil, eris.Errorf("collector: duplicate source %q", cfg.Name)
		}
		seen[cfg.Name] = struct{}{}
	}

	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Backoff == nil {
		opts.Backoff = Linear{Step: time.Second}
	}

	return &Collector{
		configs:   configs,
		parallel:  opts.Parallel,
		runner:    newRunner(opts.Timeout, opts.MaxRetries, opts.Backoff),
		overrides: opts.Overrides,
	}, nil
}

// Sources returns the names of all configured sources in iteration order.
func (c *Collector) Sources() []string {
	names := make([]string, len(c.configs))
	for i, cfg := range c.configs {
		names[i] = cfg.Name
	}
	return names
}

// Collect runs every active source for the mode and merges the outcomes.
// Per-source failures become entries in the result, never errors; the only
// error case is a mode with no active sources.
func (c *Collector) Collect(ctx context.Context, company string, mode model.Mode) (*model.AggregateResult, error) {
	if company == "" {
		return nil, eris.New("collector: company required")
	}

	active := c.activeConfigs(mode)
	if len(active) == 0 {
		return nil, eris.Errorf("collector: no active sources for mode %q", mode)
	}

	log := zap.L().With(zap.String("company", company), zap.String("mode", string(mode)))
	log.Info("collection starting",
		zap.Int("sources", len(active)),
		zap.Bool("parallel", c.parallel),
	)

	start := time.Now()
	agg := &model.AggregateResult{
		Company:           company,
		Mode:              mode,
		Timestamp:         start.UTC(),
		Data:              make(map[string]map[string]any, len(active)),
		SuccessfulSources: []string{},
		FailedSources:     []string{},
		Errors:            []string{},
	}

	var outcomes []model.SourceOutcome
	var launched []source.Config
	if c.parallel {
		outcomes, launched = c.runParallel(ctx, active, company, mode)
	} else {
		outcomes, launched = c.runSequential(ctx, active, company, mode, agg)
	}

	// Merge in launch order so the result sequences are deterministic.
	for i, out := range outcomes {
		key := launched[i].Key
		if out.OK() {
			agg.Data[key] = out.Payload
			agg.SuccessfulSources = append(agg.SuccessfulSources, out.SourceName)
		} else {
			agg.Data[key] = nil
			agg.FailedSources = append(agg.FailedSources, out.SourceName)
			agg.Errors = append(agg.Errors, fmt.Sprintf("%s: %s", out.SourceName, out.Error))
		}
	}

	agg.SuccessfulCount = len(agg.SuccessfulSources)
	agg.FailedCount = len(agg.FailedSources)
	agg.TotalCount = len(active)
	agg.SuccessRate = float64(agg.SuccessfulCount) / float64(agg.TotalCount)
	agg.ElapsedMS = time.Since(start).Milliseconds()

	assessment := Assess(agg)
	agg.QualityScore = assessment.Score
	agg.QualityGrade = assessment.Grade
	agg.QualityFactors = assessment.Factors
	agg.Recommendations = Recommendations(agg)

	log.Info("collection complete",
		zap.Int("successful", agg.SuccessfulCount),
		zap.Int("failed", agg.FailedCount),
		zap.Int("quality_score", agg.QualityScore),
		zap.Int64("elapsed_ms", agg.ElapsedMS),
	)

	return agg, nil
}

// activeConfigs selects the configs for a mode: quick restricts to critical
// sources, comprehensive and deep run everything.
func (c *Collector) activeConfigs(mode model.Mode) []source.Config {
	if mode != model.ModeQuick {
		return c.configs
	}
	var active []source.Config
	for _, cfg := range c.configs {
		if cfg.Critical {
			active = append(active, cfg)
		}
	}
	return active
}

// runParallel launches every source concurrently and waits for all of them.
// No source failure cancels a sibling; the group context is only inherited
// for caller cancellation.
func (c *Collector) runParallel(ctx context.Context, active []source.Config, company string, mode model.Mode) ([]model.SourceOutcome, []source.Config) {
	outcomes := make([]model.SourceOutcome, len(active))

	var g errgroup.Group
	for i, cfg := range active {
		g.Go(func() error {
			outcomes[i] = c.runner.Run(ctx, cfg, company, c.paramsFor(mode, cfg.Name))
			return nil
		})
	}
	_ = g.Wait()

	return outcomes, active
}

// runSequential runs sources one at a time by ascending priority, recording
// per-source timings on the aggregate.
func (c *Collector) runSequential(ctx context.Context, active []source.Config, company string, mode model.Mode, agg *model.AggregateResult) ([]model.SourceOutcome, []source.Config) {
	ordered := make([]source.Config, len(active))
	copy(ordered, active)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	agg.SourceTimings = make(map[string]int64, len(ordered))
	outcomes := make([]model.SourceOutcome, len(ordered))
	for i, cfg := range ordered {
		outcomes[i] = c.runner.Run(ctx, cfg, company, c.paramsFor(mode, cfg.Name))
		agg.SourceTimings[cfg.Name] = outcomes[i].DurationMS
	}

	return outcomes, ordered
}
