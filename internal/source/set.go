package source

import (
	"go.uber.org/zap"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/config"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/adzuna"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/apollo"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/browserless"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/newsapi"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/sam"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/pkg/serper"
)

// BuildSet constructs the source config set from whichever providers are
// credentialed. Unconfigured providers are skipped with a log line rather
// than failing startup; the collector errors later only if nothing is left.
func BuildSet(cfg *config.Config) []Config {
	var configs []Config

	add := func(c Config) {
		configs = append(configs, c)
	}
	skip := func(name string) {
		zap.L().Info("source not configured, skipping", zap.String("source", name))
	}

	if cfg.Apollo.Key != "" {
		var opts []apollo.Option
		if cfg.Apollo.BaseURL != "" {
			opts = append(opts, apollo.WithBaseURL(cfg.Apollo.BaseURL))
		}
		add(Config{
			Name:     "apollo",
			Key:      "apollo_data",
			Source:   NewApolloSource(apollo.NewClient(cfg.Apollo.Key, opts...)),
			Priority: 1,
			Critical: true,
		})
	} else {
		skip("apollo")
	}

	if cfg.Serper.Key != "" {
		var opts []serper.Option
		if cfg.Serper.BaseURL != "" {
			opts = append(opts, serper.WithBaseURL(cfg.Serper.BaseURL))
		}
		add(Config{
			Name:     "serper",
			Key:      "serper_search",
			Source:   NewSerperSource(serper.NewClient(cfg.Serper.Key, opts...)),
			Priority: 2,
			Critical: true,
		})
	} else {
		skip("serper")
	}

	var browser browserless.Client
	if cfg.Browserless.Token != "" {
		var opts []browserless.Option
		if cfg.Browserless.BaseURL != "" {
			opts = append(opts, browserless.WithBaseURL(cfg.Browserless.BaseURL))
		}
		browser = browserless.NewClient(cfg.Browserless.Token, opts...)
		add(Config{
			Name:     "playwright",
			Key:      "playwright_data",
			Source:   NewBrowserSource(browser),
			Priority: 3,
			Critical: true,
		})
	} else {
		skip("playwright")
	}

	if browser != nil && (cfg.LinkedIn.SessionCookie != "" || cfg.LinkedIn.Email != "") {
		add(Config{
			Name:     "linkedin",
			Key:      "linkedin_data",
			Source:   NewLinkedInSource(browser, cfg.LinkedIn.SessionCookie),
			Priority: 4,
		})
	} else {
		skip("linkedin")
	}

	if cfg.Adzuna.AppID != "" && cfg.Adzuna.AppKey != "" {
		var opts []adzuna.Option
		if cfg.Adzuna.BaseURL != "" {
			opts = append(opts, adzuna.WithBaseURL(cfg.Adzuna.BaseURL))
		}
		add(Config{
			Name:     "job_boards",
			Key:      "job_boards",
			Source:   NewJobsSource(adzuna.NewClient(cfg.Adzuna.AppID, cfg.Adzuna.AppKey, opts...), cfg.Adzuna.Country),
			Priority: 5,
		})
	} else {
		skip("job_boards")
	}

	if cfg.NewsAPI.Key != "" {
		var opts []newsapi.Option
		if cfg.NewsAPI.BaseURL != "" {
			opts = append(opts, newsapi.WithBaseURL(cfg.NewsAPI.BaseURL))
		}
		add(Config{
			Name:     "news",
			Key:      "news_data",
			Source:   NewNewsSource(newsapi.NewClient(cfg.NewsAPI.Key, opts...)),
			Priority: 6,
		})
	} else {
		skip("news")
	}

	if cfg.SAM.Key != "" {
		var opts []sam.Option
		if cfg.SAM.BaseURL != "" {
			opts = append(opts, sam.WithBaseURL(cfg.SAM.BaseURL))
		}
		add(Config{
			Name:     "government",
			Key:      "government_data",
			Source:   NewGovernmentSource(sam.NewClient(cfg.SAM.Key, opts...)),
			Priority: 7,
		})
	} else {
		skip("government")
	}

	return configs
}
