package collector

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/source"
)

// ModeParams maps source name to the parameters that source receives in a
// given mode. Deep parameters are a superset of comprehensive parameters.
type ModeParams map[string]source.Params

// defaultModeParams holds the built-in per-mode tuning. Quick mode runs
// critical sources with comprehensive parameters.
var defaultModeParams = map[model.Mode]ModeParams{
	model.ModeComprehensive: {
		"serper":     {"results": 10},
		"apollo":     {"contacts_per_page": 10},
		"job_boards": {"platforms": []string{"adzuna"}, "max_results": 20},
		"news":       {"lookback_days": 7, "max_articles": 20},
		"government": {"include_regulatory": false},
	},
	model.ModeDeep: {
		"serper":     {"results": 20},
		"apollo":     {"contacts_per_page": 25},
		"job_boards": {"platforms": []string{"adzuna", "indeed", "seek"}, "max_results": 50},
		"news":       {"lookback_days": 30, "max_articles": 50},
		"government": {"include_regulatory": true},
	},
}

// paramsFor resolves the parameters for one source in one mode, applying
// overrides on top of the defaults.
func (c *Collector) paramsFor(mode model.Mode, name string) source.Params {
	effective := mode
	if effective == model.ModeQuick {
		effective = model.ModeComprehensive
	}

	params := source.Params{}
	for k, v := range defaultModeParams[effective][name] {
		params[k] = v
	}
	if c.overrides != nil {
		for k, v := range c.overrides[effective][name] {
			params[k] = v
		}
	}
	return params
}

// ModeOverrides are optional per-mode parameter overrides loaded from YAML,
// keyed by mode then source name.
type ModeOverrides map[model.Mode]ModeParams

// LoadModeOverrides reads a YAML overrides file. A missing path returns nil
// overrides, not an error.
func LoadModeOverrides(path string) (ModeOverrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "collector: read mode params file %s", path)
	}

	var raw map[string]map[string]map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrapf(err, "collector: parse mode params file %s", path)
	}

	overrides := ModeOverrides{}
	for modeName, sources := range raw {
		mode, err := model.ParseMode(modeName)
		if err != nil {
			return nil, err
		}
		mp := ModeParams{}
		for srcName, params := range sources {
			mp[srcName] = source.Params(params)
		}
		overrides[mode] = mp
	}
	return overrides, nil
}
