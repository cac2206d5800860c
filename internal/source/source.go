// Package source defines the adapter contract for external data providers
// and the adapters that wrap each provider client.
package source

import (
	"context"
	"strings"
)

// Params carries per-mode tuning parameters into an adapter (news lookback,
// job platforms, regulatory inclusion). JSON-compatible values only.
type Params map[string]any

// Int returns an integer parameter, or def when absent or mistyped.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns a boolean parameter, or def when absent or mistyped.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// Strings returns a string-list parameter, or def when absent or mistyped.
func (p Params) Strings(key string, def []string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}

// Payload is the structured result of one provider fetch. Providers include
// at minimum a "status" field; anything other than error/failed counts as
// usable when the payload is non-empty.
type Payload map[string]any

// Status returns the payload's status field, or "" when absent.
func (p Payload) Status() string {
	s, _ := p["status"].(string)
	return s
}

// Usable reports whether the payload represents a successful fetch.
func (p Payload) Usable() bool {
	if len(p) == 0 {
		return false
	}
	switch strings.ToLower(p.Status()) {
	case "error", "failed":
		return false
	}
	return true
}

// Source is one provider's fetch capability. Implementations are stateless
// beyond their underlying client and must honor ctx cancellation.
type Source interface {
	Name() string
	Fetch(ctx context.Context, company string, params Params) (Payload, error)
}

// Config is the per-adapter descriptor the collector iterates. Built once at
// construction, immutable after.
type Config struct {
	// Name is the unique source name (e.g. "apollo").
	Name string
	// Key is the canonical result key the payload is stored under.
	Key string
	// Source is the adapter itself.
	Source Source
	// Priority orders sequential execution; lower runs first.
	Priority int
	// Critical sources are the only ones included in quick mode.
	Critical bool
}
