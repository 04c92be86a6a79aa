package ratelimit

import "strings"

// unlimited is returned for requests that are never limited
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration for a request, or nil when the
// default limit applies. Exact matches win over prefix matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if (path == "/health" && method == "GET") || method == "OPTIONS" {
		u := unlimited
		return &u
	}

	var prefix *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if prefix == nil && strings.HasSuffix(cfg.Path, "/") && strings.HasPrefix(path, cfg.Path) {
			prefix = cfg
		}
	}
	return prefix
}
