// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package research

import (
	"fmt"

	"blogsmith/internal/config"
)

// NewSearcher creates the searcher selected by RESEARCH_PROVIDER.
func NewSearcher(cfg *config.Config) (Searcher, error) {
	switch cfg.ResearchProvider {
	case "", "exa":
		if cfg.ExaKey == "" {
			return nil, fmt.Errorf("research: exa api key is missing")
		}
		return NewExa(cfg.ExaKey, cfg.ExaBaseURL), nil
	case "tavily":
		if cfg.TavilyKey == "" {
			return nil, fmt.Errorf("research: tavily api key is missing")
		}
		return NewTavily(cfg.TavilyKey, cfg.TavilyBaseURL), nil
	default:
		return nil, fmt.Errorf("research: unknown provider %q", cfg.ResearchProvider)
	}
}
