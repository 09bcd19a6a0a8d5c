package source

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/photodeck/internal/adapter"
	"github.com/mmcdole/photodeck/internal/adapter/source/placeholder"
	"github.com/mmcdole/photodeck/internal/domain"
)

// NewClient creates a PhotoRepository for the configured source type.
// This factory keeps cmd/ unaware of the concrete backend.
func NewClient(cfg *adapter.SourceConfig, logger *slog.Logger) (domain.PhotoRepository, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("source base URL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid source base URL %q", cfg.BaseURL)
	}

	switch cfg.Type {
	case adapter.SourceTypePlaceholder, "":
		return placeholder.NewClient(cfg.BaseURL, logger,
			placeholder.WithTimeout(cfg.Timeout),
			placeholder.WithRateLimit(cfg.RateLimit),
			placeholder.WithUserAgent(cfg.UserAgent),
		), nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}
