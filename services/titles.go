package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"career-pathways-backend/config"
)

const DefaultTitlesEndpoint = "https://api.jobtitles.example.com/v1/titles/autocomplete"

// Title is one entry from the external career-title taxonomy.
type Title struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	IsAlternate bool   `json:"isAlternate,omitempty"`
}

// TitleClient searches the career-title taxonomy. The autocomplete UI must
// never block on this service, so Search swallows every failure into an
// empty result.
type TitleClient struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func NewTitleClient(endpoint, apiKey string) *TitleClient {
	if endpoint == "" {
		endpoint = DefaultTitlesEndpoint
	}
	return &TitleClient{Endpoint: endpoint, APIKey: apiKey, Client: &http.Client{}}
}

// Search returns ranked suggestions for the query, or an empty slice on any
// failure other than context cancellation. Cancellation is returned so the
// autocompleter can tell a stale request from a failed one.
func (c *TitleClient) Search(ctx context.Context, query string) ([]Title, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.Endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return []Title{}, nil
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		config.Logger.Warn("title search failed", zap.String("q", query), zap.Error(err))
		return []Title{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		config.Logger.Warn("title search returned non-2xx",
			zap.String("q", query), zap.Int("status", resp.StatusCode))
		return []Title{}, nil
	}

	var titles []Title
	if err := json.NewDecoder(resp.Body).Decode(&titles); err != nil {
		config.Logger.Warn("title search response undecodable", zap.Error(err))
		return []Title{}, nil
	}
	if titles == nil {
		titles = []Title{}
	}
	return titles, nil
}
