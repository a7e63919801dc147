package search

import (
	"context"
	"strings"

	"resty.dev/v3"

	domainsearch "koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/infrastructure/logger"
)

const (
	ProviderTavily       = "tavily"
	tavilySearchEndpoint = "https://api.tavily.com/search"
)

type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

// TavilyProvider queries the Tavily search API.
type TavilyProvider struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

var _ domainsearch.Provider = (*TavilyProvider)(nil)

func NewTavilyProvider(client *resty.Client, apiKey string) *TavilyProvider {
	return &TavilyProvider{client: client, apiKey: apiKey, endpoint: tavilySearchEndpoint}
}

func (p *TavilyProvider) Name() string {
	return ProviderTavily
}

func (p *TavilyProvider) Search(ctx context.Context, query string) domainsearch.Result {
	log := logger.GetLogger()
	if strings.TrimSpace(p.apiKey) == "" {
		return domainsearch.Failed(query, domainsearch.MsgNotConfigured)
	}

	var res tavilyResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tavilyRequest{
			APIKey:        p.apiKey,
			Query:         query,
			SearchDepth:   "basic",
			MaxResults:    domainsearch.DefaultResultCount,
			IncludeAnswer: true,
		}).
		SetResult(&res).
		Post(p.endpoint)
	if err != nil {
		log.Error().Err(err).Str("service", ProviderTavily).Msg("failed to query Tavily search API")
		return domainsearch.Failed(query, domainsearch.MsgFailed)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("service", ProviderTavily).Msg("Tavily search API error")
		return domainsearch.Failed(query, domainsearch.MsgFailed)
	}

	items := make([]domainsearch.Item, 0, len(res.Results))
	for i, hit := range res.Results {
		if i >= domainsearch.DefaultResultCount {
			break
		}
		items = append(items, domainsearch.Item{
			Title:    hit.Title,
			Link:     hit.URL,
			Snippet:  hit.Content,
			Position: i + 1,
		})
	}
	return domainsearch.Succeeded(query, items, res.Answer)
}
