package search

import (
	"context"
	"strings"

	"resty.dev/v3"

	domainsearch "koita-chat-api/internal/domain/search"
	"koita-chat-api/internal/infrastructure/logger"
)

const (
	ProviderSerper       = "serper"
	serperSearchEndpoint = "https://google.serper.dev/search"
)

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperOrganic struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position"`
}

type serperAnswerBox struct {
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
}

type serperResponse struct {
	Organic   []serperOrganic  `json:"organic"`
	AnswerBox *serperAnswerBox `json:"answerBox"`
}

// SerperProvider queries the hosted Serper Google search API.
type SerperProvider struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

var _ domainsearch.Provider = (*SerperProvider)(nil)

func NewSerperProvider(client *resty.Client, apiKey string) *SerperProvider {
	return &SerperProvider{client: client, apiKey: apiKey, endpoint: serperSearchEndpoint}
}

func (p *SerperProvider) Name() string {
	return ProviderSerper
}

func (p *SerperProvider) Search(ctx context.Context, query string) domainsearch.Result {
	log := logger.GetLogger()
	if strings.TrimSpace(p.apiKey) == "" {
		return domainsearch.Failed(query, domainsearch.MsgNotConfigured)
	}

	var res serperResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(serperRequest{Q: query, Num: domainsearch.DefaultResultCount}).
		SetResult(&res).
		Post(p.endpoint)
	if err != nil {
		log.Error().Err(err).Str("service", ProviderSerper).Msg("failed to query Serper search API")
		return domainsearch.Failed(query, domainsearch.MsgFailed)
	}
	if resp.IsError() {
		log.Error().Int("status", resp.StatusCode()).Str("service", ProviderSerper).Msg("Serper search API error")
		return domainsearch.Failed(query, domainsearch.MsgFailed)
	}

	items := make([]domainsearch.Item, 0, len(res.Organic))
	for i, hit := range res.Organic {
		if i >= domainsearch.DefaultResultCount {
			break
		}
		position := hit.Position
		if position == 0 {
			position = i + 1
		}
		items = append(items, domainsearch.Item{
			Title:    hit.Title,
			Link:     hit.Link,
			Snippet:  hit.Snippet,
			Position: position,
		})
	}

	answer := ""
	if res.AnswerBox != nil {
		answer = res.AnswerBox.Answer
	}
	return domainsearch.Succeeded(query, items, answer)
}
