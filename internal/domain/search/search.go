package search

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultResultCount is how many organic results are requested from providers.
	DefaultResultCount = 5

	MsgNotConfigured = "Recherche web non configurée"
	MsgFailed        = "Erreur lors de la recherche web"
)

// Item is one organic search hit.
type Item struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
	Position int    `json:"position,omitempty"`
}

// Result is what every provider returns. Search never fails with an error;
// callers must check Success before using ContextText.
type Result struct {
	Success     bool   `json:"success"`
	Query       string `json:"query"`
	Results     []Item `json:"results"`
	ContextText string `json:"context"`
	Answer      string `json:"answer,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Provider is a web search backend.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) Result
}

// Succeeded builds a successful result and its model context.
func Succeeded(query string, items []Item, answer string) Result {
	if items == nil {
		items = []Item{}
	}
	return Result{
		Success:     true,
		Query:       query,
		Results:     items,
		ContextText: FormatContext(items),
		Answer:      answer,
	}
}

// Failed builds a degraded result carrying a short client-safe reason.
func Failed(query, reason string) Result {
	return Result{
		Success: false,
		Query:   query,
		Results: []Item{},
		Error:   reason,
	}
}

// FormatContext renders hits as "[Source n] title: snippet" blocks separated by blank lines.
func FormatContext(items []Item) string {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		parts = append(parts, fmt.Sprintf("[Source %d] %s: %s", i+1, item.Title, item.Snippet))
	}
	return strings.Join(parts, "\n\n")
}
