// Package scraper implements the web and discussion search collaborators
// that enrich a session's context. All lookups are soft: failures yield
// empty text, never an error that reaches the conversation loop.
package scraper

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/calebtran/interview-agent/internal/fetch"
)

// searchItem is one web search hit.
type searchItem struct {
	Title   string
	Snippet string
	Link    string
}

// searchFunc performs a web search. Replaceable in tests.
type searchFunc func(ctx context.Context, query string, num int64) ([]searchItem, error)

// Scraper bundles URL scraping and company/discussion search.
type Scraper struct {
	search     searchFunc // nil when no search credential is configured
	fetchOpts  *fetch.Options
	useBrowser bool
}

// Option customizes a Scraper.
type Option func(*Scraper)

// WithFetchOptions replaces the HTTP fetch options (used in tests).
func WithFetchOptions(opts *fetch.Options) Option {
	return func(s *Scraper) { s.fetchOpts = opts }
}

// WithBrowserFallback enables headless-browser rendering for pages whose
// plain HTTP fetch yields too little text.
func WithBrowserFallback(enabled bool) Option {
	return func(s *Scraper) { s.useBrowser = enabled }
}

// withSearch replaces the search implementation (used in tests).
func withSearch(fn searchFunc) Option {
	return func(s *Scraper) { s.search = fn }
}

// New creates a scraper. An empty API key or engine ID leaves search
// unconfigured; search-backed lookups then return empty text.
func New(ctx context.Context, apiKey, searchEngineID string, opts ...Option) (*Scraper, error) {
	s := &Scraper{fetchOpts: fetch.DefaultOptions()}

	if apiKey != "" && searchEngineID != "" {
		svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create customsearch service: %w", err)
		}
		s.search = func(ctx context.Context, query string, num int64) ([]searchItem, error) {
			resp, err := svc.Cse.List().Cx(searchEngineID).Q(query).Num(num).Context(ctx).Do()
			if err != nil {
				return nil, err
			}
			var items []searchItem
			for _, item := range resp.Items {
				items = append(items, searchItem{Title: item.Title, Snippet: item.Snippet, Link: item.Link})
			}
			return items, nil
		}
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ScrapeURL fetches a page and returns its main text. Returns empty text
// on any failure.
func (s *Scraper) ScrapeURL(ctx context.Context, url string) string {
	result, err := fetch.URL(ctx, url, s.fetchOpts)
	if err != nil {
		log.Printf("[scraper] fetch failed for %s: %v", url, err)
		return ""
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.DefaultTextSelectors())
	if err != nil {
		log.Printf("[scraper] extraction failed for %s: %v", url, err)
		return ""
	}

	if s.useBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.WithBrowser(ctx, url, 30*time.Second)
		if err != nil {
			log.Printf("[scraper] browser fallback failed for %s: %v", url, err)
			return text
		}
		if rendered, err := fetch.ExtractMainText(html, fetch.DefaultTextSelectors()); err == nil && len(rendered) > len(text) {
			return rendered
		}
	}

	return text
}

// ScrapeReddit searches discussion threads for a query and returns a digest
// of the top hits. Returns empty text when search is unconfigured or fails.
func (s *Scraper) ScrapeReddit(ctx context.Context, query string) string {
	if s.search == nil {
		return ""
	}

	items, err := s.search(ctx, "site:reddit.com "+query, 5)
	if err != nil {
		log.Printf("[scraper] reddit search failed for %q: %v", query, err)
		return ""
	}
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Reddit discussions for %q:\n", query)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %s (%s)\n", item.Title, item.Snippet, item.Link)
	}
	return b.String()
}

// SearchCompany searches for a company's careers/interview pages and
// returns a snippet summary. Returns empty text when search is
// unconfigured or fails.
func (s *Scraper) SearchCompany(ctx context.Context, companyName string) string {
	if s.search == nil {
		return ""
	}

	items, err := s.search(ctx, companyName+" careers about interview process", 3)
	if err != nil {
		log.Printf("[scraper] company search failed for %q: %v", companyName, err)
		return ""
	}
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Information about %s:\n", companyName)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s: %s\n", item.Title, item.Snippet)
	}
	return b.String()
}
