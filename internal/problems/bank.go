// Package problems fetches company-tagged practice problems used by the
// technical interview stage.
package problems

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL points at the community-maintained company-wise problem lists.
const DefaultBaseURL = "https://raw.githubusercontent.com/liquidslr/leetcode-company-wise-problems/main/companies"

// Problem is one practice exercise from the bank.
type Problem struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Difficulty string `json:"difficulty"`
}

// Bank retrieves problems for a company. Lookups are best-effort: any fetch
// or parse failure yields an empty result, never an error surfaced to the
// conversation loop.
type Bank struct {
	baseURL string
	client  *http.Client
	rand    *rand.Rand
}

// Option customizes a Bank.
type Option func(*Bank)

// WithHTTPClient replaces the HTTP client (used in tests).
func WithHTTPClient(c *http.Client) Option {
	return func(b *Bank) { b.client = c }
}

// WithBaseURL replaces the CSV base URL (used in tests).
func WithBaseURL(u string) Option {
	return func(b *Bank) { b.baseURL = u }
}

// NewBank creates a problem bank.
func NewBank(opts ...Option) *Bank {
	b := &Bank{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CompanyProblems fetches all known problems for a company. The repo keys
// files by lowercased, hyphenated company name (google.csv, meta.csv).
func (b *Bank) CompanyProblems(ctx context.Context, companyName string) ([]Problem, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(companyName)), " ", "-")
	url := fmt.Sprintf("%s/%s.csv", b.baseURL, normalized)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch problems for %s: %w", companyName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("no problem list for %s (status %d)", companyName, resp.StatusCode)
	}

	return parseCSV(resp.Body)
}

// RandomProblem picks one problem for the company, or nil when none are
// available.
func (b *Bank) RandomProblem(ctx context.Context, companyName string) *Problem {
	problems, err := b.CompanyProblems(ctx, companyName)
	if err != nil {
		log.Printf("[problems] lookup failed for %q: %v", companyName, err)
		return nil
	}
	if len(problems) == 0 {
		return nil
	}
	p := problems[b.rand.Intn(len(problems))]
	return &p
}

func parseCSV(r io.Reader) ([]Problem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse problem CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Header row maps column names to indexes; the repo's CSVs are not
	// uniform across companies.
	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, name, fallback string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return fallback
		}
		return strings.TrimSpace(row[idx])
	}

	var problems []Problem
	for _, row := range records[1:] {
		p := Problem{
			Title:      field(row, "title", "Unknown"),
			URL:        field(row, "link", field(row, "url", "")),
			Difficulty: field(row, "difficulty", "Medium"),
		}
		problems = append(problems, p)
	}
	return problems, nil
}
