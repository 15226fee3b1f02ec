package problems

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBank(t *testing.T, handler http.HandlerFunc) *Bank {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBank(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
}

func TestCompanyProblems(t *testing.T) {
	bank := newTestBank(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/acme-corp.csv", r.URL.Path)
		w.Write([]byte("Difficulty,Title,Link\nMedium,Two Sum,https://example.com/two-sum\nHard,LRU Cache,https://example.com/lru\n"))
	})

	problems, err := bank.CompanyProblems(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "Two Sum", problems[0].Title)
	assert.Equal(t, "https://example.com/two-sum", problems[0].URL)
	assert.Equal(t, "Hard", problems[1].Difficulty)
}

func TestRandomProblemMissingCompany(t *testing.T) {
	bank := newTestBank(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	assert.Nil(t, bank.RandomProblem(context.Background(), "nowhere"))
}

func TestRandomProblemPicksFromList(t *testing.T) {
	bank := newTestBank(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Difficulty,Title,Link\nEasy,Valid Anagram,https://example.com/anagram\n"))
	})

	p := bank.RandomProblem(context.Background(), "acme")
	require.NotNil(t, p)
	assert.Equal(t, "Valid Anagram", p.Title)
	assert.Equal(t, "Easy", p.Difficulty)
}

func TestParseCSVMalformed(t *testing.T) {
	bank := newTestBank(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not,a\nvalid\"csv"))
	})

	assert.Nil(t, bank.RandomProblem(context.Background(), "acme"))
}
