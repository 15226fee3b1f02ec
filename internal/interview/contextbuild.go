package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebtran/interview-agent/internal/db"
)

// Prompt-size bounds for assembled context. External context entries are
// folded in as 500-character snippets; the resume contributes at most 2000
// characters.
const (
	contextSnippetLimit = 500
	resumeContentLimit  = 2000
	historyWindow       = 10
)

// buildContextString assembles the background block every prompt carries:
// job facts, context-entry snippets, and the candidate's latest resume.
func (e *Engine) buildContextString(ctx context.Context, session *db.Session) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Job Title: %s\nCompany: %s\nJD: %s\n",
		session.JobTitle, session.CompanyName, session.JDContent)

	entries, err := e.store.ListContext(ctx, session.ID)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		fmt.Fprintf(&b, "\nSource (%s): %s", entry.Source, truncate(entry.Content, contextSnippetLimit))
	}

	resume, err := e.store.LatestResume(ctx, session.UserID)
	if err != nil {
		return "", err
	}
	if resume != nil && resume.ParsedContent != "" {
		fmt.Fprintf(&b, "\n\nCandidate Resume:\n%s", truncate(resume.ParsedContent, resumeContentLimit))
	}

	return b.String(), nil
}

// historyLines renders the non-system log entries as "role: content" lines.
func historyLines(log []db.LogEntry) []string {
	var lines []string
	for _, entry := range log {
		if entry.Role == db.RoleSystem {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Role, entry.Content))
	}
	return lines
}

// lastN keeps the most recent n lines, dropping the oldest first.
func lastN(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
