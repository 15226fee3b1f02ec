// Package roadmap extracts the structured interview agenda that the model
// embeds in its replies as a <roadmap>...</roadmap> block.
package roadmap

import (
	"regexp"
	"strings"
)

var blockRe = regexp.MustCompile(`(?s)<roadmap>(.*?)</roadmap>`)

// Result holds the outcome of scanning a model reply for a roadmap block.
type Result struct {
	// Items is the parsed agenda, in order. Empty unless Found.
	Items []string
	// Visible is the reply text with the raw block rewritten into a
	// user-presentable "**Roadmap:** ..." line.
	Visible string
	// Found reports whether a roadmap block was present.
	Found bool
}

// Extract finds the first roadmap block in a model reply. The block content
// is split on commas and each item trimmed. The raw tags never reach the
// user: the matched block is replaced in the visible text with a plain
// "**Roadmap:** item1, item2" line. If no block is present the reply is
// returned untouched.
func Extract(response string) Result {
	m := blockRe.FindStringSubmatch(response)
	if m == nil {
		return Result{Visible: response}
	}

	inner := m[1]
	var items []string
	for _, part := range strings.Split(inner, ",") {
		items = append(items, strings.TrimSpace(part))
	}

	visible := strings.Replace(response, m[0], "**Roadmap:** "+inner+"\n", 1)
	return Result{Items: items, Visible: visible, Found: true}
}
