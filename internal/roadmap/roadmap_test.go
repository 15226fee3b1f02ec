package roadmap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantItems   []string
		wantVisible string
		wantFound   bool
	}{
		{
			name:        "block at start",
			input:       "<roadmap>A, B, C</roadmap>hello",
			wantItems:   []string{"A", "B", "C"},
			wantVisible: "**Roadmap:** A, B, C\nhello",
			wantFound:   true,
		},
		{
			name:        "block with surrounding text",
			input:       "Welcome! <roadmap>Intro, Resume walkthrough, Questions</roadmap> Let's begin.",
			wantItems:   []string{"Intro", "Resume walkthrough", "Questions"},
			wantVisible: "Welcome! **Roadmap:** Intro, Resume walkthrough, Questions\n Let's begin.",
			wantFound:   true,
		},
		{
			name:      "block spanning newlines",
			input:     "<roadmap>First,\nSecond,\nThird</roadmap>done",
			wantItems: []string{"First", "Second", "Third"},
			wantFound: true,
		},
		{
			name:        "no block leaves text untouched",
			input:       "Tell me about yourself.",
			wantVisible: "Tell me about yourself.",
			wantFound:   false,
		},
		{
			name:        "only first block is used",
			input:       "<roadmap>A, B</roadmap>mid<roadmap>C</roadmap>",
			wantItems:   []string{"A", "B"},
			wantVisible: "**Roadmap:** A, B\nmid<roadmap>C</roadmap>",
			wantFound:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			assert.Equal(t, tt.wantFound, got.Found)
			assert.Equal(t, tt.wantItems, got.Items)
			if tt.wantVisible != "" {
				assert.Equal(t, tt.wantVisible, got.Visible)
			}
		})
	}
}

func TestExtractRemovesRawTags(t *testing.T) {
	got := Extract("<roadmap>A, B, C</roadmap>hello")
	assert.False(t, strings.Contains(got.Visible, "<roadmap>"))
	assert.False(t, strings.Contains(got.Visible, "</roadmap>"))
}

func TestExtractIsIdempotentOnVisibleText(t *testing.T) {
	first := Extract("<roadmap>A, B, C</roadmap>hello")
	second := Extract(first.Visible)
	assert.False(t, second.Found)
	assert.Equal(t, first.Visible, second.Visible)
}
