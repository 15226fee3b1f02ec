package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebtran/interview-agent/internal/problems"
)

// Screening verifies background, motivation, and basic fit.
type Screening struct{}

func (s *Screening) Prompt(_ context.Context, contextStr string, history []string, userMessage, roleLevel string) string {
	specific := `**Current Step: Screening Call**
- **Goal**: Verify background, motivation, and basic fit.
- **Focus**: Resume walkthrough, "Why us?", "Tell me about yourself".
- **Style**: Friendly, professional, and exploratory.
`
	return conversationPrompt(roleLevel, specific, contextStr, history, userMessage)
}

func (s *Screening) Evaluate(contextStr string, history []string) string {
	criteria := `- Did the candidate clearly explain their background?
- Is their experience relevant to the role?
- Did they show genuine interest in the company?
- Communication clarity and professionalism.`
	return evaluationPrompt("Screening Call (Resume, Background, Fit)", criteria, contextStr, history)
}

// Behavioral assesses soft skills, leadership, and culture fit.
type Behavioral struct{}

func (b *Behavioral) Prompt(_ context.Context, contextStr string, history []string, userMessage, roleLevel string) string {
	specific := `**Current Step: Behavioral Interview**
- **Goal**: Assess soft skills, leadership, and culture fit.
- **Focus**: STAR method questions (Situation, Task, Action, Result).
- **Style**: Inquisitive and focused on specific examples.
`
	return conversationPrompt(roleLevel, specific, contextStr, history, userMessage)
}

func (b *Behavioral) Evaluate(contextStr string, history []string) string {
	criteria := `- Did they use the STAR method?
- Did they demonstrate leadership/ownership?
- How did they handle conflict/challenges?
- Are they a culture add?`
	return evaluationPrompt("Behavioral Interview (STAR Method, Culture Fit)", criteria, contextStr, history)
}

// ProblemBank supplies one practice exercise per company for the technical
// stage.
type ProblemBank interface {
	RandomProblem(ctx context.Context, companyName string) *problems.Problem
}

// Technical assesses coding and problem-solving, proposing a company-tagged
// practice problem when one is available.
type Technical struct {
	Bank ProblemBank
}

func (t *Technical) Prompt(ctx context.Context, contextStr string, history []string, userMessage, roleLevel string) string {
	problemText := ""
	if t.Bank != nil {
		if p := t.Bank.RandomProblem(ctx, companyFromContext(contextStr)); p != nil {
			problemText = fmt.Sprintf("\n\n**Proposed Problem**: %s (%s)\nURL: %s\n\nIf you haven't already, propose this problem to the candidate.",
				p.Title, p.Difficulty, p.URL)
		}
	}

	specific := fmt.Sprintf(`**Current Step: Technical Interview (Data Structures & Algorithms)**
- **Goal**: Assess coding skills and problem-solving ability.
- **Focus**: Propose a coding problem relevant to the job description. Guide the candidate through solving it.
- **Style**: Collaborative but rigorous. Ask about time/space complexity.
%s
`, problemText)
	return conversationPrompt(roleLevel, specific, contextStr, history, userMessage)
}

func (t *Technical) Evaluate(contextStr string, history []string) string {
	criteria := `- Did they solve the problem?
- Was the code optimal (Time/Space complexity)?
- Did they handle edge cases?
- Did they communicate their thought process?
- Code quality and cleanliness.`
	return evaluationPrompt("Technical Interview (DS&A, Coding)", criteria, contextStr, history)
}

// SystemDesign assesses architectural thinking and scalability.
type SystemDesign struct{}

func (s *SystemDesign) Prompt(_ context.Context, contextStr string, history []string, userMessage, roleLevel string) string {
	specific := `**Current Step: System Design**
- **Goal**: Assess architectural thinking and scalability.
- **Focus**: Design a system (e.g., "Design Twitter"). Clarify requirements, high-level design, deep dive.
- **Style**: High-level, architectural, and trade-off focused.
`
	return conversationPrompt(roleLevel, specific, contextStr, history, userMessage)
}

func (s *SystemDesign) Evaluate(contextStr string, history []string) string {
	criteria := `- Did they clarify requirements?
- Is the high-level design sound?
- Did they choose appropriate technologies (DB, API, etc.)?
- Did they address bottlenecks and scalability?
- Trade-off analysis.`
	return evaluationPrompt("System Design (Scalability, Architecture)", criteria, contextStr, history)
}

// companyFromContext pulls the company name off the assembled context
// string, which always starts with "Job Title: ...\nCompany: ...".
func companyFromContext(contextStr string) string {
	for _, line := range strings.Split(contextStr, "\n") {
		if after, ok := strings.CutPrefix(line, "Company:"); ok {
			return strings.TrimSpace(after)
		}
	}
	return "google"
}
