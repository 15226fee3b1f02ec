// Package strategy supplies the stage-specific prompt and evaluation
// builders for each interview step type.
package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/calebtran/interview-agent/internal/db"
)

// Strategy builds the interviewer prompt and the evaluation prompt for one
// interview stage.
type Strategy interface {
	// Prompt builds the conversational prompt for a turn.
	Prompt(ctx context.Context, contextStr string, history []string, userMessage, roleLevel string) string
	// Evaluate builds the Bar Raiser evaluation prompt for a finished step.
	Evaluate(contextStr string, history []string) string
}

// Selector dispatches a step type to its strategy. Unrecognized step types
// fall back to screening.
type Selector struct {
	strategies map[string]Strategy
}

// NewSelector builds the fixed strategy set. The problem bank feeds the
// technical stage; it may be nil, in which case no exercise is proposed.
func NewSelector(bank ProblemBank) *Selector {
	return &Selector{
		strategies: map[string]Strategy{
			db.StepTypeScreening:    &Screening{},
			db.StepTypeBehavioral:   &Behavioral{},
			db.StepTypeTechnical:    &Technical{Bank: bank},
			db.StepTypeSystemDesign: &SystemDesign{},
		},
	}
}

// For returns the strategy for a step type, defaulting to screening.
func (s *Selector) For(stepType string) Strategy {
	if strat, ok := s.strategies[stepType]; ok {
		return strat
	}
	return s.strategies[db.StepTypeScreening]
}

// baseInstruction is the shared interviewer persona, specialized by the
// candidate's role level.
func baseInstruction(roleLevel string) string {
	var levelInstruction string
	switch roleLevel {
	case db.RoleLevelJunior:
		levelInstruction = "Candidate is Junior. Focus on fundamentals, potential, and ability to learn. Be helpful."
	case db.RoleLevelMid:
		levelInstruction = "Candidate is Mid-level. Expect solid execution, independence, and good communication."
	case db.RoleLevelSenior:
		levelInstruction = "Candidate is Senior. Expect system design depth, trade-off analysis, and leadership. Be rigorous."
	case db.RoleLevelStaff, db.RoleLevelPrincipal:
		levelInstruction = "Candidate is Staff/Principal. Focus heavily on architecture, scalability, business impact, and organizational influence."
	case db.RoleLevelManager:
		levelInstruction = "Candidate is Engineering Manager. Focus on people management, project delivery, and strategy."
	}

	return fmt.Sprintf(`You are an expert technical recruiter and interviewer, following the principles of "Cracking the Coding Interview".

**Role Level**: %s
%s
Respond as the interviewer.

Guidelines:
1. **Be conversational**: Respond naturally.
2. **Be concise**: Keep responses short (max 2-3 sentences).
3. **One thing at a time**: Ask only ONE question per response.
4. **Step-by-step**: Don't dump a huge problem statement.
5. **Formatting**: Use simple text.
`, strings.ToUpper(roleLevel), levelInstruction)
}

// evaluationInstruction is the shared Bar Raiser rubric.
const evaluationInstruction = `You are a critical "Bar Raiser" interviewer. Your job is to evaluate the candidate's performance in this step.

**CRITICAL INSTRUCTIONS**:
1. **Be Brutally Honest**: Do not sugarcoat. Identify every weakness.
2. **Score**: Assign a score from 0 to 10 based on industry standards (FAANG level).
3. **Verdict**: Must be one of: Strong No Hire, No Hire, Lean No Hire, Lean Hire, Hire, Strong Hire.
4. **Format**:
    - **Score**: X/10
    - **Verdict**: [Verdict]
    - **Pros**: [Bullet points]
    - **Cons**: [Bullet points]
    - **Detailed Feedback**: [Paragraph]
`

// conversationPrompt assembles the common layout shared by all stages.
func conversationPrompt(roleLevel, specificInstruction, contextStr string, history []string, userMessage string) string {
	return fmt.Sprintf("%s\n%s\nContext: %s\nCurrent conversation history:\n%s\nUser: %s",
		baseInstruction(roleLevel), specificInstruction, contextStr,
		strings.Join(history, "\n"), userMessage)
}

// evaluationPrompt assembles the common evaluation layout.
func evaluationPrompt(stepFocus, criteria, contextStr string, history []string) string {
	return fmt.Sprintf(`%s

**Step Focus**: %s

**Evaluation Criteria**:
%s

Context: %s
Conversation History: %s
`, evaluationInstruction, stepFocus, criteria, contextStr, strings.Join(history, "\n"))
}
