package strategy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calebtran/interview-agent/internal/db"
	"github.com/calebtran/interview-agent/internal/problems"
)

type fixedBank struct {
	problem *problems.Problem
	company string
}

func (f *fixedBank) RandomProblem(_ context.Context, companyName string) *problems.Problem {
	f.company = companyName
	return f.problem
}

func TestSelectorDispatch(t *testing.T) {
	sel := NewSelector(nil)

	assert.IsType(t, &Screening{}, sel.For(db.StepTypeScreening))
	assert.IsType(t, &Behavioral{}, sel.For(db.StepTypeBehavioral))
	assert.IsType(t, &Technical{}, sel.For(db.StepTypeTechnical))
	assert.IsType(t, &SystemDesign{}, sel.For(db.StepTypeSystemDesign))
}

func TestSelectorDefaultsToScreening(t *testing.T) {
	sel := NewSelector(nil)
	assert.IsType(t, &Screening{}, sel.For("unknown_stage"))
	assert.IsType(t, &Screening{}, sel.For(""))
}

func TestPromptIncludesRoleLevelInstruction(t *testing.T) {
	tests := []struct {
		roleLevel string
		want      string
	}{
		{db.RoleLevelJunior, "Candidate is Junior"},
		{db.RoleLevelMid, "Candidate is Mid-level"},
		{db.RoleLevelSenior, "Candidate is Senior"},
		{db.RoleLevelStaff, "Staff/Principal"},
		{db.RoleLevelPrincipal, "Staff/Principal"},
		{db.RoleLevelManager, "Engineering Manager"},
	}

	s := &Screening{}
	for _, tt := range tests {
		t.Run(tt.roleLevel, func(t *testing.T) {
			prompt := s.Prompt(context.Background(), "ctx", nil, "hi", tt.roleLevel)
			assert.Contains(t, prompt, tt.want)
			assert.Contains(t, prompt, strings.ToUpper(tt.roleLevel))
		})
	}
}

func TestPromptIncludesHistoryAndMessage(t *testing.T) {
	b := &Behavioral{}
	prompt := b.Prompt(context.Background(), "Job Title: SWE", []string{"user: hello", "assistant: hi"}, "my answer", db.RoleLevelMid)

	assert.Contains(t, prompt, "user: hello\nassistant: hi")
	assert.Contains(t, prompt, "User: my answer")
	assert.Contains(t, prompt, "STAR method")
}

func TestEvaluatePromptCarriesRubric(t *testing.T) {
	sel := NewSelector(nil)
	for _, stepType := range db.CanonicalStepOrder {
		prompt := sel.For(stepType).Evaluate("ctx", []string{"user: hi"})
		assert.Contains(t, prompt, "Bar Raiser")
		assert.Contains(t, prompt, "Strong No Hire, No Hire, Lean No Hire, Lean Hire, Hire, Strong Hire")
		assert.Contains(t, prompt, "**Score**: X/10")
	}
}

func TestTechnicalPromptProposesProblem(t *testing.T) {
	bank := &fixedBank{problem: &problems.Problem{Title: "Two Sum", Difficulty: "Easy", URL: "https://example.com/two-sum"}}
	tech := &Technical{Bank: bank}

	prompt := tech.Prompt(context.Background(), "Job Title: SWE\nCompany: Acme\nJD: x", nil, "ready", db.RoleLevelMid)

	assert.Equal(t, "Acme", bank.company)
	assert.Contains(t, prompt, "**Proposed Problem**: Two Sum (Easy)")
	assert.Contains(t, prompt, "https://example.com/two-sum")
}

func TestTechnicalPromptWithoutProblem(t *testing.T) {
	tech := &Technical{Bank: &fixedBank{}}
	prompt := tech.Prompt(context.Background(), "Company: Acme", nil, "ready", db.RoleLevelMid)
	assert.NotContains(t, prompt, "Proposed Problem")
}

func TestCompanyFromContextFallsBack(t *testing.T) {
	assert.Equal(t, "google", companyFromContext("no company line here"))
	assert.Equal(t, "Acme Corp", companyFromContext("Job Title: SWE\nCompany: Acme Corp\nJD: y"))
}
