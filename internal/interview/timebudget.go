package interview

import (
	"fmt"
	"strings"
	"time"
)

// EndOfTimeMessage is appended verbatim when a message arrives after the
// step's deadline. No AI call is made in that case.
const EndOfTimeMessage = "The interview time for this step has ended. Please proceed to the next step."

// wrapUpThresholdMinutes is the remaining-time boundary below which the
// model is told to stop opening new topics.
const wrapUpThresholdMinutes = 5

// timeBudget derives the deadline and remaining whole minutes for a step.
// startedAt falls back to the session creation time for steps persisted
// before activation timestamps existed.
type timeBudget struct {
	deadline  time.Time
	remaining int
	expired   bool
}

func computeTimeBudget(now, start time.Time, durationMinutes int) timeBudget {
	deadline := start.Add(time.Duration(durationMinutes) * time.Minute)
	if now.After(deadline) {
		return timeBudget{deadline: deadline, expired: true}
	}

	remaining := int(deadline.Sub(now).Minutes())
	if remaining < 0 {
		remaining = 0
	}
	return timeBudget{deadline: deadline, remaining: remaining}
}

// timeInstruction renders the urgency addendum for the prompt.
func timeInstruction(remainingMinutes int) string {
	instruction := fmt.Sprintf("\nREMAINING TIME: %d minutes.\n", remainingMinutes)
	if remainingMinutes < wrapUpThresholdMinutes {
		instruction += "WARNING: Time is running out. Skip less important topics. Wrap up the current topic and move to the conclusion. DO NOT ask new deep questions.\n"
	} else {
		instruction += "Manage your time to cover all roadmap items.\n"
	}
	return instruction
}

// roadmapInstruction renders the agenda addendum: follow an existing
// roadmap, or (only on a step's very first turn) ask the model to emit one.
func roadmapInstruction(roadmap []string, historyLen int) string {
	if len(roadmap) > 0 {
		return fmt.Sprintf("\nCURRENT ROADMAP: %s\nEnsure you are following this roadmap. Move to the next item if the current one is sufficiently covered.\n",
			strings.Join(roadmap, ", "))
	}
	if historyLen == 0 {
		return "\nTASK: Create a concise 3-5 item roadmap for this interview step based on the duration. List the roadmap items at the start of your response in a block like <roadmap>Item 1, Item 2, Item 3</roadmap>.\n"
	}
	return ""
}
