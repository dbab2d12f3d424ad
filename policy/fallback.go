package policy

import (
	"strings"

	"github.com/autowhat/attendance-agent/core"
)

// similarityThreshold is the strict lower bound for counting a past excuse
// as a prior occurrence. A score of exactly 0.60 does not count.
const similarityThreshold = 0.60

// escalationLimit is the prior-occurrence count at which the escalation
// moves from team leader to manager.
const escalationLimit = 3

// greetingTokens mark a check-in style opener with no reason attached.
var greetingTokens = []string{"check-in", "check in", "hi", "start", "login"}

// mobilityKeywords mark a road-transport excuse eligible for the train
// suggestion on a first occurrence.
var mobilityKeywords = []string{"bus", "traffic", "stuck", "road", "jam"}

// fallback is the deterministic decision path used when the model is
// unavailable. It re-implements the escalation-count rule against the
// already-retrieved matches, plus the short-greeting heuristic. It has no
// language-understanding step, so the reason/transport slot checks of the
// primary path are skipped (a known precision loss).
func fallback(in *Input) core.Decision {
	if isGreeting(in.Text) {
		return core.Decision{
			Classification: core.AskReason,
			Reply:          "Why are you late?",
			RawInput:       in.Text,
		}
	}

	prior := priorCount(in)

	switch {
	case prior == 0:
		if hasMobilityKeyword(in.Text) {
			return core.Decision{
				Classification: core.SuggestTrain,
				Reply:          "You might want to try the train next time to avoid traffic. TL notified.",
				RawInput:       in.Text,
			}
		}
		return core.Decision{
			Classification: core.EscalateTL,
			Reply:          "Reason logged. TL notified.",
			RawInput:       in.Text,
		}

	case prior < escalationLimit:
		return core.Decision{
			Classification: core.EscalateTL,
			Reply:          "Reason logged. TL notified.",
			RawInput:       in.Text,
		}

	default:
		return core.Decision{
			Classification: core.EscalateManager,
			Reply:          "Limit exceeded. Escalating to Manager.",
			RawInput:       in.Text,
		}
	}
}

// priorCount counts matches strictly above the similarity threshold.
func priorCount(in *Input) int {
	n := 0
	for _, m := range in.Matches {
		if m.Score > similarityThreshold {
			n++
		}
	}
	return n
}

// isGreeting reports whether text is a short check-in token: a known
// greeting substring combined with a word count under 3.
func isGreeting(text string) bool {
	lower := strings.ToLower(text)
	if len(strings.Fields(text)) >= 3 {
		return false
	}
	for _, token := range greetingTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// hasMobilityKeyword reports whether text mentions a road-transport issue.
func hasMobilityKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range mobilityKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
