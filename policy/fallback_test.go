package policy

import (
	"testing"

	"github.com/autowhat/attendance-agent/core"
	"github.com/autowhat/attendance-agent/memory"
)

func matchesWithScores(scores ...float64) []memory.Match {
	matches := make([]memory.Match, 0, len(scores))
	for _, s := range scores {
		matches = append(matches, memory.Match{Text: "late because of traffic", Score: s})
	}
	return matches
}

func TestFallbackGreeting(t *testing.T) {
	tests := []struct {
		text string
		want core.Classification
	}{
		{"hi", core.AskReason},
		{"check-in", core.AskReason},
		{"check in", core.AskReason},
		{"login", core.AskReason},
		{"start shift", core.AskReason},
		// Three or more words is never a greeting, even with a token inside.
		{"hi I am late", core.EscalateTL},
		{"overslept", core.EscalateTL},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			dec := fallback(&Input{EmployeeID: "emp-1", Text: tt.text})
			if dec.Classification != tt.want {
				t.Errorf("fallback(%q) = %s, want %s", tt.text, dec.Classification, tt.want)
			}
		})
	}
}

func TestFallbackEscalationThresholds(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   core.Classification
	}{
		{"no priors", nil, core.EscalateTL},
		{"two priors stays with TL", []float64{0.9, 0.8}, core.EscalateTL},
		{"three priors goes to manager", []float64{0.9, 0.8, 0.7}, core.EscalateManager},
		// Exactly 0.60 does not count as a prior occurrence.
		{"boundary score excluded", []float64{0.60, 0.60, 0.60}, core.EscalateTL},
		{"just above boundary counts", []float64{0.6000001, 0.61, 0.62}, core.EscalateManager},
		{"low scores ignored", []float64{0.5, 0.3, 0.59, 0.9}, core.EscalateTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := fallback(&Input{
				EmployeeID: "emp-1",
				Text:       "I overslept again",
				Matches:    matchesWithScores(tt.scores...),
			})
			if dec.Classification != tt.want {
				t.Errorf("classification = %s, want %s", dec.Classification, tt.want)
			}
		})
	}
}

func TestFallbackTrainSuggestion(t *testing.T) {
	// First occurrence with a road-transport excuse gets the suggestion.
	dec := fallback(&Input{EmployeeID: "emp-1", Text: "I was stuck in traffic"})
	if dec.Classification != core.SuggestTrain {
		t.Fatalf("classification = %s, want %s", dec.Classification, core.SuggestTrain)
	}

	// Any prior occurrence disables it.
	dec = fallback(&Input{
		EmployeeID: "emp-1",
		Text:       "I was stuck in traffic",
		Matches:    matchesWithScores(0.9),
	})
	if dec.Classification != core.EscalateTL {
		t.Fatalf("classification with prior = %s, want %s", dec.Classification, core.EscalateTL)
	}

	// Non-mobility first occurrence goes straight to the team leader.
	dec = fallback(&Input{EmployeeID: "emp-1", Text: "my alarm did not ring"})
	if dec.Classification != core.EscalateTL {
		t.Fatalf("classification without keyword = %s, want %s", dec.Classification, core.EscalateTL)
	}
}
