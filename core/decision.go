package core

// Classification is the closed decision vocabulary of the attendance policy.
type Classification string

const (
	// AskReason prompts for the lateness reason (slot-filling).
	AskReason Classification = "ASK_REASON"

	// AskTransport prompts for the mode of transport (slot-filling).
	AskTransport Classification = "ASK_TRANSPORT"

	// EscalateTL notifies the team leader (routine escalation).
	EscalateTL Classification = "ESCALATE_TL"

	// EscalateManager notifies the manager (repeated-offense escalation).
	EscalateManager Classification = "ESCALATE_MANAGER"

	// SuggestTrain is a team-leader escalation carrying a transport
	// suggestion for a first occurrence with a mobility-related excuse.
	SuggestTrain Classification = "SUGGEST_TRAIN"

	// LogOnly is the catch-all for unparseable or informational turns.
	LogOnly Classification = "LOG_ONLY"
)

// Valid reports whether c is part of the decision vocabulary.
func (c Classification) Valid() bool {
	switch c {
	case AskReason, AskTransport, EscalateTL, EscalateManager, SuggestTrain, LogOnly:
		return true
	}
	return false
}

// SlotFilling reports whether c marks an incomplete turn that must not be
// written to long-term memory.
func (c Classification) SlotFilling() bool {
	return c == AskReason || c == AskTransport
}

// Decision is the output of the decision policy.
// Classification and Reply are always set together.
type Decision struct {
	Classification Classification
	Reply          string

	// RawInput carries the triggering user text for escalation payloads.
	RawInput string
}
