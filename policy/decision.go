package policy

import (
	"strings"

	"github.com/autowhat/attendance-agent/core"
)

// ParseDecision turns raw model output into a typed Decision.
//
// The expected form is "KEYWORD | user-facing reply". The split is on the
// first pipe only; both sides are trimmed. A missing pipe or an unknown
// keyword degrades to LOG_ONLY, since malformed model output must never fail
// the turn.
func ParseDecision(raw, currentInput string) core.Decision {
	raw = strings.TrimSpace(raw)

	keyword, reply, found := strings.Cut(raw, "|")
	if !found {
		return core.Decision{
			Classification: core.LogOnly,
			Reply:          raw,
			RawInput:       currentInput,
		}
	}

	classification := core.Classification(strings.TrimSpace(keyword))
	reply = strings.TrimSpace(reply)

	if !classification.Valid() {
		classification = core.LogOnly
	}

	return core.Decision{
		Classification: classification,
		Reply:          reply,
		RawInput:       currentInput,
	}
}
