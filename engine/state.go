package engine

import (
	"strings"

	"github.com/autowhat/attendance-agent/core"
	"github.com/autowhat/attendance-agent/memory"
)

// historyWindow caps how many prior turns a pipeline invocation keeps.
const historyWindow = 5

// saveAggregateTurns is how many recent user turns are joined into one
// memory record, so a completed slot-filling conversation is remembered as
// a single coherent excuse.
const saveAggregateTurns = 3

// conversationState is the ephemeral state of one pipeline invocation.
// Stages attach fields in order; nothing set is ever removed. It is
// discarded once the reply is returned.
type conversationState struct {
	employeeID string
	input      string
	history    []core.Turn
	matches    []memory.Match
	decision   core.Decision
}

// newConversationState builds the state from the caller's prior history plus
// the current user turn, bounding the window to the most recent turns.
func newConversationState(employeeID, input string, prior []core.Turn) *conversationState {
	history := make([]core.Turn, 0, len(prior)+1)
	history = append(history, prior...)
	history = append(history, core.Turn{Role: core.RoleUser, Text: input})

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	return &conversationState{
		employeeID: employeeID,
		input:      input,
		history:    history,
	}
}

// saveText joins the last few user-turn texts into the record to persist.
func (s *conversationState) saveText() string {
	var userTexts []string
	for _, turn := range s.history {
		if turn.Role == core.RoleUser && turn.Text != "" {
			userTexts = append(userTexts, turn.Text)
		}
	}
	if len(userTexts) > saveAggregateTurns {
		userTexts = userTexts[len(userTexts)-saveAggregateTurns:]
	}
	return strings.Join(userTexts, " ")
}
