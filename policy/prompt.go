package policy

import (
	"fmt"
	"strings"
)

// historyWindow bounds how many recent turns are shown to the model.
const historyWindow = 5

// buildPrompt renders the decision instruction for the model: recent
// history, current input, and the employee's ranked memory matches, followed
// by the ordered decision rules. The model must answer in the form
// "KEYWORD | user-facing reply".
func buildPrompt(in *Input) string {
	var b strings.Builder

	b.WriteString("You are an attendance manager agent.\n\n")

	b.WriteString("Conversation history:\n")
	history := in.History
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) == 0 {
		b.WriteString("(none)\n")
	}
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Text)
	}

	fmt.Fprintf(&b, "\nCurrent input: %q\n", in.Text)

	b.WriteString("\nPast memory for this employee (top matches):\n")
	if len(in.Matches) == 0 {
		b.WriteString("(no past records)\n")
	}
	for _, m := range in.Matches {
		fmt.Fprintf(&b, "- %q (score %.2f)\n", m.Text, m.Score)
	}

	b.WriteString(`
Goal: identify (1) the reason for lateness and (2) the mode of transport.

Steps:
1. If this is the start of the conversation (or the input is just "hi", "check in", "login") and the reason is missing: output: ASK_REASON | Why are you late?
2. If the reason for lateness is NOT in the history or input, output: ASK_REASON | Why are you late?
3. If the mode of transport is NOT in the history or input, output: ASK_TRANSPORT | How did you travel?
4. If BOTH reason and transport are clear, apply these rules:

   Rule A: count semantically similar past excuses (score > 0.60).
   Rule B: if count < 3: output: ESCALATE_TL | Reason logged. (If this is a first occurrence with a bus/traffic excuse, output: SUGGEST_TRAIN | <advice>.)
   Rule C: if count >= 3: output: ESCALATE_MANAGER | Limit exceeded. Escalating to Manager.

Return ONLY the decision keyword followed by a pipe | and the user-facing reply.
`)

	return b.String()
}
