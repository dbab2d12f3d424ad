// Package engine sequences one attendance turn through the decision
// pipeline: memory search, reasoning, escalation, memory save. The stages
// run strictly in order with no branching back, and no stage failure ever
// deprives the caller of a reply.
package engine

import (
	"context"
	"fmt"
	"log"

	"github.com/autowhat/attendance-agent/core"
	"github.com/autowhat/attendance-agent/escalate"
	"github.com/autowhat/attendance-agent/memory"
	"github.com/autowhat/attendance-agent/policy"
)

// apologyReply is the generic failure reply; the employee always receives
// some response.
const apologyReply = "Sorry, something went wrong while processing your message. Please try again."

// Memory is the slice of the memory manager the pipeline needs.
type Memory interface {
	Save(ctx context.Context, employeeID, text string) error
	Search(ctx context.Context, employeeID, text string) ([]memory.Match, error)
}

// Engine runs the attendance pipeline. Construct one per process and reuse
// it across invocations; it holds only configured clients, never
// per-conversation state.
type Engine struct {
	policy     *policy.Policy
	memory     Memory
	dispatcher *escalate.Dispatcher
}

// Option configures the engine.
type Option func(*Engine)

// WithMemory attaches a memory manager. Without one the pipeline runs in
// degraded mode: empty matches, no saves.
func WithMemory(m Memory) Option {
	return func(e *Engine) {
		e.memory = m
	}
}

// WithDispatcher attaches an escalation dispatcher. Without one no
// notifications are sent.
func WithDispatcher(d *escalate.Dispatcher) Option {
	return func(e *Engine) {
		e.dispatcher = d
	}
}

// NewEngine creates an engine around the given decision policy.
func NewEngine(p *policy.Policy, opts ...Option) *Engine {
	e := &Engine{policy: p}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Input is one user turn entering the pipeline.
type Input struct {
	// EmployeeID is the stable identity owning this conversation's memory.
	EmployeeID string

	// Message is the current turn's raw text.
	Message string

	// History holds prior turns, most recent last. Only a recent window
	// is used.
	History []core.Turn
}

// Output is the pipeline's terminal result.
type Output struct {
	Reply          string
	Classification core.Classification

	// Notification is the escalation sent this turn, if any.
	Notification *core.Notification
}

// Run processes one turn start to finish. It returns an error only for
// invalid input; internal failures degrade per stage and still produce a
// reply.
func (e *Engine) Run(ctx context.Context, in *Input) (*Output, error) {
	if in == nil || in.EmployeeID == "" || in.Message == "" {
		return nil, fmt.Errorf("engine: employee ID and message are required")
	}
	if e.policy == nil {
		// Catastrophic misconfiguration still yields a reply.
		log.Printf("[PIPELINE] no policy configured")
		return &Output{Reply: apologyReply, Classification: core.LogOnly}, nil
	}

	state := newConversationState(in.EmployeeID, in.Message, in.History)

	e.searchMemory(ctx, state)
	e.reason(ctx, state)
	notification := e.escalateStage(ctx, state)
	e.saveMemory(ctx, state)

	return &Output{
		Reply:          state.decision.Reply,
		Classification: state.decision.Classification,
		Notification:   notification,
	}, nil
}

// searchMemory attaches the employee's ranked matches to the state.
// A missing manager or a failed search degrades to an empty match list.
func (e *Engine) searchMemory(ctx context.Context, state *conversationState) {
	log.Printf("[PIPELINE] searching memory for employee %s", state.employeeID)

	if e.memory == nil {
		log.Printf("[PIPELINE] memory manager not configured, continuing without matches")
		return
	}

	matches, err := e.memory.Search(ctx, state.employeeID, state.input)
	if err != nil {
		log.Printf("[PIPELINE] memory search failed, continuing without matches: %v", err)
		return
	}
	state.matches = matches
}

// reason attaches the policy decision to the state.
func (e *Engine) reason(ctx context.Context, state *conversationState) {
	log.Printf("[PIPELINE] reasoning over %d matches", len(state.matches))

	state.decision = e.policy.Decide(ctx, &policy.Input{
		EmployeeID: state.employeeID,
		Text:       state.input,
		History:    state.history,
		Matches:    state.matches,
	})

	log.Printf("[PIPELINE] decision %s for employee %s", state.decision.Classification, state.employeeID)
}

// escalateStage dispatches the notification the decision calls for and
// passes the reply through unchanged.
func (e *Engine) escalateStage(ctx context.Context, state *conversationState) *core.Notification {
	if e.dispatcher == nil {
		return nil
	}
	return e.dispatcher.Dispatch(ctx, state.employeeID, state.decision)
}

// saveMemory persists the turn. Slot-filling turns are skipped entirely,
// with no write and no embedding call, so partial conversations never pollute
// long-term memory. A failed save is logged and swallowed: the reply has
// already been produced and must still reach the employee.
func (e *Engine) saveMemory(ctx context.Context, state *conversationState) {
	if state.decision.Classification.SlotFilling() {
		log.Printf("[PIPELINE] skipping save (gathering info: %s)", state.decision.Classification)
		return
	}

	if e.memory == nil {
		return
	}

	text := state.saveText()
	if text == "" {
		return
	}

	if err := e.memory.Save(ctx, state.employeeID, text); err != nil {
		log.Printf("[PIPELINE] memory save failed: %v", err)
	}
}
