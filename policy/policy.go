// Package policy classifies an attendance turn into a decision: prompt for
// missing slots, escalate to the team leader, or escalate to the manager.
//
// The primary strategy consults a text-generation model. When the model is
// unavailable for any reason the deterministic fallback takes over, so the
// policy never fails upward: the caller always gets a Decision.
package policy

import (
	"context"
	"log"

	"github.com/autowhat/attendance-agent/core"
	"github.com/autowhat/attendance-agent/llm"
	"github.com/autowhat/attendance-agent/memory"
)

// DefaultErrorLogPath is where model failures are appended unless
// configured otherwise.
const DefaultErrorLogPath = "llm_error.txt"

// Input carries everything a single classification needs.
type Input struct {
	EmployeeID string
	Text       string
	History    []core.Turn
	Matches    []memory.Match
}

// Policy decides what to do with an attendance turn.
type Policy struct {
	gen    llm.Generator
	errLog *ErrorLog
}

// Option configures the policy.
type Option func(*Policy)

// WithErrorLog overrides the append-only model failure log.
func WithErrorLog(l *ErrorLog) Option {
	return func(p *Policy) {
		p.errLog = l
	}
}

// New creates a Policy backed by gen.
func New(gen llm.Generator, opts ...Option) *Policy {
	p := &Policy{
		gen:    gen,
		errLog: NewErrorLog(DefaultErrorLogPath),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Decide returns a Decision for the turn. It never returns an error: model
// failures switch to the deterministic fallback, and malformed model output
// degrades to LOG_ONLY inside the parser.
func (p *Policy) Decide(ctx context.Context, in *Input) core.Decision {
	if p.gen == nil {
		log.Printf("[POLICY] no generator configured, using deterministic fallback")
		return fallback(in)
	}

	raw, err := p.gen.Generate(ctx, buildPrompt(in))
	if err != nil {
		// Rate limits are logged distinctly: they are expected on free
		// tiers and say nothing about the prompt.
		if llm.IsRateLimited(err) {
			log.Printf("[POLICY] model rate limited, switching to fallback: %v", err)
		} else {
			log.Printf("[POLICY] model invocation failed, switching to fallback: %v", err)
		}
		p.errLog.Append(err.Error())
		return fallback(in)
	}

	return ParseDecision(raw, in.Text)
}
