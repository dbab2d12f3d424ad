// Package llm abstracts the text-generation service the decision policy
// consults. Failures are typed so callers can select a recovery strategy
// without inspecting error strings.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Kind discriminates generation failures.
type Kind int

const (
	// KindOther covers generic invocation failures.
	KindOther Kind = iota

	// KindRateLimited covers quota and rate-limit rejections.
	KindRateLimited
)

func (k Kind) String() string {
	if k == KindRateLimited {
		return "rate_limited"
	}
	return "other"
}

// GenerateError is a typed model invocation failure.
type GenerateError struct {
	Kind Kind
	Err  error
}

func (e *GenerateError) Error() string {
	return fmt.Sprintf("model invocation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is a rate-limit generation failure.
func IsRateLimited(err error) bool {
	var gerr *GenerateError
	return errors.As(err, &gerr) && gerr.Kind == KindRateLimited
}
