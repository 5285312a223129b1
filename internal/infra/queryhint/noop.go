package queryhint

import (
	"context"

	"direct-admission/internal/usecase/search"
)

// NoOp never produces a hint. It is used when no provider is configured.
type NoOp struct{}

// NewNoOp creates a new NoOp parser.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// ParseQuery always returns a nil hint.
func (NoOp) ParseQuery(context.Context, string) (*search.QueryHint, error) {
	return nil, nil
}
