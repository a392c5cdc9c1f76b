// Package ai holds optional model-backed helpers that clean up raw table
// of contents lines before they are parsed.
package ai

import "context"

// Repairer normalizes raw TOC lines. Implementations must keep line order
// and return the input unchanged when they have nothing better.
type Repairer interface {
	RepairToC(ctx context.Context, raw []string) ([]string, error)
}

// Noop returns its input.
type Noop struct{}

func (Noop) RepairToC(ctx context.Context, raw []string) ([]string, error) { return raw, nil }
