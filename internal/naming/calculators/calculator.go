// Package calculators implements the frame scorers and the root
// aggregator that together turn a resolved name into per-frame insights
// and one combined verdict.
//
// Every scorer implements the same two-phase node protocol: Visit records
// the node's insights into the evaluation context (forward pass), and
// Backward emits the node's signals, optionally folding in children's
// packets. The scorers here are siblings under one root, but the uniform
// interface lets new frames register without touching the aggregator's
// control flow.
package calculators

import (
	domain "github.com/ireum-lab/api/internal/domain"
)

// Calculator is one node in the evaluation graph.
type Calculator interface {
	// Frame identifies the node's primary frame.
	Frame() domain.FrameID
	// Visit computes and records the node's insights into the context.
	Visit(ctx *domain.EvalContext, name domain.ResolvedName)
	// Backward emits the node's outgoing signals. Leaf scorers receive
	// no child packets.
	Backward(ctx *domain.EvalContext, children []domain.CalculatorPacket) domain.CalculatorPacket
}

// Engine drives the fixed-order evaluation: visit every registered scorer,
// gather their packets, then let the root aggregate and record the overall
// insight. Registration order is part of the contract; insights for a
// frame registered twice are overwritten in order.
type Engine struct {
	scorers []Calculator
	root    *RootAggregator
}

// NewEngine builds an engine from an explicit scorer list and root.
func NewEngine(root *RootAggregator, scorers ...Calculator) *Engine {
	return &Engine{scorers: scorers, root: root}
}

// NewDefaultEngine wires the four standard frame scorers under a root
// aggregator with the default policy.
func NewDefaultEngine() *Engine {
	return NewEngine(
		NewRootAggregator(DefaultAggregationPolicy()),
		NewHangulCalculator(),
		NewHanjaCalculator(),
		NewSagyeokCalculator(),
		NewSajuCalculator(),
	)
}

// Evaluate runs the forward pass over every scorer, then the backward
// pass through the root. The context accumulates one insight per frame
// plus the overall insight.
func (e *Engine) Evaluate(ctx *domain.EvalContext, name domain.ResolvedName) domain.FrameInsight {
	packets := make([]domain.CalculatorPacket, 0, len(e.scorers))
	for _, s := range e.scorers {
		s.Visit(ctx, name)
	}
	for _, s := range e.scorers {
		packets = append(packets, s.Backward(ctx, nil))
	}
	e.root.Visit(ctx, name)
	e.root.Backward(ctx, packets)
	overall, _ := ctx.Insight(domain.FrameOverall)
	return overall
}
