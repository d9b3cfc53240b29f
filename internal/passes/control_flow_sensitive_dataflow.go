package passes

import (
	"context"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgnode"
	"github.com/cpgkit/cpgkit/internal/passdesc"
)

// ControlFlowSensitiveDataFlow annotates the approximate DataFlowGraph edges
// with evaluation-order sensitivity: without an EOG, DataFlowGraph can only
// match a call's argument names against same-named declarations in scope,
// so a later statement's declaration could "flow" into an earlier call that
// merely shares a variable name. Once the evaluation-order graph exists,
// this pass counts exactly that class of edge on the producing declaration,
// in its "dfgOrderViolations" property, rather than removing it, since a
// DFG edge once recorded is not retractable through the node API. It is a soft
// dependent of both producers: if either was skipped there is nothing to
// check order against.
type ControlFlowSensitiveDataFlow struct{}

func (ControlFlowSensitiveDataFlow) Descriptor() passdesc.Descriptor {
	return passdesc.Descriptor{
		Name:     NameControlFlowSensitiveDataFlow,
		SoftDeps: []string{NameDataFlowGraph, NameEvaluationOrderGraph},
	}
}

func (ControlFlowSensitiveDataFlow) Accept(ctx context.Context, tc corectx.TranslationContext) error {
	arena := tc.Arena()
	eogOrder := make(map[cpgnode.Identity]int)
	order := 0
	for _, n := range arena.All() {
		for _, target := range n.Edges(cpgnode.EdgeEOG) {
			if _, seen := eogOrder[n.ID]; !seen {
				eogOrder[n.ID] = order
				order++
			}
			if _, seen := eogOrder[target]; !seen {
				eogOrder[target] = order
				order++
			}
		}
	}
	if len(eogOrder) == 0 {
		return nil
	}
	for _, n := range arena.All() {
		producerPos, ok := eogOrder[n.ID]
		if !ok {
			continue
		}
		violations := 0
		for _, consumer := range n.Edges(cpgnode.EdgeDFG) {
			if consumerPos, ok := eogOrder[consumer]; ok && consumerPos < producerPos {
				violations++
			}
		}
		if violations > 0 {
			n.Properties["dfgOrderViolations"] = violations
		}
	}
	return nil
}
