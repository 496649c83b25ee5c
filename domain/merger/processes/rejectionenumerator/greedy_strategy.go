package rejectionenumerator

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// GreedyStrategy computes a single rejection option by repeatedly
// rejecting the deploy with the most remaining conflicts until no
// conflict edge is left. The resulting acceptance is conflict-free but
// not necessarily cost-optimal; use it when the conflict graph is too
// large for exact enumeration.
type GreedyStrategy struct {
}

// Name implements Strategy
func (gs *GreedyStrategy) Name() string {
	return "greedy"
}

type conflictEdge struct {
	a, b externalapi.DomainDeployID
}

// ComputeRejectionOptions implements Strategy
func (gs *GreedyStrategy) ComputeRejectionOptions(
	fullConflictsMap model.DeployRelations) ([]deployset.DeploySet, error) {

	edges := make([]conflictEdge, 0)
	for deployID, conflicting := range fullConflictsMap {
		for otherID := range conflicting {
			edges = append(edges, conflictEdge{a: deployID, b: otherID})
		}
	}
	if len(edges) == 0 {
		return nil, nil
	}

	rejected := deployset.New()
	for len(edges) > 0 {
		mostConflicting := pickMostConflicting(edges)
		rejected.Add(mostConflicting)

		remaining := edges[:0]
		for _, edge := range edges {
			if edge.a == *mostConflicting || edge.b == *mostConflicting {
				continue
			}
			remaining = append(remaining, edge)
		}
		edges = remaining
	}

	return []deployset.DeploySet{rejected}, nil
}

// pickMostConflicting returns the deploy covering the most remaining
// edges, ties broken by deploy-ID order.
func pickMostConflicting(edges []conflictEdge) *externalapi.DomainDeployID {
	degrees := make(map[externalapi.DomainDeployID]int)
	for _, edge := range edges {
		degrees[edge.a]++
		degrees[edge.b]++
	}

	var best *externalapi.DomainDeployID
	bestDegree := 0
	for deployID, degree := range degrees {
		deployIDCopy := deployID
		if best == nil || degree > bestDegree ||
			(degree == bestDegree && deployIDCopy.Less(best)) {
			best = &deployIDCopy
			bestDegree = degree
		}
	}

	return best
}
