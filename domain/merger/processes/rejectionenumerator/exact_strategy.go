package rejectionenumerator

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// ExactStrategy enumerates every rejection option: the complements of all
// maximal independent sets of the conflict graph. The search is
// exponential in the number of conflicting deploys, which is acceptable
// for the small conflict graphs blocks produce in practice.
type ExactStrategy struct {
}

// Name implements Strategy
func (es *ExactStrategy) Name() string {
	return "exact"
}

// searchState is one node of the breadth-first enumeration: the deploy
// about to be accepted together with the acceptance and rejection sets
// accumulated on the way to it.
type searchState struct {
	candidate *externalapi.DomainDeployID
	accepted  deployset.DeploySet
	rejected  deployset.DeploySet
}

// ComputeRejectionOptions implements Strategy.
//
// Each layer accepts the state's candidate, rejects the candidate's
// conflicts, and fans out one child state per remaining candidate. A
// state with no remaining candidates has reached a maximal independent
// set and emits its rejection set. States and emitted options are
// deduplicated along the way.
func (es *ExactStrategy) ComputeRejectionOptions(
	fullConflictsMap model.DeployRelations) ([]deployset.DeploySet, error) {

	keys := deployset.New()
	for deployID := range fullConflictsMap {
		deployIDCopy := deployID
		keys.Add(&deployIDCopy)
	}
	if keys.IsEmpty() {
		return nil, nil
	}

	frontier := make([]*searchState, 0, keys.Length())
	for _, deployID := range keys.ToSortedSlice() {
		frontier = append(frontier, &searchState{
			candidate: deployID,
			accepted:  deployset.New(),
			rejected:  deployset.New(),
		})
	}

	options := make([]deployset.DeploySet, 0)
	seenOptions := make(map[string]struct{})

	for len(frontier) > 0 {
		nextFrontier := make([]*searchState, 0, len(frontier))
		seenStates := make(map[string]struct{})

		for _, state := range frontier {
			accepted := state.accepted.Clone()
			accepted.Add(state.candidate)

			rejected := state.rejected.Clone()
			rejected.AddSet(fullConflictsMap[*state.candidate])

			nextCandidates := keys.Subtract(rejected).Subtract(accepted)

			if nextCandidates.IsEmpty() {
				optionKey := canonicalKey(rejected)
				if _, ok := seenOptions[optionKey]; !ok {
					seenOptions[optionKey] = struct{}{}
					options = append(options, rejected)
				}
				continue
			}

			stateKey := canonicalKey(accepted) + "|" + canonicalKey(rejected)
			if _, ok := seenStates[stateKey]; ok {
				continue
			}
			seenStates[stateKey] = struct{}{}

			for _, nextCandidate := range nextCandidates.ToSortedSlice() {
				nextFrontier = append(nextFrontier, &searchState{
					candidate: nextCandidate,
					accepted:  accepted,
					rejected:  rejected,
				})
			}
		}

		frontier = nextFrontier
	}

	return options, nil
}
