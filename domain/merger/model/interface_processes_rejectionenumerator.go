package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// RejectionEnumerator enumerates rejection options over a conflict graph
type RejectionEnumerator interface {
	// ComputeRejectionOptions returns, for the given conflict graph, sets
	// of deploys whose removal leaves the remainder conflict-free. How many
	// options are returned depends on the enumeration strategy: exact
	// enumeration returns the complements of all the graph's maximal
	// independent sets, the greedy strategy a single option. The edges
	// of fullConflictsMap must already incorporate dependency closure.
	// An empty map yields no options.
	ComputeRejectionOptions(fullConflictsMap DeployRelations) ([]deployset.DeploySet, error)
}
