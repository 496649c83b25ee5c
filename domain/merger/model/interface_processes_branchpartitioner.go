package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// BranchPartitioner groups deploys into dependency branches
type BranchPartitioner interface {
	// ComputeBranches groups the target deploys by their transitive
	// dependency roots: each key is a deploy that depends on no other
	// member of target, and its value set holds all its transitive
	// dependents.
	ComputeBranches(target deployset.DeploySet, depends DeployPredicate) (DeployRelations, error)

	// ComputeGreedyNonIntersectingBranches partitions the target deploys
	// into disjoint branches, biggest branch first: each branch keeps
	// only the members not claimed by an earlier (larger) branch.
	ComputeGreedyNonIntersectingBranches(target deployset.DeploySet,
		depends DeployPredicate) ([]deployset.DeploySet, error)
}
