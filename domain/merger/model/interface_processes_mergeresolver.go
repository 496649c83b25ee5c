package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// MergeResolver decides which deploys of the DAG's unfinalized region are
// accepted into the merged state and which are rejected
type MergeResolver interface {
	// ResolveDAG computes the conflict scope from the given tips and
	// latest fringe, gathers its deploys and resolves them against the
	// finalized acceptance state and the initial channel values.
	ResolveDAG(tips, latestFringe []*externalapi.DomainBlockID,
		acceptedFinally, rejectedFinally []*externalapi.DomainDeployID,
		initValues ChannelValues) (*externalapi.DagResolution, error)

	// ResolveConflictSet resolves an already-computed conflict set.
	ResolveConflictSet(conflictSet, acceptedFinally, rejectedFinally deployset.DeploySet,
		initValues ChannelValues) (*externalapi.DagResolution, error)

	// ComputeOptimalRejection picks the rejection option minimizing
	// (total cost, cardinality, sorted members), lexicographically.
	ComputeOptimalRejection(options []deployset.DeploySet,
		cost func(*externalapi.DomainDeployID) (uint64, error)) (deployset.DeploySet, error)
}
