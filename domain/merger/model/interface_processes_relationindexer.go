package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// RelationIndexer builds relation maps from predicates and computes
// closures over them
type RelationIndexer interface {
	// BuildRelationMap returns a map whose key is a member of source and
	// whose value is every member of target related to it by pred, the
	// key itself excluded. In undirected mode the symmetric edges are
	// merged into the same map. Keys with no related members are absent.
	BuildRelationMap(directed bool, target, source deployset.DeploySet,
		pred DeployPredicate) (DeployRelations, error)

	// WithDependencies returns the given set unioned with its transitive
	// image under the directed dependency map. A cycle in the map is
	// reported as ruleerrors.ErrCyclicDependencies.
	WithDependencies(of deployset.DeploySet, dependencyMap DeployRelations) (deployset.DeploySet, error)

	// IncompatibleWithFinal returns the deploys that cannot be accepted
	// given the finalized acceptance state: conflicts of finally-accepted
	// deploys and dependents of finally-rejected deploys, closed over the
	// dependency relation.
	IncompatibleWithFinal(acceptedFinally, rejectedFinally deployset.DeploySet,
		conflictsMap, dependencyMap DeployRelations) (deployset.DeploySet, error)
}
