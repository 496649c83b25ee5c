package model

import "github.com/bigsur-network/mergedag/domain/merger/model/externalapi"

// RelationOracle answers the two binary relations over deploys that the
// execution layer derives from running them: conflicts and dependencies.
// Both relations are irreflexive; Conflicts is symmetric.
type RelationOracle interface {
	// Conflicts returns whether a and b cannot both be accepted.
	Conflicts(a, b *externalapi.DomainDeployID) (bool, error)

	// DependsOn returns whether dependent requires dependency, so that
	// rejecting dependency forces rejecting dependent.
	DependsOn(dependent, dependency *externalapi.DomainDeployID) (bool, error)
}
