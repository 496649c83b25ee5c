package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// DeployRelations maps a deploy to the set of deploys it is related to.
// For the conflicts relation the map is symmetric; for the dependency
// relation it is directed: dependents ∈ DeployRelations[dependency], so
// rejecting the key forces rejecting every member of its value set.
// A deploy with no related deploys has no entry in the map.
type DeployRelations map[externalapi.DomainDeployID]deployset.DeploySet

// Clone returns a deep clone of the relation map
func (dr DeployRelations) Clone() DeployRelations {
	clone := make(DeployRelations, len(dr))
	for deployID, related := range dr {
		clone[deployID] = related.Clone()
	}
	return clone
}

// Equal returns whether this relation map and the given one contain the
// same keys with equal value sets
func (dr DeployRelations) Equal(other DeployRelations) bool {
	if len(dr) != len(other) {
		return false
	}

	for deployID, related := range dr {
		otherRelated, ok := other[deployID]
		if !ok || !related.Equal(otherRelated) {
			return false
		}
	}

	return true
}

// DeployPredicate is a binary relation over deploys supplied by an
// external collaborator. Evaluations may hit backing stores, hence the
// error return.
type DeployPredicate func(a, b *externalapi.DomainDeployID) (bool, error)

// ChannelValues maps mergeable channels to signed 64-bit values. It is
// used both for initial channel balances and for per-deploy diffs.
type ChannelValues map[externalapi.DomainChannelID]int64

// Clone returns a clone of ChannelValues
func (cv ChannelValues) Clone() ChannelValues {
	clone := make(ChannelValues, len(cv))
	for channelID, value := range cv {
		clone[channelID] = value
	}
	return clone
}

// DeployDiffs maps each deploy to its mergeable channel diffs. Deploys
// without mergeable diffs may be absent from the map.
type DeployDiffs map[externalapi.DomainDeployID]ChannelValues
