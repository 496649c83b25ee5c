package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// OverflowResolver augments rejection options with rejections forced by
// mergeable channel arithmetic
type OverflowResolver interface {
	// AddMergeableOverflowRejections extends every rejection option with
	// the deploys whose acceptance would overflow a channel balance or
	// drive it negative. When no options are given the whole conflict set
	// is folded once against the initial values and the result is the
	// sole returned option.
	AddMergeableOverflowRejections(conflictSet deployset.DeploySet,
		options []deployset.DeploySet, initValues ChannelValues,
		diffs DeployDiffs) ([]deployset.DeploySet, error)
}
