package overflowresolver

import (
	"math"
	"sort"

	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
	"github.com/bigsur-network/mergedag/domain/merger/utils/mathutil"
)

// overflowResolver augments rejection options with rejections forced by
// mergeable channel arithmetic
type overflowResolver struct {
}

// New instantiates a new OverflowResolver
func New() model.OverflowResolver {
	return &overflowResolver{}
}

// AddMergeableOverflowRejections folds, for every rejection option, the
// remaining candidate deploys onto the initial channel values and extends
// the option with each deploy whose fold would overflow a balance or
// drive it negative. The fold is greedy: deploys are attempted in
// ascending order of total absolute diff, and a failed deploy leaves the
// balances untouched for the deploys after it.
//
// With no options at all the whole conflict set is folded once and the
// result becomes the sole option.
func (or *overflowResolver) AddMergeableOverflowRejections(conflictSet deployset.DeploySet,
	options []deployset.DeploySet, initValues model.ChannelValues,
	diffs model.DeployDiffs) ([]deployset.DeploySet, error) {

	if len(options) == 0 {
		overflowRejections := or.foldRejections(conflictSet, initValues, diffs)
		return []deployset.DeploySet{overflowRejections}, nil
	}

	augmented := make([]deployset.DeploySet, 0, len(options))
	for _, option := range options {
		mergeCandidates := conflictSet.Subtract(option)
		overflowRejections := or.foldRejections(mergeCandidates, initValues, diffs)

		augmentedOption := option.Clone()
		augmentedOption.AddSet(overflowRejections)
		augmented = append(augmented, augmentedOption)
	}

	return augmented, nil
}

// foldRejections attempts to apply each candidate's diffs to the channel
// balances and returns the candidates whose application failed.
func (or *overflowResolver) foldRejections(candidates deployset.DeploySet,
	initValues model.ChannelValues, diffs model.DeployDiffs) deployset.DeploySet {

	balances := initValues.Clone()
	rejected := deployset.New()

	for _, deployID := range sortByAbsDiffSum(candidates, diffs) {
		if !or.tryApplyDeploy(balances, diffs[*deployID]) {
			rejected.Add(deployID)
		}
	}

	return rejected
}

// tryApplyDeploy applies the given diffs to balances. The application is
// atomic: on overflow or a negative intermediate balance nothing is
// committed and false is returned. An absent balance counts as zero.
func (or *overflowResolver) tryApplyDeploy(balances model.ChannelValues,
	deployDiffs model.ChannelValues) bool {

	updated := make(model.ChannelValues, len(deployDiffs))
	for channelID, diff := range deployDiffs {
		newBalance, ok := mathutil.CheckedAddInt64(balances[channelID], diff)
		if !ok || newBalance < 0 {
			return false
		}
		updated[channelID] = newBalance
	}

	for channelID, newBalance := range updated {
		balances[channelID] = newBalance
	}
	return true
}

// sortByAbsDiffSum orders the candidates ascending by the total absolute
// value of their diffs, deploy ID as tie-break. A deploy with no diffs
// sorts with key math.MinInt64, before everything else.
func sortByAbsDiffSum(candidates deployset.DeploySet, diffs model.DeployDiffs) []*externalapi.DomainDeployID {
	ordered := candidates.ToSortedSlice()

	sortKeys := make(map[externalapi.DomainDeployID]int64, len(ordered))
	for _, deployID := range ordered {
		sortKeys[*deployID] = absDiffSum(diffs[*deployID])
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return sortKeys[*ordered[i]] < sortKeys[*ordered[j]]
	})
	return ordered
}

func absDiffSum(deployDiffs model.ChannelValues) int64 {
	if len(deployDiffs) == 0 {
		return math.MinInt64
	}

	sum := int64(0)
	for _, diff := range deployDiffs {
		sum = mathutil.SaturatingAddInt64(sum, mathutil.AbsInt64(diff))
	}
	return sum
}
