package mergeresolver

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/ruleerrors"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
	"github.com/bigsur-network/mergedag/infrastructure/logger"
	"github.com/pkg/errors"
)

// ResolveDAG computes the conflict scope of the given tips, gathers the
// deploys its blocks carry and resolves them into an accepted/rejected
// partition.
func (mr *mergeResolver) ResolveDAG(tips, latestFringe []*externalapi.DomainBlockID,
	acceptedFinally, rejectedFinally []*externalapi.DomainDeployID,
	initValues model.ChannelValues) (*externalapi.DagResolution, error) {

	onEnd := logger.LogAndMeasureExecutionTime(log, "ResolveDAG")
	defer onEnd()

	conflictScope, err := mr.scopeManager.ConflictScope(tips, latestFringe)
	if err != nil {
		return nil, err
	}

	conflictSet := deployset.New()
	for _, blockID := range conflictScope.ToSortedSlice() {
		blockDeploys, err := mr.deployIndex.BlockDeploys(blockID)
		if err != nil {
			return nil, err
		}
		for _, deploy := range blockDeploys {
			conflictSet.Add(deploy.DeployID)
		}
	}
	log.Debugf("Conflict scope spans %d blocks carrying %d deploys",
		conflictScope.Length(), conflictSet.Length())

	return mr.ResolveConflictSet(conflictSet,
		deployset.NewFromSlice(acceptedFinally...),
		deployset.NewFromSlice(rejectedFinally...),
		initValues)
}

// ResolveConflictSet resolves an already-computed conflict set against
// the finalized acceptance state and the initial channel values.
func (mr *mergeResolver) ResolveConflictSet(conflictSet, acceptedFinally, rejectedFinally deployset.DeploySet,
	initValues model.ChannelValues) (*externalapi.DagResolution, error) {

	conflictsWithFinalMap, err := mr.relationIndexer.BuildRelationMap(
		true, conflictSet, acceptedFinally, mr.conflictsPredicate())
	if err != nil {
		return nil, err
	}

	dependencyMap, err := mr.relationIndexer.BuildRelationMap(
		true, conflictSet, conflictSet.Union(rejectedFinally), mr.dependsPredicate())
	if err != nil {
		return nil, err
	}

	enforceRejected, err := mr.relationIndexer.IncompatibleWithFinal(
		acceptedFinally, rejectedFinally, conflictsWithFinalMap, dependencyMap)
	if err != nil {
		return nil, err
	}

	conflictSetCompatible := conflictSet.Subtract(enforceRejected)

	conflictsMap, err := mr.relationIndexer.BuildRelationMap(
		false, conflictSetCompatible, conflictSetCompatible, mr.conflictsPredicate())
	if err != nil {
		return nil, err
	}

	fullConflictsMap, err := mr.expandWithDependencies(conflictsMap, dependencyMap)
	if err != nil {
		return nil, err
	}

	options, err := mr.rejectionEnumerator.ComputeRejectionOptions(fullConflictsMap)
	if err != nil {
		return nil, err
	}
	log.Debugf("Enumerated %d rejection options over %d conflicting deploys",
		len(options), len(fullConflictsMap))

	costs, diffs, err := mr.deployData(conflictSet)
	if err != nil {
		return nil, err
	}

	options, err = mr.overflowResolver.AddMergeableOverflowRejections(
		conflictSetCompatible, options, initValues, diffs)
	if err != nil {
		return nil, err
	}

	optimalRejection, err := mr.ComputeOptimalRejection(options,
		func(deployID *externalapi.DomainDeployID) (uint64, error) {
			cost, ok := costs[*deployID]
			if !ok {
				return 0, errors.Wrapf(ruleerrors.ErrMissingDeployData,
					"no deploy data for %s", deployID)
			}
			return cost, nil
		})
	if err != nil {
		return nil, err
	}

	rejected := optimalRejection.Union(enforceRejected)
	accepted := conflictSetCompatible.Subtract(rejected)

	return &externalapi.DagResolution{
		Accepted: accepted.ToSortedSlice(),
		Rejected: rejected.ToSortedSlice(),
	}, nil
}

// expandWithDependencies replaces every value set of the conflicts map
// with its transitive dependency closure, so that an edge in the
// resulting map means "keeping both endpoints forces a contradiction,
// directly or via dependents".
func (mr *mergeResolver) expandWithDependencies(conflictsMap,
	dependencyMap model.DeployRelations) (model.DeployRelations, error) {

	fullConflictsMap := make(model.DeployRelations, len(conflictsMap))
	for deployID, conflicting := range conflictsMap {
		expanded, err := mr.relationIndexer.WithDependencies(conflicting, dependencyMap)
		if err != nil {
			return nil, err
		}
		fullConflictsMap[deployID] = expanded
	}

	return fullConflictsMap, nil
}

// deployData fetches the cost and mergeable diffs of every deploy in the
// given set from the deploy index.
func (mr *mergeResolver) deployData(deployIDs deployset.DeploySet) (
	map[externalapi.DomainDeployID]uint64, model.DeployDiffs, error) {

	costs := make(map[externalapi.DomainDeployID]uint64, deployIDs.Length())
	diffs := make(model.DeployDiffs, deployIDs.Length())

	for deployID := range deployIDs {
		deployIDCopy := deployID
		deploy, err := mr.deployIndex.Deploy(&deployIDCopy)
		if err != nil {
			return nil, nil, err
		}
		if deploy == nil {
			return nil, nil, errors.Wrapf(ruleerrors.ErrMissingDeployData,
				"no deploy data for %s", &deployIDCopy)
		}

		costs[deployIDCopy] = deploy.Cost
		if len(deploy.MergeableDiffs) > 0 {
			diffs[deployIDCopy] = deploy.MergeableDiffs
		}
	}

	return costs, diffs, nil
}

func (mr *mergeResolver) conflictsPredicate() model.DeployPredicate {
	return func(a, b *externalapi.DomainDeployID) (bool, error) {
		return mr.relationOracle.Conflicts(a, b)
	}
}

// dependsPredicate reads as "a depends on b", matching the relation-map
// convention that dependents sit in the value set of their dependency.
func (mr *mergeResolver) dependsPredicate() model.DeployPredicate {
	return func(a, b *externalapi.DomainDeployID) (bool, error) {
		return mr.relationOracle.DependsOn(a, b)
	}
}
