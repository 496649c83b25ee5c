package branchpartitioner

import (
	"sort"

	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// branchPartitioner groups deploys into dependency branches
type branchPartitioner struct {
	relationIndexer model.RelationIndexer
}

// New instantiates a new BranchPartitioner
func New(relationIndexer model.RelationIndexer) model.BranchPartitioner {
	return &branchPartitioner{
		relationIndexer: relationIndexer,
	}
}

// ComputeBranches builds the directed dependency map over target×target
// and folds chained roots together: a root that itself depends on another
// root hands its dependents over and disappears as a key. Deploys that
// take part in no dependency at all get an empty bucket of their own, so
// every member of target lands in at least one branch. A deploy depending
// on several roots sits in each of their buckets.
func (bp *branchPartitioner) ComputeBranches(target deployset.DeploySet,
	depends model.DeployPredicate) (model.DeployRelations, error) {

	branches, err := bp.relationIndexer.BuildRelationMap(true, target, target, depends)
	if err != nil {
		return nil, err
	}

	for bp.mergeChainedRoot(branches) {
	}

	for deployID := range target {
		deployIDCopy := deployID
		if bp.appearsInBranches(branches, &deployIDCopy) {
			continue
		}
		branches[deployIDCopy] = deployset.New()
	}

	return branches, nil
}

// mergeChainedRoot finds one root that is itself a dependent of another
// root, merges its bucket into that root's bucket and drops it. Roots are
// scanned in deploy-ID order to keep the fold deterministic. Returns
// whether a merge happened.
func (bp *branchPartitioner) mergeChainedRoot(branches model.DeployRelations) bool {
	roots := sortedRoots(branches)

	for _, root := range roots {
		for _, parentRoot := range roots {
			if parentRoot.Equal(root) {
				continue
			}
			parentDependents, ok := branches[*parentRoot]
			if !ok {
				continue
			}
			if !parentDependents.Contains(root) {
				continue
			}

			parentDependents.AddSet(branches[*root])
			delete(branches, *root)
			return true
		}
	}

	return false
}

func (bp *branchPartitioner) appearsInBranches(branches model.DeployRelations,
	deployID *externalapi.DomainDeployID) bool {

	if _, ok := branches[*deployID]; ok {
		return true
	}
	for _, dependents := range branches {
		if dependents.Contains(deployID) {
			return true
		}
	}
	return false
}

// ComputeGreedyNonIntersectingBranches turns the branch buckets into
// full branch sets (root included) and orders them biggest first with the
// root ID as tie-break before partitioning the scope.
func (bp *branchPartitioner) ComputeGreedyNonIntersectingBranches(target deployset.DeploySet,
	depends model.DeployPredicate) ([]deployset.DeploySet, error) {

	branchMap, err := bp.ComputeBranches(target, depends)
	if err != nil {
		return nil, err
	}

	type branch struct {
		rootID  *externalapi.DomainDeployID
		members deployset.DeploySet
	}

	branches := make([]branch, 0, len(branchMap))
	for rootID, dependents := range branchMap {
		rootIDCopy := rootID
		members := dependents.Clone()
		members.Add(&rootIDCopy)
		branches = append(branches, branch{rootID: &rootIDCopy, members: members})
	}

	sort.Slice(branches, func(i, j int) bool {
		if branches[i].members.Length() != branches[j].members.Length() {
			return branches[i].members.Length() > branches[j].members.Length()
		}
		return branches[i].rootID.Less(branches[j].rootID)
	})

	ordered := make([]deployset.DeploySet, 0, len(branches))
	for _, b := range branches {
		ordered = append(ordered, b.members)
	}

	return partitionScope(ordered), nil
}

// partitionScope walks the ordered branches and keeps, for each, only the
// members not claimed by an earlier branch. Branches emptied out by the
// subtraction are dropped.
func partitionScope(orderedBranches []deployset.DeploySet) []deployset.DeploySet {
	taken := deployset.New()
	partition := make([]deployset.DeploySet, 0, len(orderedBranches))

	for _, branchMembers := range orderedBranches {
		remaining := branchMembers.Subtract(taken)
		if remaining.IsEmpty() {
			continue
		}
		taken.AddSet(remaining)
		partition = append(partition, remaining)
	}

	return partition
}

func sortedRoots(branches model.DeployRelations) []*externalapi.DomainDeployID {
	roots := deployset.New()
	for rootID := range branches {
		rootIDCopy := rootID
		roots.Add(&rootIDCopy)
	}
	return roots.ToSortedSlice()
}
