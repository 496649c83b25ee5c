package merger

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/processes/branchpartitioner"
	"github.com/bigsur-network/mergedag/domain/merger/processes/mergeresolver"
	"github.com/bigsur-network/mergedag/domain/merger/processes/overflowresolver"
	"github.com/bigsur-network/mergedag/domain/merger/processes/rejectionenumerator"
	"github.com/bigsur-network/mergedag/domain/merger/processes/relationindexer"
	"github.com/bigsur-network/mergedag/domain/merger/processes/scopemanager"
)

// Factory instantiates new merge resolvers
type Factory interface {
	NewMergeResolver(dagTopologyManager model.DAGTopologyManager,
		deployIndex model.DeployIndex, relationOracle model.RelationOracle) model.MergeResolver
	NewBranchPartitioner() model.BranchPartitioner
	SetEnumerationStrategy(strategy rejectionenumerator.Strategy)
}

type factory struct {
	enumerationStrategy rejectionenumerator.Strategy
}

// NewFactory creates a new merge resolver factory. The default rejection
// enumeration strategy is the exact one; use SetEnumerationStrategy to
// trade optimality for speed on large conflict graphs.
func NewFactory() Factory {
	return &factory{
		enumerationStrategy: &rejectionenumerator.ExactStrategy{},
	}
}

// NewMergeResolver instantiates a MergeResolver wired to the given
// collaborators.
func (f *factory) NewMergeResolver(dagTopologyManager model.DAGTopologyManager,
	deployIndex model.DeployIndex, relationOracle model.RelationOracle) model.MergeResolver {

	relationIndexer := relationindexer.New()
	scopeManager := scopemanager.New(dagTopologyManager)
	rejectionEnumerator := rejectionenumerator.New(f.enumerationStrategy)
	overflowResolver := overflowresolver.New()

	return mergeresolver.New(
		dagTopologyManager,
		deployIndex,
		relationOracle,
		scopeManager,
		relationIndexer,
		rejectionEnumerator,
		overflowResolver)
}

// NewBranchPartitioner instantiates a BranchPartitioner.
func (f *factory) NewBranchPartitioner() model.BranchPartitioner {
	return branchpartitioner.New(relationindexer.New())
}

// SetEnumerationStrategy overrides the rejection enumeration strategy
// used by resolvers created after the call.
func (f *factory) SetEnumerationStrategy(strategy rejectionenumerator.Strategy) {
	f.enumerationStrategy = strategy
}
