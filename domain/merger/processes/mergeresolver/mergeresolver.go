package mergeresolver

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
)

// mergeResolver composes the scope, relation, enumeration and overflow
// processes into the full DAG merge resolution
type mergeResolver struct {
	dagTopologyManager model.DAGTopologyManager
	deployIndex        model.DeployIndex
	relationOracle     model.RelationOracle

	scopeManager        model.ScopeManager
	relationIndexer     model.RelationIndexer
	rejectionEnumerator model.RejectionEnumerator
	overflowResolver    model.OverflowResolver
}

// New instantiates a new MergeResolver
func New(
	dagTopologyManager model.DAGTopologyManager,
	deployIndex model.DeployIndex,
	relationOracle model.RelationOracle,

	scopeManager model.ScopeManager,
	relationIndexer model.RelationIndexer,
	rejectionEnumerator model.RejectionEnumerator,
	overflowResolver model.OverflowResolver) model.MergeResolver {

	return &mergeResolver{
		dagTopologyManager: dagTopologyManager,
		deployIndex:        deployIndex,
		relationOracle:     relationOracle,

		scopeManager:        scopeManager,
		relationIndexer:     relationIndexer,
		rejectionEnumerator: rejectionEnumerator,
		overflowResolver:    overflowResolver,
	}
}
