package model

import "github.com/bigsur-network/mergedag/domain/merger/model/externalapi"

// DAGTopologyManager exposes ancestry queries over the block DAG. It is
// implemented by the surrounding node; the resolver only reads from it.
type DAGTopologyManager interface {
	// Seen returns the strict ancestors of the given block: every block
	// reachable from it through parent edges, the block itself excluded.
	Seen(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainBlockID, error)

	// BlockHeight returns the height of the given block.
	BlockHeight(blockID *externalapi.DomainBlockID) (int64, error)
}
