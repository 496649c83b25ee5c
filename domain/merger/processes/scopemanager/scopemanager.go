package scopemanager

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/blockset"
)

// scopeManager computes block scopes relative to finalization fringes
type scopeManager struct {
	dagTopologyManager model.DAGTopologyManager
}

// New instantiates a new ScopeManager
func New(dagTopologyManager model.DAGTopologyManager) model.ScopeManager {
	return &scopeManager{
		dagTopologyManager: dagTopologyManager,
	}
}

// pastOf returns the union of the strict pasts of the given blocks.
func (sm *scopeManager) pastOf(blockIDs []*externalapi.DomainBlockID) (blockset.BlockSet, error) {
	past := blockset.New()

	for _, blockID := range blockIDs {
		seen, err := sm.dagTopologyManager.Seen(blockID)
		if err != nil {
			return nil, err
		}
		past.AddSlice(seen)
	}

	return past, nil
}
