package scopemanager

import (
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/ruleerrors"
	"github.com/bigsur-network/mergedag/domain/merger/utils/blockset"
	"github.com/pkg/errors"
)

// ConflictScope returns every block reachable from the tips that is
// neither a member of the latest fringe nor in its past. Seen is strict
// (non-reflexive), so the tips and the fringe blocks are unioned in
// explicitly.
func (sm *scopeManager) ConflictScope(tips, latestFringe []*externalapi.DomainBlockID) (blockset.BlockSet, error) {
	tipsPast, err := sm.pastOf(tips)
	if err != nil {
		return nil, err
	}
	reachable := tipsPast
	reachable.AddSlice(tips)

	fringePast, err := sm.pastOf(latestFringe)
	if err != nil {
		return nil, err
	}
	finalized := fringePast
	finalized.AddSlice(latestFringe)

	return reachable.Subtract(finalized), nil
}

// FinalScope returns the ring of finalized blocks between the lowest
// fringe and the latest fringe, the latest fringe itself included.
func (sm *scopeManager) FinalScope(latestFringe, lowestFringe []*externalapi.DomainBlockID) (blockset.BlockSet, error) {
	latestPast, err := sm.pastOf(latestFringe)
	if err != nil {
		return nil, err
	}

	lowestPast, err := sm.pastOf(lowestFringe)
	if err != nil {
		return nil, err
	}

	scope := latestPast.Subtract(lowestPast)
	scope.AddSlice(latestFringe)
	return scope, nil
}

// LowestFringe picks the fringe containing the globally minimal block by
// (height, block ID). A single fringe is returned as-is. Ties between
// fringes sharing their minimal block resolve to the earliest fringe in
// the given order.
func (sm *scopeManager) LowestFringe(fringes [][]*externalapi.DomainBlockID) ([]*externalapi.DomainBlockID, error) {
	if len(fringes) == 0 {
		return nil, errors.WithStack(ruleerrors.ErrEmptyFringeSet)
	}
	if len(fringes) == 1 {
		return fringes[0], nil
	}

	var lowestFringe []*externalapi.DomainBlockID
	var lowestBlockID *externalapi.DomainBlockID
	var lowestHeight int64

	for _, fringe := range fringes {
		minBlockID, minHeight, err := sm.minimalBlock(fringe)
		if err != nil {
			return nil, err
		}
		if minBlockID == nil {
			continue
		}

		if lowestBlockID == nil || blockLess(minHeight, minBlockID, lowestHeight, lowestBlockID) {
			lowestFringe = fringe
			lowestBlockID = minBlockID
			lowestHeight = minHeight
		}
	}

	if lowestBlockID == nil {
		return nil, errors.WithStack(ruleerrors.ErrEmptyFringeSet)
	}
	return lowestFringe, nil
}

// minimalBlock returns the minimal member of the fringe by (height, ID),
// or nil for an empty fringe.
func (sm *scopeManager) minimalBlock(fringe []*externalapi.DomainBlockID) (
	*externalapi.DomainBlockID, int64, error) {

	var minBlockID *externalapi.DomainBlockID
	var minHeight int64

	for _, blockID := range fringe {
		height, err := sm.dagTopologyManager.BlockHeight(blockID)
		if err != nil {
			return nil, 0, err
		}
		if minBlockID == nil || blockLess(height, blockID, minHeight, minBlockID) {
			minBlockID = blockID
			minHeight = height
		}
	}

	return minBlockID, minHeight, nil
}

func blockLess(heightA int64, blockIDA *externalapi.DomainBlockID,
	heightB int64, blockIDB *externalapi.DomainBlockID) bool {

	if heightA != heightB {
		return heightA < heightB
	}
	return blockIDA.Less(blockIDB)
}
