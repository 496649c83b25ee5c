package model

import (
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/blockset"
)

// ScopeManager computes block scopes over the DAG relative to
// finalization fringes
type ScopeManager interface {
	// ConflictScope returns every block reachable from the given tips
	// that is neither in the latest fringe nor in its past.
	ConflictScope(tips, latestFringe []*externalapi.DomainBlockID) (blockset.BlockSet, error)

	// FinalScope returns the ring of finalized blocks between the lowest
	// fringe and the latest fringe, the latest fringe itself included.
	FinalScope(latestFringe, lowestFringe []*externalapi.DomainBlockID) (blockset.BlockSet, error)

	// LowestFringe picks, out of the given fringes, the one containing
	// the globally minimal block by (height, block ID). Calling it with
	// no fringes is a programmer error, reported as
	// ruleerrors.ErrEmptyFringeSet.
	LowestFringe(fringes [][]*externalapi.DomainBlockID) ([]*externalapi.DomainBlockID, error)
}
