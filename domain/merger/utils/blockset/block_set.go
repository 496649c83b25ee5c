package blockset

import (
	"sort"
	"strings"

	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
)

// BlockSet is an unordered set of block IDs
type BlockSet map[externalapi.DomainBlockID]struct{}

// New creates and returns an empty BlockSet
func New() BlockSet {
	return BlockSet{}
}

// NewFromSlice creates and returns a BlockSet with given block IDs
func NewFromSlice(blockIDs ...*externalapi.DomainBlockID) BlockSet {
	set := New()

	for _, blockID := range blockIDs {
		set.Add(blockID)
	}

	return set
}

func (bs BlockSet) String() string {
	blockIDStrings := make([]string, 0, len(bs))
	for blockID := range bs {
		blockIDStrings = append(blockIDStrings, blockID.String())
	}
	sort.Strings(blockIDStrings)
	return strings.Join(blockIDStrings, ", ")
}

// Add appends a block ID to this set. If the ID is already in the set,
// this is a no-op
func (bs BlockSet) Add(blockID *externalapi.DomainBlockID) {
	bs[*blockID] = struct{}{}
}

// AddSet appends all members of the given set to this set
func (bs BlockSet) AddSet(other BlockSet) {
	for blockID := range other {
		bs[blockID] = struct{}{}
	}
}

// AddSlice appends all block IDs in the given slice to this set
func (bs BlockSet) AddSlice(blockIDs []*externalapi.DomainBlockID) {
	for _, blockID := range blockIDs {
		bs.Add(blockID)
	}
}

// Remove removes a block ID from this set. If the ID is not in the set,
// this is a no-op
func (bs BlockSet) Remove(blockID *externalapi.DomainBlockID) {
	delete(bs, *blockID)
}

// Contains returns whether the given block ID is in the set
func (bs BlockSet) Contains(blockID *externalapi.DomainBlockID) bool {
	_, ok := bs[*blockID]
	return ok
}

// Subtract creates and returns a set that contains all members of this
// set minus the members of the given set
func (bs BlockSet) Subtract(other BlockSet) BlockSet {
	diff := New()

	for blockID := range bs {
		if !other.Contains(&blockID) {
			diff.Add(&blockID)
		}
	}

	return diff
}

// Union creates and returns a set that contains the members of this set
// and the members of the given set
func (bs BlockSet) Union(other BlockSet) BlockSet {
	union := bs.Clone()
	union.AddSet(other)
	return union
}

// Clone creates and returns a clone of the set
func (bs BlockSet) Clone() BlockSet {
	clone := make(BlockSet, len(bs))
	for blockID := range bs {
		clone[blockID] = struct{}{}
	}
	return clone
}

// Equal returns whether this set and the given set contain the same members
func (bs BlockSet) Equal(other BlockSet) bool {
	if len(bs) != len(other) {
		return false
	}

	for blockID := range bs {
		if !other.Contains(&blockID) {
			return false
		}
	}

	return true
}

// IsEmpty returns whether the set has no members
func (bs BlockSet) IsEmpty() bool {
	return len(bs) == 0
}

// Length returns the amount of block IDs in the set
func (bs BlockSet) Length() int {
	return len(bs)
}

// ToSlice converts the set into a slice of block IDs in no particular order
func (bs BlockSet) ToSlice() []*externalapi.DomainBlockID {
	slice := make([]*externalapi.DomainBlockID, 0, len(bs))

	for blockID := range bs {
		blockIDCopy := blockID
		slice = append(slice, &blockIDCopy)
	}

	return slice
}

// ToSortedSlice converts the set into a slice of block IDs sorted
// ascending by the block ID total order
func (bs BlockSet) ToSortedSlice() []*externalapi.DomainBlockID {
	slice := bs.ToSlice()
	sort.Slice(slice, func(i, j int) bool {
		return slice[i].Less(slice[j])
	})
	return slice
}
