package externalapi

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainBlockIDSize of array used to store block IDs.
const DomainBlockIDSize = 32

// DomainBlockID is the domain representation of a block identifier
type DomainBlockID struct {
	blockIDArray [DomainBlockIDSize]byte
}

// NewDomainBlockIDFromByteArray constructs a new DomainBlockID out of a byte array
func NewDomainBlockIDFromByteArray(blockIDBytes *[DomainBlockIDSize]byte) *DomainBlockID {
	return &DomainBlockID{
		blockIDArray: *blockIDBytes,
	}
}

// NewDomainBlockIDFromByteSlice constructs a new DomainBlockID out of a byte slice.
// Returns an error if the length of the byte slice is not exactly `DomainBlockIDSize`
func NewDomainBlockIDFromByteSlice(blockIDBytes []byte) (*DomainBlockID, error) {
	if len(blockIDBytes) != DomainBlockIDSize {
		return nil, errors.Errorf("invalid block ID size. Want: %d, got: %d",
			DomainBlockIDSize, len(blockIDBytes))
	}
	blockID := DomainBlockID{
		blockIDArray: [DomainBlockIDSize]byte{},
	}
	copy(blockID.blockIDArray[:], blockIDBytes)
	return &blockID, nil
}

// NewDomainBlockIDFromString constructs a new DomainBlockID out of a hex string
func NewDomainBlockIDFromString(blockIDString string) (*DomainBlockID, error) {
	expectedLength := DomainBlockIDSize * 2
	if len(blockIDString) != expectedLength {
		return nil, errors.Errorf("block ID string length is %d, while it should be %d",
			len(blockIDString), expectedLength)
	}

	blockIDBytes, err := hex.DecodeString(blockIDString)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewDomainBlockIDFromByteSlice(blockIDBytes)
}

// String returns the block ID as the hexadecimal string of its bytes.
func (id DomainBlockID) String() string {
	return hex.EncodeToString(id.blockIDArray[:])
}

// ByteArray returns the bytes in this block ID represented as a byte array.
// The bytes are cloned, therefore it is safe to modify the resulting array.
func (id *DomainBlockID) ByteArray() *[DomainBlockIDSize]byte {
	arrayClone := id.blockIDArray
	return &arrayClone
}

// ByteSlice returns the bytes in this block ID represented as a byte slice.
// The bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *DomainBlockID) ByteSlice() []byte {
	return id.ByteArray()[:]
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Less accordingly.
var _ DomainBlockID = DomainBlockID{blockIDArray: [DomainBlockIDSize]byte{}}

// Equal returns whether id equals to other
func (id *DomainBlockID) Equal(other *DomainBlockID) bool {
	if id == nil || other == nil {
		return id == other
	}

	return id.blockIDArray == other.blockIDArray
}

// Less returns true if id is less than other, by the byte-wise total order
func (id *DomainBlockID) Less(other *DomainBlockID) bool {
	return bytes.Compare(id.blockIDArray[:], other.blockIDArray[:]) < 0
}

// CloneBlockIDs returns a clone of the given block ID slice.
// Note: since DomainBlockID is a read-only type, the clone is shallow
func CloneBlockIDs(blockIDs []*DomainBlockID) []*DomainBlockID {
	clone := make([]*DomainBlockID, len(blockIDs))
	copy(clone, blockIDs)
	return clone
}

// BlockIDsEqual returns whether the given block ID slices are equal.
func BlockIDsEqual(a, b []*DomainBlockID) bool {
	if len(a) != len(b) {
		return false
	}

	for i, id := range a {
		if !id.Equal(b[i]) {
			return false
		}
	}
	return true
}
