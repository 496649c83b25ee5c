package externalapi

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainDeployIDSize of array used to store deploy IDs.
const DomainDeployIDSize = 32

// DomainDeployID is the domain representation of a deploy identifier.
// It is a read-only type with a stable byte-wise total order.
type DomainDeployID struct {
	deployIDArray [DomainDeployIDSize]byte
}

// NewDomainDeployIDFromByteArray constructs a new DomainDeployID out of a byte array
func NewDomainDeployIDFromByteArray(deployIDBytes *[DomainDeployIDSize]byte) *DomainDeployID {
	return &DomainDeployID{
		deployIDArray: *deployIDBytes,
	}
}

// NewDomainDeployIDFromByteSlice constructs a new DomainDeployID out of a byte slice.
// Returns an error if the length of the byte slice is not exactly `DomainDeployIDSize`
func NewDomainDeployIDFromByteSlice(deployIDBytes []byte) (*DomainDeployID, error) {
	if len(deployIDBytes) != DomainDeployIDSize {
		return nil, errors.Errorf("invalid deploy ID size. Want: %d, got: %d",
			DomainDeployIDSize, len(deployIDBytes))
	}
	deployID := DomainDeployID{
		deployIDArray: [DomainDeployIDSize]byte{},
	}
	copy(deployID.deployIDArray[:], deployIDBytes)
	return &deployID, nil
}

// NewDomainDeployIDFromString constructs a new DomainDeployID out of a hex string
func NewDomainDeployIDFromString(deployIDString string) (*DomainDeployID, error) {
	expectedLength := DomainDeployIDSize * 2
	if len(deployIDString) != expectedLength {
		return nil, errors.Errorf("deploy ID string length is %d, while it should be %d",
			len(deployIDString), expectedLength)
	}

	deployIDBytes, err := hex.DecodeString(deployIDString)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewDomainDeployIDFromByteSlice(deployIDBytes)
}

// String returns the deploy ID as the hexadecimal string of its bytes.
func (id DomainDeployID) String() string {
	return hex.EncodeToString(id.deployIDArray[:])
}

// ByteArray returns the bytes in this deploy ID represented as a byte array.
// The bytes are cloned, therefore it is safe to modify the resulting array.
func (id *DomainDeployID) ByteArray() *[DomainDeployIDSize]byte {
	arrayClone := id.deployIDArray
	return &arrayClone
}

// ByteSlice returns the bytes in this deploy ID represented as a byte slice.
// The bytes are cloned, therefore it is safe to modify the resulting slice.
func (id *DomainDeployID) ByteSlice() []byte {
	return id.ByteArray()[:]
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Less accordingly.
var _ DomainDeployID = DomainDeployID{deployIDArray: [DomainDeployIDSize]byte{}}

// Equal returns whether id equals to other
func (id *DomainDeployID) Equal(other *DomainDeployID) bool {
	if id == nil || other == nil {
		return id == other
	}

	return id.deployIDArray == other.deployIDArray
}

// Less returns true if id is less than other, by the byte-wise total order
func (id *DomainDeployID) Less(other *DomainDeployID) bool {
	return bytes.Compare(id.deployIDArray[:], other.deployIDArray[:]) < 0
}

// CloneDeployIDs returns a clone of the given deploy ID slice.
// Note: since DomainDeployID is a read-only type, the clone is shallow
func CloneDeployIDs(deployIDs []*DomainDeployID) []*DomainDeployID {
	clone := make([]*DomainDeployID, len(deployIDs))
	copy(clone, deployIDs)
	return clone
}

// DeployIDsEqual returns whether the given deploy ID slices are equal.
func DeployIDsEqual(a, b []*DomainDeployID) bool {
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

// DomainDeploy is the domain representation of a deploy: an atomic
// user-submitted unit of state change carried by a block, together with
// the metadata the resolver consults (cost and mergeable channel diffs).
type DomainDeploy struct {
	DeployID *DomainDeployID
	Cost     uint64

	// MergeableDiffs maps each mergeable channel touched by the deploy
	// to the signed delta it applies to that channel's balance.
	MergeableDiffs map[DomainChannelID]int64
}

// Clone returns a clone of DomainDeploy
func (d *DomainDeploy) Clone() *DomainDeploy {
	diffsClone := make(map[DomainChannelID]int64, len(d.MergeableDiffs))
	for channelID, diff := range d.MergeableDiffs {
		diffsClone[channelID] = diff
	}

	return &DomainDeploy{
		DeployID:       d.DeployID,
		Cost:           d.Cost,
		MergeableDiffs: diffsClone,
	}
}
