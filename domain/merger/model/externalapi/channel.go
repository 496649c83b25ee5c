package externalapi

import (
	"bytes"
	"encoding/hex"

	"github.com/pkg/errors"
)

// DomainChannelIDSize of array used to store mergeable channel IDs.
const DomainChannelIDSize = 32

// DomainChannelID is the domain representation of a mergeable channel
// identifier. A mergeable channel is a numeric resource with per-deploy
// deltas that must fold without overflow or negativity.
type DomainChannelID struct {
	channelIDArray [DomainChannelIDSize]byte
}

// NewDomainChannelIDFromByteArray constructs a new DomainChannelID out of a byte array
func NewDomainChannelIDFromByteArray(channelIDBytes *[DomainChannelIDSize]byte) *DomainChannelID {
	return &DomainChannelID{
		channelIDArray: *channelIDBytes,
	}
}

// NewDomainChannelIDFromByteSlice constructs a new DomainChannelID out of a byte slice.
// Returns an error if the length of the byte slice is not exactly `DomainChannelIDSize`
func NewDomainChannelIDFromByteSlice(channelIDBytes []byte) (*DomainChannelID, error) {
	if len(channelIDBytes) != DomainChannelIDSize {
		return nil, errors.Errorf("invalid channel ID size. Want: %d, got: %d",
			DomainChannelIDSize, len(channelIDBytes))
	}
	channelID := DomainChannelID{
		channelIDArray: [DomainChannelIDSize]byte{},
	}
	copy(channelID.channelIDArray[:], channelIDBytes)
	return &channelID, nil
}

// NewDomainChannelIDFromString constructs a new DomainChannelID out of a hex string
func NewDomainChannelIDFromString(channelIDString string) (*DomainChannelID, error) {
	expectedLength := DomainChannelIDSize * 2
	if len(channelIDString) != expectedLength {
		return nil, errors.Errorf("channel ID string length is %d, while it should be %d",
			len(channelIDString), expectedLength)
	}

	channelIDBytes, err := hex.DecodeString(channelIDString)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return NewDomainChannelIDFromByteSlice(channelIDBytes)
}

// String returns the channel ID as the hexadecimal string of its bytes.
func (id DomainChannelID) String() string {
	return hex.EncodeToString(id.channelIDArray[:])
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Less accordingly.
var _ DomainChannelID = DomainChannelID{channelIDArray: [DomainChannelIDSize]byte{}}

// Equal returns whether id equals to other
func (id *DomainChannelID) Equal(other *DomainChannelID) bool {
	if id == nil || other == nil {
		return id == other
	}

	return id.channelIDArray == other.channelIDArray
}

// Less returns true if id is less than other, by the byte-wise total order
func (id *DomainChannelID) Less(other *DomainChannelID) bool {
	return bytes.Compare(id.channelIDArray[:], other.channelIDArray[:]) < 0
}
