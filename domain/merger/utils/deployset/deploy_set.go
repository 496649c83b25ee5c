package deployset

import (
	"sort"
	"strings"

	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
)

// DeploySet is an unordered set of deploy IDs
type DeploySet map[externalapi.DomainDeployID]struct{}

// New creates and returns an empty DeploySet
func New() DeploySet {
	return DeploySet{}
}

// NewFromSlice creates and returns a DeploySet with given deploy IDs
func NewFromSlice(deployIDs ...*externalapi.DomainDeployID) DeploySet {
	set := New()

	for _, deployID := range deployIDs {
		set.Add(deployID)
	}

	return set
}

func (ds DeploySet) String() string {
	deployIDStrings := make([]string, 0, len(ds))
	for deployID := range ds {
		deployIDStrings = append(deployIDStrings, deployID.String())
	}
	sort.Strings(deployIDStrings)
	return strings.Join(deployIDStrings, ", ")
}

// Add appends a deploy ID to this set. If the ID is already in the set,
// this is a no-op
func (ds DeploySet) Add(deployID *externalapi.DomainDeployID) {
	ds[*deployID] = struct{}{}
}

// AddSet appends all members of the given set to this set
func (ds DeploySet) AddSet(other DeploySet) {
	for deployID := range other {
		ds[deployID] = struct{}{}
	}
}

// Remove removes a deploy ID from this set. If the ID is not in the set,
// this is a no-op
func (ds DeploySet) Remove(deployID *externalapi.DomainDeployID) {
	delete(ds, *deployID)
}

// Contains returns whether the given deploy ID is in the set
func (ds DeploySet) Contains(deployID *externalapi.DomainDeployID) bool {
	_, ok := ds[*deployID]
	return ok
}

// Subtract creates and returns a set that contains all members of this
// set minus the members of the given set
func (ds DeploySet) Subtract(other DeploySet) DeploySet {
	diff := New()

	for deployID := range ds {
		if !other.Contains(&deployID) {
			diff.Add(&deployID)
		}
	}

	return diff
}

// Union creates and returns a set that contains the members of this set
// and the members of the given set
func (ds DeploySet) Union(other DeploySet) DeploySet {
	union := ds.Clone()
	union.AddSet(other)
	return union
}

// Intersection creates and returns a set that contains the members this
// set and the given set have in common
func (ds DeploySet) Intersection(other DeploySet) DeploySet {
	intersection := New()

	for deployID := range ds {
		if other.Contains(&deployID) {
			intersection.Add(&deployID)
		}
	}

	return intersection
}

// Intersects returns whether this set and the given set have any members
// in common
func (ds DeploySet) Intersects(other DeploySet) bool {
	smaller, larger := ds, other
	if len(larger) < len(smaller) {
		smaller, larger = larger, smaller
	}

	for deployID := range smaller {
		if larger.Contains(&deployID) {
			return true
		}
	}

	return false
}

// Clone creates and returns a clone of the set
func (ds DeploySet) Clone() DeploySet {
	clone := make(DeploySet, len(ds))
	for deployID := range ds {
		clone[deployID] = struct{}{}
	}
	return clone
}

// Equal returns whether this set and the given set contain the same members
func (ds DeploySet) Equal(other DeploySet) bool {
	if len(ds) != len(other) {
		return false
	}

	for deployID := range ds {
		if !other.Contains(&deployID) {
			return false
		}
	}

	return true
}

// IsEmpty returns whether the set has no members
func (ds DeploySet) IsEmpty() bool {
	return len(ds) == 0
}

// Length returns the amount of deploy IDs in the set
func (ds DeploySet) Length() int {
	return len(ds)
}

// ToSlice converts the set into a slice of deploy IDs in no particular order
func (ds DeploySet) ToSlice() []*externalapi.DomainDeployID {
	slice := make([]*externalapi.DomainDeployID, 0, len(ds))

	for deployID := range ds {
		deployIDCopy := deployID
		slice = append(slice, &deployIDCopy)
	}

	return slice
}

// ToSortedSlice converts the set into a slice of deploy IDs sorted
// ascending by the deploy ID total order
func (ds DeploySet) ToSortedSlice() []*externalapi.DomainDeployID {
	slice := ds.ToSlice()
	sort.Slice(slice, func(i, j int) bool {
		return slice[i].Less(slice[j])
	})
	return slice
}
