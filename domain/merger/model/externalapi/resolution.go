package externalapi

// DagResolution is the outcome of resolving the unfinalized region of the
// DAG: a partition of the conflict set into deploys that merge into the
// finalized state and deploys that are rejected. Both slices are sorted
// ascending by deploy ID.
type DagResolution struct {
	Accepted []*DomainDeployID
	Rejected []*DomainDeployID
}

// Clone returns a clone of DagResolution
func (dr *DagResolution) Clone() *DagResolution {
	return &DagResolution{
		Accepted: CloneDeployIDs(dr.Accepted),
		Rejected: CloneDeployIDs(dr.Rejected),
	}
}

// Equal returns whether dr equals to other
func (dr *DagResolution) Equal(other *DagResolution) bool {
	if dr == nil || other == nil {
		return dr == other
	}

	return DeployIDsEqual(dr.Accepted, other.Accepted) &&
		DeployIDsEqual(dr.Rejected, other.Rejected)
}
