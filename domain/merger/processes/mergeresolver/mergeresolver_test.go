package mergeresolver_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/bigsur-network/mergedag/domain/merger"
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

func newTestDeployID(b byte) *externalapi.DomainDeployID {
	idBytes := [externalapi.DomainDeployIDSize]byte{}
	idBytes[0] = b
	return externalapi.NewDomainDeployIDFromByteArray(&idBytes)
}

func newTestBlockID(b byte) *externalapi.DomainBlockID {
	idBytes := [externalapi.DomainBlockIDSize]byte{}
	idBytes[0] = b
	return externalapi.NewDomainBlockIDFromByteArray(&idBytes)
}

func newTestChannelID(b byte) externalapi.DomainChannelID {
	idBytes := [externalapi.DomainChannelIDSize]byte{}
	idBytes[0] = b
	return *externalapi.NewDomainChannelIDFromByteArray(&idBytes)
}

// testFixture implements the resolver's collaborator interfaces over
// literal in-memory data.
type testFixture struct {
	parents      map[externalapi.DomainBlockID][]*externalapi.DomainBlockID
	heights      map[externalapi.DomainBlockID]int64
	deploys      map[externalapi.DomainDeployID]*externalapi.DomainDeploy
	blockDeploys map[externalapi.DomainBlockID][]*externalapi.DomainDeploy
	conflicts    map[[2]externalapi.DomainDeployID]bool
	depends      map[[2]externalapi.DomainDeployID]bool
}

func newTestFixture() *testFixture {
	return &testFixture{
		parents:      make(map[externalapi.DomainBlockID][]*externalapi.DomainBlockID),
		heights:      make(map[externalapi.DomainBlockID]int64),
		deploys:      make(map[externalapi.DomainDeployID]*externalapi.DomainDeploy),
		blockDeploys: make(map[externalapi.DomainBlockID][]*externalapi.DomainDeploy),
		conflicts:    make(map[[2]externalapi.DomainDeployID]bool),
		depends:      make(map[[2]externalapi.DomainDeployID]bool),
	}
}

func (tf *testFixture) addDeploy(deployID *externalapi.DomainDeployID, cost uint64,
	diffs map[externalapi.DomainChannelID]int64) {

	tf.deploys[*deployID] = &externalapi.DomainDeploy{
		DeployID:       deployID,
		Cost:           cost,
		MergeableDiffs: diffs,
	}
}

func (tf *testFixture) addBlock(blockID *externalapi.DomainBlockID, height int64,
	parents []*externalapi.DomainBlockID, deployIDs ...*externalapi.DomainDeployID) {

	tf.heights[*blockID] = height
	tf.parents[*blockID] = parents
	for _, deployID := range deployIDs {
		tf.blockDeploys[*blockID] = append(tf.blockDeploys[*blockID], tf.deploys[*deployID])
	}
}

func (tf *testFixture) conflict(a, b *externalapi.DomainDeployID) {
	tf.conflicts[[2]externalapi.DomainDeployID{*a, *b}] = true
	tf.conflicts[[2]externalapi.DomainDeployID{*b, *a}] = true
}

func (tf *testFixture) depend(dependent, dependency *externalapi.DomainDeployID) {
	tf.depends[[2]externalapi.DomainDeployID{*dependent, *dependency}] = true
}

func (tf *testFixture) Seen(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainBlockID, error) {
	visited := make(map[externalapi.DomainBlockID]struct{})
	seen := []*externalapi.DomainBlockID{}
	queue := append([]*externalapi.DomainBlockID{}, tf.parents[*blockID]...)

	for len(queue) > 0 {
		var current *externalapi.DomainBlockID
		current, queue = queue[0], queue[1:]
		if _, ok := visited[*current]; ok {
			continue
		}
		visited[*current] = struct{}{}
		seen = append(seen, current)
		queue = append(queue, tf.parents[*current]...)
	}

	return seen, nil
}

func (tf *testFixture) BlockHeight(blockID *externalapi.DomainBlockID) (int64, error) {
	height, ok := tf.heights[*blockID]
	if !ok {
		return 0, errors.Errorf("unknown block %s", blockID)
	}
	return height, nil
}

func (tf *testFixture) BlockDeploys(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainDeploy, error) {
	return tf.blockDeploys[*blockID], nil
}

func (tf *testFixture) Deploy(deployID *externalapi.DomainDeployID) (*externalapi.DomainDeploy, error) {
	deploy, ok := tf.deploys[*deployID]
	if !ok {
		return nil, errors.Errorf("unknown deploy %s", deployID)
	}
	return deploy, nil
}

func (tf *testFixture) Conflicts(a, b *externalapi.DomainDeployID) (bool, error) {
	return tf.conflicts[[2]externalapi.DomainDeployID{*a, *b}], nil
}

func (tf *testFixture) DependsOn(dependent, dependency *externalapi.DomainDeployID) (bool, error) {
	return tf.depends[[2]externalapi.DomainDeployID{*dependent, *dependency}], nil
}

func (tf *testFixture) newResolver() model.MergeResolver {
	return merger.NewFactory().NewMergeResolver(tf, tf, tf)
}

func checkResolution(t *testing.T, resolution *externalapi.DagResolution, expectedAccepted,
	expectedRejected []*externalapi.DomainDeployID) {

	t.Helper()
	if !deployset.NewFromSlice(resolution.Accepted...).Equal(deployset.NewFromSlice(expectedAccepted...)) ||
		!deployset.NewFromSlice(resolution.Rejected...).Equal(deployset.NewFromSlice(expectedRejected...)) {
		t.Fatalf("unexpected resolution: %s", spew.Sdump(resolution))
	}
}

func TestResolveDAGEmpty(t *testing.T) {
	fixture := newTestFixture()
	resolver := fixture.newResolver()

	resolution, err := resolver.ResolveDAG(nil, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	checkResolution(t, resolution, nil, nil)
}

func TestResolveDAGPrefersCheaperRejection(t *testing.T) {
	fixture := newTestFixture()
	d1, d2 := newTestDeployID(1), newTestDeployID(2)
	b1 := newTestBlockID(1)

	fixture.addDeploy(d1, 3, nil)
	fixture.addDeploy(d2, 5, nil)
	fixture.addBlock(b1, 0, nil, d1, d2)
	fixture.conflict(d1, d2)

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	// Rejecting d1 costs 3, rejecting d2 costs 5.
	checkResolution(t, resolution,
		[]*externalapi.DomainDeployID{d2},
		[]*externalapi.DomainDeployID{d1})
}

func TestResolveDAGChainVersusConflict(t *testing.T) {
	fixture := newTestFixture()
	d1, d2, d3, d4 := newTestDeployID(1), newTestDeployID(2), newTestDeployID(3), newTestDeployID(4)
	b1 := newTestBlockID(1)

	for _, deployID := range []*externalapi.DomainDeployID{d1, d2, d3, d4} {
		fixture.addDeploy(deployID, 1, nil)
	}
	fixture.addBlock(b1, 0, nil, d1, d2, d3, d4)
	fixture.conflict(d1, d4)
	fixture.depend(d2, d1)
	fixture.depend(d3, d2)

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	// Rejecting d4 costs 1; rejecting d1 drags d2 and d3 along for a
	// total of 3.
	checkResolution(t, resolution,
		[]*externalapi.DomainDeployID{d1, d2, d3},
		[]*externalapi.DomainDeployID{d4})
}

func TestResolveDAGEnforcesFinality(t *testing.T) {
	fixture := newTestFixture()
	f1 := newTestDeployID(0xf1)
	d1, d2, d3 := newTestDeployID(1), newTestDeployID(2), newTestDeployID(3)
	b1 := newTestBlockID(1)

	fixture.addDeploy(f1, 1, nil)
	fixture.addDeploy(d1, 100, nil)
	fixture.addDeploy(d2, 100, nil)
	fixture.addDeploy(d3, 1, nil)
	fixture.addBlock(b1, 0, nil, d1, d2, d3)
	fixture.conflict(f1, d1)
	fixture.depend(d2, d1)

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1}, nil,
		[]*externalapi.DomainDeployID{f1}, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	// d1 conflicts with the finally-accepted f1 and d2 depends on d1;
	// both are rejected no matter their cost.
	checkResolution(t, resolution,
		[]*externalapi.DomainDeployID{d3},
		[]*externalapi.DomainDeployID{d1, d2})
}

func TestResolveDAGEnforcesFinalRejectionDependents(t *testing.T) {
	fixture := newTestFixture()
	r1 := newTestDeployID(0xf1)
	d1, d2 := newTestDeployID(1), newTestDeployID(2)
	b1 := newTestBlockID(1)

	fixture.addDeploy(r1, 1, nil)
	fixture.addDeploy(d1, 1, nil)
	fixture.addDeploy(d2, 1, nil)
	fixture.addBlock(b1, 0, nil, d1, d2)
	fixture.depend(d1, r1)

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1}, nil,
		nil, []*externalapi.DomainDeployID{r1}, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	checkResolution(t, resolution,
		[]*externalapi.DomainDeployID{d2},
		[]*externalapi.DomainDeployID{d1})
}

func TestResolveDAGRejectsChannelViolations(t *testing.T) {
	fixture := newTestFixture()
	d1, d2 := newTestDeployID(1), newTestDeployID(2)
	b1 := newTestBlockID(1)
	ch := newTestChannelID(1)

	fixture.addDeploy(d1, 1, map[externalapi.DomainChannelID]int64{ch: 20})
	fixture.addDeploy(d2, 1, map[externalapi.DomainChannelID]int64{ch: -40})
	fixture.addBlock(b1, 0, nil, d1, d2)

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1}, nil, nil, nil,
		model.ChannelValues{ch: 10})
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	// Non-conflicting deploys, but folding d2 after d1 drives the
	// channel to -10.
	checkResolution(t, resolution,
		[]*externalapi.DomainDeployID{d1},
		[]*externalapi.DomainDeployID{d2})
}

func TestResolveDAGScopesOutFinalizedBlocks(t *testing.T) {
	fixture := newTestFixture()
	dFinal, d1 := newTestDeployID(1), newTestDeployID(2)
	b0, b1 := newTestBlockID(1), newTestBlockID(2)

	fixture.addDeploy(dFinal, 1, nil)
	fixture.addDeploy(d1, 1, nil)
	fixture.addBlock(b0, 0, nil, dFinal)
	fixture.addBlock(b1, 1, []*externalapi.DomainBlockID{b0}, d1)
	// A conflict with a deploy outside the conflict scope must not
	// surface in the resolution.
	fixture.conflict(dFinal, d1)

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1}, []*externalapi.DomainBlockID{b0},
		nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	checkResolution(t, resolution,
		[]*externalapi.DomainDeployID{d1}, nil)
}

func TestResolveDAGPartitionInvariants(t *testing.T) {
	fixture := newTestFixture()
	deployIDs := make([]*externalapi.DomainDeployID, 8)
	for i := range deployIDs {
		deployIDs[i] = newTestDeployID(byte(i + 1))
		fixture.addDeploy(deployIDs[i], uint64(i+1), nil)
	}
	b1, b2 := newTestBlockID(1), newTestBlockID(2)
	fixture.addBlock(b1, 0, nil, deployIDs[0], deployIDs[1], deployIDs[2], deployIDs[3])
	fixture.addBlock(b2, 0, nil, deployIDs[4], deployIDs[5], deployIDs[6], deployIDs[7])

	fixture.conflict(deployIDs[0], deployIDs[4])
	fixture.conflict(deployIDs[1], deployIDs[5])
	fixture.conflict(deployIDs[1], deployIDs[6])
	fixture.depend(deployIDs[2], deployIDs[0])
	fixture.depend(deployIDs[3], deployIDs[2])
	fixture.depend(deployIDs[7], deployIDs[5])

	resolution, err := fixture.newResolver().ResolveDAG(
		[]*externalapi.DomainBlockID{b1, b2}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	accepted := deployset.NewFromSlice(resolution.Accepted...)
	rejected := deployset.NewFromSlice(resolution.Rejected...)

	// Partition: accepted and rejected are disjoint and cover the
	// conflict set.
	if accepted.Intersects(rejected) {
		t.Fatalf("accepted and rejected intersect: %s", spew.Sdump(resolution))
	}
	if !accepted.Union(rejected).Equal(deployset.NewFromSlice(deployIDs...)) {
		t.Fatalf("accepted and rejected do not cover the conflict set: %s", spew.Sdump(resolution))
	}

	// Conflict-freedom among accepted deploys.
	for _, a := range resolution.Accepted {
		for _, b := range resolution.Accepted {
			conflicting, err := fixture.Conflicts(a, b)
			if err != nil {
				t.Fatalf("Conflicts: %+v", err)
			}
			if conflicting {
				t.Fatalf("accepted deploys %s and %s conflict", a, b)
			}
		}
	}

	// Dependents of rejected deploys are rejected.
	for _, r := range resolution.Rejected {
		for _, d := range deployIDs {
			dependsOn, err := fixture.DependsOn(d, r)
			if err != nil {
				t.Fatalf("DependsOn: %+v", err)
			}
			if dependsOn && !rejected.Contains(d) {
				t.Fatalf("%s depends on the rejected %s but is not rejected", d, r)
			}
		}
	}
}

func TestResolveDAGIsDeterministic(t *testing.T) {
	fixture := newTestFixture()
	deployIDs := make([]*externalapi.DomainDeployID, 6)
	for i := range deployIDs {
		deployIDs[i] = newTestDeployID(byte(i + 1))
		// Equal costs force the selector through its cardinality and
		// sorted-members tie-breaks.
		fixture.addDeploy(deployIDs[i], 1, nil)
	}
	b1 := newTestBlockID(1)
	fixture.addBlock(b1, 0, nil, deployIDs...)
	fixture.conflict(deployIDs[0], deployIDs[1])
	fixture.conflict(deployIDs[2], deployIDs[3])
	fixture.conflict(deployIDs[4], deployIDs[5])

	resolver := fixture.newResolver()
	first, err := resolver.ResolveDAG([]*externalapi.DomainBlockID{b1}, nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("ResolveDAG: %+v", err)
	}

	for i := 0; i < 20; i++ {
		again, err := resolver.ResolveDAG([]*externalapi.DomainBlockID{b1}, nil, nil, nil, nil)
		if err != nil {
			t.Fatalf("ResolveDAG: %+v", err)
		}
		if !again.Equal(first) {
			t.Fatalf("resolution changed between runs.\nFirst: %sAgain: %s",
				spew.Sdump(first), spew.Sdump(again))
		}
	}
}
