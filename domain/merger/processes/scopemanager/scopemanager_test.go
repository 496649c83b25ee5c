package scopemanager_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/processes/scopemanager"
	"github.com/bigsur-network/mergedag/domain/merger/ruleerrors"
	"github.com/bigsur-network/mergedag/domain/merger/utils/blockset"
)

func newTestBlockID(b byte) *externalapi.DomainBlockID {
	idBytes := [externalapi.DomainBlockIDSize]byte{}
	idBytes[0] = b
	return externalapi.NewDomainBlockIDFromByteArray(&idBytes)
}

// testDAGTopology is an in-memory DAGTopologyManager over literal parent
// edges. Seen walks the parent edges breadth-first, the queried block
// excluded.
type testDAGTopology struct {
	parents map[externalapi.DomainBlockID][]*externalapi.DomainBlockID
	heights map[externalapi.DomainBlockID]int64
}

func (tt *testDAGTopology) Seen(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainBlockID, error) {
	visited := make(map[externalapi.DomainBlockID]struct{})
	seen := []*externalapi.DomainBlockID{}
	queue := append([]*externalapi.DomainBlockID{}, tt.parents[*blockID]...)

	for len(queue) > 0 {
		var current *externalapi.DomainBlockID
		current, queue = queue[0], queue[1:]
		if _, ok := visited[*current]; ok {
			continue
		}
		visited[*current] = struct{}{}
		seen = append(seen, current)
		queue = append(queue, tt.parents[*current]...)
	}

	return seen, nil
}

func (tt *testDAGTopology) BlockHeight(blockID *externalapi.DomainBlockID) (int64, error) {
	height, ok := tt.heights[*blockID]
	if !ok {
		return 0, errors.Errorf("unknown block %s", blockID)
	}
	return height, nil
}

// buildTestDAG builds the fixture DAG
//
//	    b0
//	   /  \
//	  b1    b2
//	  |     |
//	  b3    b4
//	   \   /
//	    b5
func buildTestDAG() (*testDAGTopology, []*externalapi.DomainBlockID) {
	blockIDs := make([]*externalapi.DomainBlockID, 6)
	for i := range blockIDs {
		blockIDs[i] = newTestBlockID(byte(i))
	}
	b0, b1, b2, b3, b4, b5 := blockIDs[0], blockIDs[1], blockIDs[2], blockIDs[3], blockIDs[4], blockIDs[5]

	topology := &testDAGTopology{
		parents: map[externalapi.DomainBlockID][]*externalapi.DomainBlockID{
			*b1: {b0},
			*b2: {b0},
			*b3: {b1},
			*b4: {b2},
			*b5: {b3, b4},
		},
		heights: map[externalapi.DomainBlockID]int64{
			*b0: 0, *b1: 1, *b2: 1, *b3: 2, *b4: 2, *b5: 3,
		},
	}
	return topology, blockIDs
}

func TestConflictScope(t *testing.T) {
	topology, blockIDs := buildTestDAG()
	b1, b2, b3, b4, b5 := blockIDs[1], blockIDs[2], blockIDs[3], blockIDs[4], blockIDs[5]
	manager := scopemanager.New(topology)

	scope, err := manager.ConflictScope(
		[]*externalapi.DomainBlockID{b5}, []*externalapi.DomainBlockID{b1})
	if err != nil {
		t.Fatalf("ConflictScope: %+v", err)
	}

	expected := blockset.NewFromSlice(b2, b3, b4, b5)
	if !scope.Equal(expected) {
		t.Fatalf("unexpected conflict scope. Want: {%s}, got: {%s}", expected, scope)
	}
}

func TestConflictScopeEmptyDAG(t *testing.T) {
	topology := &testDAGTopology{
		parents: map[externalapi.DomainBlockID][]*externalapi.DomainBlockID{},
		heights: map[externalapi.DomainBlockID]int64{},
	}
	manager := scopemanager.New(topology)

	scope, err := manager.ConflictScope(nil, nil)
	if err != nil {
		t.Fatalf("ConflictScope: %+v", err)
	}
	if !scope.IsEmpty() {
		t.Fatalf("expected an empty scope, got: {%s}", scope)
	}
}

func TestFinalScope(t *testing.T) {
	topology, blockIDs := buildTestDAG()
	b1, b3 := blockIDs[1], blockIDs[3]
	manager := scopemanager.New(topology)

	scope, err := manager.FinalScope(
		[]*externalapi.DomainBlockID{b3}, []*externalapi.DomainBlockID{b1})
	if err != nil {
		t.Fatalf("FinalScope: %+v", err)
	}

	expected := blockset.NewFromSlice(b1, b3)
	if !scope.Equal(expected) {
		t.Fatalf("unexpected final scope. Want: {%s}, got: {%s}", expected, scope)
	}
}

func TestLowestFringe(t *testing.T) {
	topology, blockIDs := buildTestDAG()
	b1, b3, b4 := blockIDs[1], blockIDs[3], blockIDs[4]
	manager := scopemanager.New(topology)

	// b1 sits at height 1, below both b3 and b4.
	fringe, err := manager.LowestFringe([][]*externalapi.DomainBlockID{{b3}, {b1}, {b4}})
	if err != nil {
		t.Fatalf("LowestFringe: %+v", err)
	}
	if !externalapi.BlockIDsEqual(fringe, []*externalapi.DomainBlockID{b1}) {
		t.Fatalf("expected fringe {%s}, got %v", b1, fringe)
	}

	// Equal heights fall back to the block ID order: b3 < b4.
	fringe, err = manager.LowestFringe([][]*externalapi.DomainBlockID{{b4}, {b3}})
	if err != nil {
		t.Fatalf("LowestFringe: %+v", err)
	}
	if !externalapi.BlockIDsEqual(fringe, []*externalapi.DomainBlockID{b3}) {
		t.Fatalf("expected fringe {%s}, got %v", b3, fringe)
	}

	// A single fringe is returned as-is.
	single := []*externalapi.DomainBlockID{b4}
	fringe, err = manager.LowestFringe([][]*externalapi.DomainBlockID{single})
	if err != nil {
		t.Fatalf("LowestFringe: %+v", err)
	}
	if !externalapi.BlockIDsEqual(fringe, single) {
		t.Fatalf("expected the single fringe back, got %v", fringe)
	}
}

func TestLowestFringeEmptyInput(t *testing.T) {
	topology, _ := buildTestDAG()
	manager := scopemanager.New(topology)

	_, err := manager.LowestFringe(nil)
	if !errors.Is(err, ruleerrors.ErrEmptyFringeSet) {
		t.Fatalf("expected ErrEmptyFringeSet, got: %+v", err)
	}
}
