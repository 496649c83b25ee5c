package main

import (
	"encoding/json"
	"io/ioutil"

	"github.com/pkg/errors"

	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
)

// scenario is the JSON description of a resolver invocation: the DAG, the
// deploys its blocks carry, the relations between them and the finalized
// acceptance state.
type scenario struct {
	Blocks          []scenarioBlock   `json:"blocks"`
	Deploys         []scenarioDeploy  `json:"deploys"`
	Conflicts       [][2]string       `json:"conflicts"`
	Dependencies    []scenarioDep     `json:"dependencies"`
	Tips            []string          `json:"tips"`
	LatestFringe    []string          `json:"latestFringe"`
	AcceptedFinally []string          `json:"acceptedFinally"`
	RejectedFinally []string          `json:"rejectedFinally"`
	InitValues      map[string]int64  `json:"initValues"`
}

type scenarioBlock struct {
	ID      string   `json:"id"`
	Height  int64    `json:"height"`
	Parents []string `json:"parents"`
	Deploys []string `json:"deploys"`
}

type scenarioDeploy struct {
	ID    string           `json:"id"`
	Cost  uint64           `json:"cost"`
	Diffs map[string]int64 `json:"diffs"`
}

type scenarioDep struct {
	Dependent  string `json:"dependent"`
	Dependency string `json:"dependency"`
}

func loadScenario(path string) (*scenario, error) {
	scenarioBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read scenario file %s", path)
	}

	s := &scenario{}
	err = json.Unmarshal(scenarioBytes, s)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse scenario file %s", path)
	}
	return s, nil
}

// blockIDFromName derives a block ID from a human-readable scenario name
// by padding it into the ID's byte array.
func blockIDFromName(name string) (*externalapi.DomainBlockID, error) {
	if len(name) > externalapi.DomainBlockIDSize {
		return nil, errors.Errorf("block name %s is longer than %d bytes",
			name, externalapi.DomainBlockIDSize)
	}
	idBytes := [externalapi.DomainBlockIDSize]byte{}
	copy(idBytes[:], name)
	return externalapi.NewDomainBlockIDFromByteArray(&idBytes), nil
}

func deployIDFromName(name string) (*externalapi.DomainDeployID, error) {
	if len(name) > externalapi.DomainDeployIDSize {
		return nil, errors.Errorf("deploy name %s is longer than %d bytes",
			name, externalapi.DomainDeployIDSize)
	}
	idBytes := [externalapi.DomainDeployIDSize]byte{}
	copy(idBytes[:], name)
	return externalapi.NewDomainDeployIDFromByteArray(&idBytes), nil
}

func channelIDFromName(name string) (*externalapi.DomainChannelID, error) {
	if len(name) > externalapi.DomainChannelIDSize {
		return nil, errors.Errorf("channel name %s is longer than %d bytes",
			name, externalapi.DomainChannelIDSize)
	}
	idBytes := [externalapi.DomainChannelIDSize]byte{}
	copy(idBytes[:], name)
	return externalapi.NewDomainChannelIDFromByteArray(&idBytes), nil
}

// scenarioCollaborators holds in-memory implementations of the resolver's
// collaborator interfaces built from a scenario.
type scenarioCollaborators struct {
	parents     map[externalapi.DomainBlockID][]*externalapi.DomainBlockID
	heights     map[externalapi.DomainBlockID]int64
	deploys     map[externalapi.DomainDeployID]*externalapi.DomainDeploy
	blockLoad   map[externalapi.DomainBlockID][]*externalapi.DomainDeploy
	conflicts   map[[2]externalapi.DomainDeployID]bool
	depends     map[[2]externalapi.DomainDeployID]bool
	deployNames map[externalapi.DomainDeployID]string

	tips            []*externalapi.DomainBlockID
	latestFringe    []*externalapi.DomainBlockID
	acceptedFinally []*externalapi.DomainDeployID
	rejectedFinally []*externalapi.DomainDeployID
	initValues      model.ChannelValues
}

func buildCollaborators(s *scenario) (*scenarioCollaborators, error) {
	c := &scenarioCollaborators{
		parents:     make(map[externalapi.DomainBlockID][]*externalapi.DomainBlockID),
		heights:     make(map[externalapi.DomainBlockID]int64),
		deploys:     make(map[externalapi.DomainDeployID]*externalapi.DomainDeploy),
		blockLoad:   make(map[externalapi.DomainBlockID][]*externalapi.DomainDeploy),
		conflicts:   make(map[[2]externalapi.DomainDeployID]bool),
		depends:     make(map[[2]externalapi.DomainDeployID]bool),
		deployNames: make(map[externalapi.DomainDeployID]string),
		initValues:  make(model.ChannelValues),
	}

	for _, deploy := range s.Deploys {
		deployID, err := deployIDFromName(deploy.ID)
		if err != nil {
			return nil, err
		}

		diffs := make(map[externalapi.DomainChannelID]int64, len(deploy.Diffs))
		for channelName, diff := range deploy.Diffs {
			channelID, err := channelIDFromName(channelName)
			if err != nil {
				return nil, err
			}
			diffs[*channelID] = diff
		}

		c.deploys[*deployID] = &externalapi.DomainDeploy{
			DeployID:       deployID,
			Cost:           deploy.Cost,
			MergeableDiffs: diffs,
		}
		c.deployNames[*deployID] = deploy.ID
	}

	for _, block := range s.Blocks {
		blockID, err := blockIDFromName(block.ID)
		if err != nil {
			return nil, err
		}
		c.heights[*blockID] = block.Height

		for _, parentName := range block.Parents {
			parentID, err := blockIDFromName(parentName)
			if err != nil {
				return nil, err
			}
			c.parents[*blockID] = append(c.parents[*blockID], parentID)
		}

		for _, deployName := range block.Deploys {
			deployID, err := deployIDFromName(deployName)
			if err != nil {
				return nil, err
			}
			deploy, ok := c.deploys[*deployID]
			if !ok {
				return nil, errors.Errorf("block %s carries unknown deploy %s", block.ID, deployName)
			}
			c.blockLoad[*blockID] = append(c.blockLoad[*blockID], deploy)
		}
	}

	for _, pair := range s.Conflicts {
		aID, err := deployIDFromName(pair[0])
		if err != nil {
			return nil, err
		}
		bID, err := deployIDFromName(pair[1])
		if err != nil {
			return nil, err
		}
		c.conflicts[[2]externalapi.DomainDeployID{*aID, *bID}] = true
		c.conflicts[[2]externalapi.DomainDeployID{*bID, *aID}] = true
	}

	for _, dep := range s.Dependencies {
		dependentID, err := deployIDFromName(dep.Dependent)
		if err != nil {
			return nil, err
		}
		dependencyID, err := deployIDFromName(dep.Dependency)
		if err != nil {
			return nil, err
		}
		c.depends[[2]externalapi.DomainDeployID{*dependentID, *dependencyID}] = true
	}

	for _, tipName := range s.Tips {
		tipID, err := blockIDFromName(tipName)
		if err != nil {
			return nil, err
		}
		c.tips = append(c.tips, tipID)
	}
	for _, fringeName := range s.LatestFringe {
		fringeID, err := blockIDFromName(fringeName)
		if err != nil {
			return nil, err
		}
		c.latestFringe = append(c.latestFringe, fringeID)
	}
	for _, deployName := range s.AcceptedFinally {
		deployID, err := deployIDFromName(deployName)
		if err != nil {
			return nil, err
		}
		c.acceptedFinally = append(c.acceptedFinally, deployID)
	}
	for _, deployName := range s.RejectedFinally {
		deployID, err := deployIDFromName(deployName)
		if err != nil {
			return nil, err
		}
		c.rejectedFinally = append(c.rejectedFinally, deployID)
	}

	for channelName, value := range s.InitValues {
		channelID, err := channelIDFromName(channelName)
		if err != nil {
			return nil, err
		}
		c.initValues[*channelID] = value
	}

	return c, nil
}

// Seen implements model.DAGTopologyManager with a breadth-first walk over
// the parent edges.
func (c *scenarioCollaborators) Seen(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainBlockID, error) {
	visited := make(map[externalapi.DomainBlockID]struct{})
	seen := []*externalapi.DomainBlockID{}
	queue := append([]*externalapi.DomainBlockID{}, c.parents[*blockID]...)

	for len(queue) > 0 {
		var current *externalapi.DomainBlockID
		current, queue = queue[0], queue[1:]
		if _, ok := visited[*current]; ok {
			continue
		}
		visited[*current] = struct{}{}
		seen = append(seen, current)
		queue = append(queue, c.parents[*current]...)
	}

	return seen, nil
}

// BlockHeight implements model.DAGTopologyManager
func (c *scenarioCollaborators) BlockHeight(blockID *externalapi.DomainBlockID) (int64, error) {
	height, ok := c.heights[*blockID]
	if !ok {
		return 0, errors.Errorf("unknown block %s", blockID)
	}
	return height, nil
}

// BlockDeploys implements model.DeployIndex
func (c *scenarioCollaborators) BlockDeploys(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainDeploy, error) {
	return c.blockLoad[*blockID], nil
}

// Deploy implements model.DeployIndex
func (c *scenarioCollaborators) Deploy(deployID *externalapi.DomainDeployID) (*externalapi.DomainDeploy, error) {
	deploy, ok := c.deploys[*deployID]
	if !ok {
		return nil, errors.Errorf("unknown deploy %s", deployID)
	}
	return deploy, nil
}

// Conflicts implements model.RelationOracle
func (c *scenarioCollaborators) Conflicts(a, b *externalapi.DomainDeployID) (bool, error) {
	return c.conflicts[[2]externalapi.DomainDeployID{*a, *b}], nil
}

// DependsOn implements model.RelationOracle
func (c *scenarioCollaborators) DependsOn(dependent, dependency *externalapi.DomainDeployID) (bool, error) {
	return c.depends[[2]externalapi.DomainDeployID{*dependent, *dependency}], nil
}

// deployName renders a deploy ID back as its scenario name when known.
func (c *scenarioCollaborators) deployName(deployID *externalapi.DomainDeployID) string {
	if name, ok := c.deployNames[*deployID]; ok {
		return name
	}
	return deployID.String()
}
