package model

import "github.com/bigsur-network/mergedag/domain/merger/model/externalapi"

// DeployIndex exposes the deploys carried by blocks and their metadata.
type DeployIndex interface {
	// BlockDeploys returns the deploys carried by the given block.
	BlockDeploys(blockID *externalapi.DomainBlockID) ([]*externalapi.DomainDeploy, error)

	// Deploy returns the metadata of the given deploy.
	Deploy(deployID *externalapi.DomainDeployID) (*externalapi.DomainDeploy, error)
}
