package relationindexer

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/ruleerrors"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
	"github.com/pkg/errors"
)

// WithDependencies returns the given seed set unioned with every deploy
// transitively depending on it under dependencyMap. The dependency
// relation is required to be acyclic; traversal keeps a visited set so a
// cycle terminates with ruleerrors.ErrCyclicDependencies instead of
// looping.
func (ri *relationIndexer) WithDependencies(of deployset.DeploySet,
	dependencyMap model.DeployRelations) (deployset.DeploySet, error) {

	visited := deployset.New()
	onStack := deployset.New()

	for seedID := range of {
		seedIDCopy := seedID
		if visited.Contains(&seedIDCopy) {
			continue
		}
		err := ri.visitDependents(&seedIDCopy, dependencyMap, visited, onStack)
		if err != nil {
			return nil, err
		}
	}

	return visited, nil
}

// visitDependents walks the dependents of deployID depth-first. A deploy
// encountered while still on the traversal stack closes a cycle.
func (ri *relationIndexer) visitDependents(deployID *externalapi.DomainDeployID,
	dependencyMap model.DeployRelations, visited, onStack deployset.DeploySet) error {

	onStack.Add(deployID)

	for dependent := range dependencyMap[*deployID] {
		dependentCopy := dependent
		if onStack.Contains(&dependentCopy) {
			return errors.Wrapf(ruleerrors.ErrCyclicDependencies,
				"dependency cycle through deploy %s", &dependentCopy)
		}
		if visited.Contains(&dependentCopy) {
			continue
		}

		err := ri.visitDependents(&dependentCopy, dependencyMap, visited, onStack)
		if err != nil {
			return err
		}
	}

	onStack.Remove(deployID)
	visited.Add(deployID)
	return nil
}

// IncompatibleWithFinal collects the deploys ruled out by the finalized
// acceptance state: every conflict of a finally-accepted deploy and every
// dependent of a finally-rejected deploy, closed over the dependency
// relation.
func (ri *relationIndexer) IncompatibleWithFinal(acceptedFinally, rejectedFinally deployset.DeploySet,
	conflictsMap, dependencyMap model.DeployRelations) (deployset.DeploySet, error) {

	incompatible := deployset.New()

	for acceptedID := range acceptedFinally {
		incompatible.AddSet(conflictsMap[acceptedID])
	}
	for rejectedID := range rejectedFinally {
		incompatible.AddSet(dependencyMap[rejectedID])
	}

	return ri.WithDependencies(incompatible, dependencyMap)
}
