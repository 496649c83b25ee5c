package relationindexer

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// BuildRelationMap evaluates pred over target×source and indexes the
// related pairs by the source member. Self-relations are never recorded.
// In undirected mode each related pair is recorded under both members,
// which keeps the resulting map symmetric.
func (ri *relationIndexer) BuildRelationMap(directed bool, target, source deployset.DeploySet,
	pred model.DeployPredicate) (model.DeployRelations, error) {

	relations := make(model.DeployRelations)

	for sourceID := range source {
		sourceIDCopy := sourceID
		for targetID := range target {
			targetIDCopy := targetID
			if targetIDCopy.Equal(&sourceIDCopy) {
				continue
			}

			related, err := pred(&targetIDCopy, &sourceIDCopy)
			if err != nil {
				return nil, err
			}
			if !related {
				continue
			}

			addRelation(relations, &sourceIDCopy, &targetIDCopy)
			if !directed {
				addRelation(relations, &targetIDCopy, &sourceIDCopy)
			}
		}
	}

	return relations, nil
}

func addRelation(relations model.DeployRelations, key, value *externalapi.DomainDeployID) {
	related, ok := relations[*key]
	if !ok {
		related = deployset.New()
		relations[*key] = related
	}
	related.Add(value)
}
