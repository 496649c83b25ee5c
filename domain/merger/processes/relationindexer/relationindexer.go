package relationindexer

import (
	"github.com/bigsur-network/mergedag/domain/merger/model"
)

// relationIndexer builds relation maps over deploys and computes
// closures over them
type relationIndexer struct {
}

// New instantiates a new RelationIndexer
func New() model.RelationIndexer {
	return &relationIndexer{}
}
