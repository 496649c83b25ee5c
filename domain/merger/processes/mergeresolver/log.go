package mergeresolver

import (
	"github.com/bigsur-network/mergedag/infrastructure/logger"
)

var log = logger.RegisterSubSystem("MERG")
