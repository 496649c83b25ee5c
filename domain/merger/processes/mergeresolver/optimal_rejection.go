package mergeresolver

import (
	"github.com/bigsur-network/mergedag/domain/merger/model/externalapi"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// ComputeOptimalRejection picks the rejection option minimizing, in
// lexicographic order, its total cost, then its cardinality, then its
// sorted members. The final key carries no meaning beyond making the
// choice deterministic. No options yield the empty rejection.
func (mr *mergeResolver) ComputeOptimalRejection(options []deployset.DeploySet,
	cost func(*externalapi.DomainDeployID) (uint64, error)) (deployset.DeploySet, error) {

	if len(options) == 0 {
		return deployset.New(), nil
	}

	var optimal deployset.DeploySet
	var optimalCost uint64
	var optimalKey string

	for _, option := range options {
		totalCost, err := optionCost(option, cost)
		if err != nil {
			return nil, err
		}
		key := optionKey(option)

		if optimal == nil || rejectionLess(totalCost, option, key, optimalCost, optimal, optimalKey) {
			optimal = option
			optimalCost = totalCost
			optimalKey = key
		}
	}

	return optimal, nil
}

func optionCost(option deployset.DeploySet,
	cost func(*externalapi.DomainDeployID) (uint64, error)) (uint64, error) {

	totalCost := uint64(0)
	for deployID := range option {
		deployIDCopy := deployID
		deployCost, err := cost(&deployIDCopy)
		if err != nil {
			return 0, err
		}
		totalCost += deployCost
	}
	return totalCost, nil
}

// optionKey concatenates the option's sorted members. String comparison
// of two keys of equal-length options matches element-wise deploy-ID
// comparison, since IDs render as fixed-width hex.
func optionKey(option deployset.DeploySet) string {
	key := ""
	for _, deployID := range option.ToSortedSlice() {
		key += deployID.String()
	}
	return key
}

func rejectionLess(costA uint64, optionA deployset.DeploySet, keyA string,
	costB uint64, optionB deployset.DeploySet, keyB string) bool {

	if costA != costB {
		return costA < costB
	}
	if optionA.Length() != optionB.Length() {
		return optionA.Length() < optionB.Length()
	}
	return keyA < keyB
}
