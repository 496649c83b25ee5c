package rejectionenumerator

import (
	"sort"

	"github.com/bigsur-network/mergedag/domain/merger/model"
	"github.com/bigsur-network/mergedag/domain/merger/utils/deployset"
)

// Strategy enumerates rejection options over a conflict graph. The only
// requirement on a strategy is that removing any returned option leaves
// the remaining deploys conflict-free; whether the enumeration is
// exhaustive is strategy-specific.
type Strategy interface {
	Name() string
	ComputeRejectionOptions(fullConflictsMap model.DeployRelations) ([]deployset.DeploySet, error)
}

// rejectionEnumerator enumerates rejection options through a strategy
type rejectionEnumerator struct {
	strategy Strategy
}

// New instantiates a new RejectionEnumerator with the given strategy
func New(strategy Strategy) model.RejectionEnumerator {
	return &rejectionEnumerator{
		strategy: strategy,
	}
}

// ComputeRejectionOptions delegates to the configured strategy and
// returns the options in canonical order.
func (re *rejectionEnumerator) ComputeRejectionOptions(
	fullConflictsMap model.DeployRelations) ([]deployset.DeploySet, error) {

	options, err := re.strategy.ComputeRejectionOptions(fullConflictsMap)
	if err != nil {
		return nil, err
	}

	sortOptions(options)
	return options, nil
}

// canonicalKey returns a string that is equal for equal sets. It doubles
// as the sets' lexicographic order key.
func canonicalKey(set deployset.DeploySet) string {
	key := ""
	for _, deployID := range set.ToSortedSlice() {
		key += deployID.String()
	}
	return key
}

func sortOptions(options []deployset.DeploySet) {
	keys := make([]string, len(options))
	for i, option := range options {
		keys[i] = canonicalKey(option)
	}
	sort.Sort(&optionSorter{options: options, keys: keys})
}

type optionSorter struct {
	options []deployset.DeploySet
	keys    []string
}

func (os *optionSorter) Len() int { return len(os.options) }
func (os *optionSorter) Less(i, j int) bool {
	if len(os.options[i]) != len(os.options[j]) {
		return len(os.options[i]) < len(os.options[j])
	}
	return os.keys[i] < os.keys[j]
}
func (os *optionSorter) Swap(i, j int) {
	os.options[i], os.options[j] = os.options[j], os.options[i]
	os.keys[i], os.keys[j] = os.keys[j], os.keys[i]
}
