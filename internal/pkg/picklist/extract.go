package picklist

import (
	"slices"
	"strings"
)

// ExtractDependencies expands each value setting to one pair per controlling value
// and sorts the pairs by the controlling value, then by the dependent value.
//
// The value set must have a controlling field and at least one value setting, see CheckDependentField.
func ExtractDependencies(vs ValueSet) DependencyTable {
	size := 0
	for _, setting := range vs.ValueSettings {
		size += len(setting.ControllingFieldValue)
	}

	table := make(DependencyTable, 0, size)
	for _, setting := range vs.ValueSettings {
		for _, controlling := range setting.ControllingFieldValue {
			table = append(table, DependencyPair{ControllingValue: controlling, DependentValue: setting.ValueName})
		}
	}

	slices.SortStableFunc(table, ComparePairs)
	return table
}

// ComparePairs orders pairs by ControllingValue and then by DependentValue, both byte-wise.
func ComparePairs(a, b DependencyPair) int {
	if c := strings.Compare(a.ControllingValue, b.ControllingValue); c != 0 {
		return c
	}
	return strings.Compare(a.DependentValue, b.DependentValue)
}

// Len returns number of pairs.
func (t DependencyTable) Len() int {
	return len(t)
}

// IsSorted returns true if the table is ordered by ComparePairs.
func (t DependencyTable) IsSorted() bool {
	return slices.IsSortedFunc(t, ComparePairs)
}

// Rows converts the table to the [controlling, dependent] records.
func (t DependencyTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, pair := range t {
		rows = append(rows, []string{pair.ControllingValue, pair.DependentValue})
	}
	return rows
}
