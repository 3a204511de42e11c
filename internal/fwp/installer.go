package fwp

// ObjectInstaller is the boundary through which compiled filter objects are
// submitted to the filtering engine. Implementations report failure by
// returning false; they never panic for runtime conditions.
type ObjectInstaller interface {
	AddFilter(filter Filter, conditions ConditionSet) bool
}
