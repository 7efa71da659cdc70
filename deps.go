package tether

// sameDeps reports whether two dependency lists have the same identity:
// equal length and element-wise equality of the comparison keys. A nil
// slice is the "always recreate" sentinel and never matches anything,
// itself included. Keys must be comparable; an uncomparable key panics,
// as it would in a map.
func sameDeps(a, b []any) bool {
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// depCount returns the dependency-list length for signal fields, or -1
// when the list is absent.
func depCount(deps []any) int {
	if deps == nil {
		return -1
	}
	return len(deps)
}
