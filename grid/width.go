package grid

// width is a contribution of a single cell to the width of its column.
//
// Forced contribution comes from a cell whose text fits entirely into the
// empty columns following it. It is the weakest possible requirement: used
// only when no other row in the column needs anything.
type width struct {
	value  int
	forced bool
}

func plainWidth(v int) width {
	return width{value: v}
}

func forcedWidth(v int) width {
	return width{value: v, forced: true}
}

// resolveWidth selects column width from all row contributions. Largest plain
// contribution wins unless it is zero, then the largest forced one is used.
func resolveWidth(contributions []width) int {
	var plain, forced int
	for _, c := range contributions {
		if c.forced {
			forced = max(forced, c.value)
			continue
		}
		plain = max(plain, c.value)
	}
	if plain > 0 {
		return plain
	}
	return forced
}
