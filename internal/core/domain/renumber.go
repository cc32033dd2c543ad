package domain

// Project IDs always occupy the contiguous range [1..N]. After any deletion the
// surviving projects are reassigned densely in their existing order.

// RenumberIDs returns the old-to-new ID mapping for the ordered surviving
// project IDs. The first surviving project becomes 1, the second 2, and so on.
func RenumberIDs(surviving []int) map[int]int {
	mapping := make(map[int]int, len(surviving))
	for i, old := range surviving {
		mapping[old] = i + 1
	}
	return mapping
}
