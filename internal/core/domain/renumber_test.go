package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenumberIDs(t *testing.T) {
	t.Run("closes the gap left by a deletion", func(t *testing.T) {
		mapping := RenumberIDs([]int{1, 3, 4})

		assert.Equal(t, map[int]int{1: 1, 3: 2, 4: 3}, mapping)
	})

	t.Run("deleting the last project leaves survivors unchanged", func(t *testing.T) {
		mapping := RenumberIDs([]int{1, 2})

		assert.Equal(t, map[int]int{1: 1, 2: 2}, mapping)
	})

	t.Run("empty survivor set", func(t *testing.T) {
		assert.Empty(t, RenumberIDs(nil))
	})

	t.Run("result is dense over 1..N", func(t *testing.T) {
		mapping := RenumberIDs([]int{2, 5, 9, 11})

		seen := make(map[int]bool)
		for _, v := range mapping {
			seen[v] = true
		}
		for i := 1; i <= len(mapping); i++ {
			assert.True(t, seen[i], "missing new ID %d", i)
		}
	})
}
