package modalDG

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiIndex(t *testing.T) {
	{ // Row-major enumeration, last axis fastest
		mi := NewMultiIndex([]int{2, 3})
		assert.Equal(t, 6, mi.Size())
		var visited [][]int
		for {
			visited = append(visited, append([]int{}, mi.Idx...))
			if !mi.Next() {
				break
			}
		}
		assert.Equal(t, [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, visited)
		assert.Equal(t, []int{0, 0}, mi.Idx)
	}
	{ // Set agrees with Next and Strides
		dims := []int{3, 1, 4, 2}
		strides := Strides(dims)
		assert.Equal(t, []int{8, 8, 2, 1}, strides)
		walker := NewMultiIndex(dims)
		setter := NewMultiIndex(dims)
		for flat := 0; flat < walker.Size(); flat++ {
			setter.Set(flat)
			assert.Equal(t, walker.Idx, setter.Idx)
			var ind int
			for d, i := range setter.Idx {
				ind += i * strides[d]
			}
			assert.Equal(t, flat, ind)
			walker.Next()
		}
	}
}
