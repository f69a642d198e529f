package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSlice(t *testing.T) {
	it := FromSlice([]int{3, 1, 2})
	var got []int
	for it.Next() {
		got = append(got, it.Row())
	}
	assert.Equal(t, []int{3, 1, 2}, got)
	assert.False(t, it.Next())
	assert.NoError(t, it.Err())
	assert.NoError(t, it.Close())
}
