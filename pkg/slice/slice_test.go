// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/critiq-app/critiq/pkg/slice"
)

func TestMap(t *testing.T) {
	doubled := slice.Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, doubled)

	assert.Nil(t, slice.Map(nil, func(v int) int { return v }))
}

func TestFilter(t *testing.T) {
	even := slice.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	assert.Nil(t, slice.Filter([]int{1, 3}, func(v int) bool { return v%2 == 0 }))
}
