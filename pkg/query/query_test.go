package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/critiq-app/critiq/pkg/query"
)

func TestIntSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, query.IntSlice([]string{"1", "2", "3"}))
	assert.Equal(t, []int{4}, query.IntSlice([]string{"4", "four", ""}))
	assert.Nil(t, query.IntSlice(nil))
}

func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"drama", "comedy"}, query.StringSlice("drama,comedy"))
	assert.Equal(t, []string{"drama", "comedy"}, query.StringSlice(" drama , comedy "))
	assert.Equal(t, []string{"drama"}, query.StringSlice("drama,,"))
	assert.Nil(t, query.StringSlice(""))
}
