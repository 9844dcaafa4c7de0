package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageInfoHasNext(t *testing.T) {
	t.Parallel()

	assert.True(t, PageInfo{Page: 2, TotalPage: 3}.HasNext())
	assert.False(t, PageInfo{Page: 3, TotalPage: 3}.HasNext())
	assert.False(t, PageInfo{Page: 4, TotalPage: 3}.HasNext())
	assert.False(t, PageInfo{}.HasNext())
	assert.False(t, PageInfo{Page: 1, TotalPage: 0}.HasNext())
}

func TestPaginationNext(t *testing.T) {
	t.Parallel()

	next := Pagination{Page: 2, PageSize: 25}.Next()
	assert.Equal(t, Pagination{Page: 3, PageSize: 25}, next)
}

func TestPageInfoNext(t *testing.T) {
	t.Parallel()

	next := PageInfo{Page: 2, PageSize: 25, Total: 100, TotalPage: 4}.Next()
	assert.Equal(t, Pagination{Page: 3, PageSize: 25}, next)
}

func TestPageInfoIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, PageInfo{}.IsZero())
	assert.False(t, PageInfo{Page: 1}.IsZero())
}
