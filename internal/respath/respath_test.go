package respath

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gqlpick/internal/domain"
)

func decoded(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestLookup(t *testing.T) {
	t.Parallel()

	m := decoded(t, `{"users":{"items":[{"id":1}],"pagination":{"total":5}}}`)

	v, ok := Lookup(m, "users.items")
	require.True(t, ok)
	assert.Len(t, v, 1)

	_, ok = Lookup(m, "users.missing")
	assert.False(t, ok)

	_, ok = Lookup(m, "users.items.deeper")
	assert.False(t, ok, "cannot descend through a list")

	_, ok = Lookup(nil, "users")
	assert.False(t, ok)
}

func TestWithValueLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	m := decoded(t, `{"users":{"items":[1],"pagination":{"total":5}}}`)
	out := WithValue(m, "users.items", []any{1.0, 2.0, 3.0})

	v, ok := Lookup(out, "users.items")
	require.True(t, ok)
	assert.Len(t, v, 3)

	// The sibling value survives and the original is unchanged
	total, ok := Lookup(out, "users.pagination.total")
	require.True(t, ok)
	assert.Equal(t, 5.0, total)

	orig, ok := Lookup(m, "users.items")
	require.True(t, ok)
	assert.Len(t, orig, 1)
}

func TestWithValueCreatesMissingObjects(t *testing.T) {
	t.Parallel()

	out := WithValue(map[string]any{}, "a.b.c", "x")
	v, ok := Lookup(out, "a.b.c")
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestItemsHandlesBothListShapes(t *testing.T) {
	t.Parallel()

	fresh := decoded(t, `{"items":[{"id":1},{"id":2}]}`)
	items := Items(fresh, "items")
	require.Len(t, items, 2)

	// After a merge the list has been written back as []map[string]any
	merged := WithValue(fresh, "items", append(items, map[string]any{"id": 3}))
	assert.Len(t, Items(merged, "items"), 3)

	assert.Nil(t, Items(fresh, "nope"))
	assert.Nil(t, Items(decoded(t, `{"items":"not-a-list"}`), "items"))
}

func TestPageInfo(t *testing.T) {
	t.Parallel()

	m := decoded(t, `{"users":{"pagination":{"pageNumber":2,"pageSize":10,"total":35,"totalPage":4}}}`)
	info := PageInfo(m, "users.pagination")
	assert.Equal(t, domain.PageInfo{Page: 2, PageSize: 10, Total: 35, TotalPage: 4}, info)

	assert.Equal(t, domain.PageInfo{}, PageInfo(m, "users.missing"))
}

func TestString(t *testing.T) {
	t.Parallel()

	m := decoded(t, `{"id":42,"name":"alice","nested":{"deep":"v"}}`)
	assert.Equal(t, "alice", String(m, "name"))
	assert.Equal(t, "42", String(m, "id"))
	assert.Equal(t, "v", String(m, "nested.deep"))
	assert.Equal(t, "", String(m, "missing"))
}

func TestInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, Int(7.0))
	assert.Equal(t, 7, Int(7))
	assert.Equal(t, 7, Int(int64(7)))
	assert.Equal(t, 7, Int(json.Number("7")))
	assert.Equal(t, 0, Int("7"))
	assert.Equal(t, 0, Int(nil))
}
