package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gqlpick/internal/domain"
	"gqlpick/internal/eventbus"
	"gqlpick/internal/gql"
	"gqlpick/internal/pagedsearch"
)

type row struct {
	ID   string
	Name string
}

type listResponse struct {
	Items []row
	Page  domain.PageInfo
}

// fakeQuery answers synchronously from a scripted page table.
type fakeQuery struct {
	mu    sync.Mutex
	snap  gql.Result[listResponse]
	pages map[int]listResponse

	fetchMoreCalls int
}

func (f *fakeQuery) Snapshot() gql.Result[listResponse] {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeQuery) Refetch(_ context.Context, vars any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap.Data = f.pages[f.pageOf(vars)]
	f.snap.HasData = true
	f.snap.Err = nil
}

func (f *fakeQuery) FetchMore(_ context.Context, vars any, merge func(prev, incoming listResponse) listResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchMoreCalls++
	incoming, ok := f.pages[f.pageOf(vars)]
	if !ok {
		return
	}
	f.snap.Data = merge(f.snap.Data, incoming)
}

func (f *fakeQuery) pageOf(vars any) int {
	m, _ := vars.(map[string]any)
	p, _ := m["pagination"].(domain.Pagination)
	return p.Page
}

func testController(t *testing.T, q *fakeQuery) *pagedsearch.Controller[listResponse, row] {
	t.Helper()
	ctrl, err := pagedsearch.New(q, pagedsearch.Config[listResponse, row]{
		GetItems:      func(r listResponse) []row { return r.Items },
		GetPagination: func(r listResponse) domain.PageInfo { return r.Page },
		SetItems: func(r listResponse, items []row) listResponse {
			r.Items = items
			return r
		},
		DefaultPagination: domain.Pagination{Page: 1, PageSize: 2},
		DebounceTime:      10 * time.Millisecond,
	})
	require.NoError(t, err)
	return ctrl
}

func twoPages() map[int]listResponse {
	return map[int]listResponse{
		1: {
			Items: []row{{"1", "alpha"}, {"2", "beta"}},
			Page:  domain.PageInfo{Page: 1, PageSize: 2, Total: 4, TotalPage: 2},
		},
		2: {
			Items: []row{{"3", "gamma"}, {"4", "delta"}},
			Page:  domain.PageInfo{Page: 2, PageSize: 2, Total: 4, TotalPage: 2},
		},
	}
}

func newTestDropdown(t *testing.T, q *fakeQuery, opts Options[row]) (*Dropdown[listResponse, row], eventbus.EventBus) {
	t.Helper()
	if opts.RenderItem == nil {
		opts.RenderItem = func(r row) string { return r.Name }
	}
	if opts.ItemKey == nil {
		opts.ItemKey = func(r row) string { return r.ID }
	}
	bus := eventbus.New()
	t.Cleanup(bus.Close)

	d := NewDropdown(context.Background(), testController(t, q), bus, opts)
	t.Cleanup(d.Close)
	d.Init()
	d.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	return d, bus
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func typeRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestInitLoadsFirstPage(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	d, _ := newTestDropdown(t, q, Options[row]{})

	view := d.View()
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "beta")
	assert.Contains(t, view, "1/2")
}

func TestEnterSelectsHighlightedItem(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	var picked row
	d, _ := newTestDropdown(t, q, Options[row]{
		OnSelect: func(r row) { picked = r },
	})

	d.Update(key(tea.KeyDown))
	_, cmd := d.Update(key(tea.KeyEnter))

	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	selected, ok := d.Selected()
	require.True(t, ok)
	assert.Equal(t, "beta", selected.Name)
	assert.Equal(t, "beta", picked.Name)
}

func TestCursorMovementTriggersNextPageLoad(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	// BottomOffset beyond the list, so any movement is near the bottom
	d, _ := newTestDropdown(t, q, Options[row]{BottomOffset: 30})

	d.Update(key(tea.KeyDown))

	assert.Equal(t, 1, q.fetchMoreCalls)
	view := d.View()
	assert.Contains(t, view, "gamma")
	assert.Contains(t, view, "delta")
}

func TestTypingDebouncesIntoSearch(t *testing.T) {
	t.Parallel()

	pages := twoPages()
	q := &fakeQuery{pages: pages}
	d, _ := newTestDropdown(t, q, Options[row]{})

	d.Update(typeRune('a'))
	d.Update(typeRune('l'))

	require.Eventually(t, func() bool {
		_, ok := d.ctrl.SearchValue()
		return ok
	}, time.Second, 5*time.Millisecond)

	value, _ := d.ctrl.SearchValue()
	assert.Equal(t, "al", value, "only the trailing value is applied")
}

func TestEscClearsSearchThenQuits(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	d, _ := newTestDropdown(t, q, Options[row]{})

	d.Update(typeRune('x'))
	_, cmd := d.Update(key(tea.KeyEsc))
	assert.Nil(t, cmd, "first esc clears instead of quitting")
	_, ok := d.ctrl.SearchValue()
	assert.False(t, ok, "reset clears the applied search")

	_, cmd = d.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestDisabledDropdownIgnoresInput(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	d, _ := newTestDropdown(t, q, Options[row]{Disabled: true})

	d.Update(key(tea.KeyDown))
	d.Update(key(tea.KeyEnter))

	_, ok := d.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, q.fetchMoreCalls)
}

func TestEmptyResultShowsEmptyText(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: map[int]listResponse{
		1: {Page: domain.PageInfo{Page: 1, PageSize: 2, Total: 0, TotalPage: 0}},
	}}
	d, _ := newTestDropdown(t, q, Options[row]{EmptyText: "nothing here"})

	assert.Contains(t, d.View(), "nothing here")
}

func TestErrorShownInStatusLine(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	d, _ := newTestDropdown(t, q, Options[row]{})

	q.mu.Lock()
	q.snap.Err = assert.AnError
	q.mu.Unlock()

	assert.Contains(t, d.View(), "error:")
}

func TestCloseReleasesPendingEventWait(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	d, _ := newTestDropdown(t, q, Options[row]{})

	// The program's final nextEvent command is still waiting on the bus
	// channel when the user quits; Close must let it return.
	got := make(chan tea.Msg, 1)
	go func() { got <- d.nextEvent()() }()

	d.Close()

	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("event wait still blocked after Close")
	}
}

func TestSelectionPublishedOnBus(t *testing.T) {
	t.Parallel()

	q := &fakeQuery{pages: twoPages()}
	d, bus := newTestDropdown(t, q, Options[row]{})

	selected := make(chan eventbus.DomainEvent, 1)
	bus.Subscribe(eventbus.EventItemSelected, func(e eventbus.DomainEvent) {
		selected <- e
	})

	d.Update(key(tea.KeyEnter))

	select {
	case e := <-selected:
		ev, ok := e.(eventbus.ItemSelectedEvent)
		require.True(t, ok)
		assert.Equal(t, "1", ev.Key)
		assert.True(t, strings.Contains(ev.Label, "alpha"))
	case <-time.After(time.Second):
		t.Fatal("selection event not published")
	}
}
