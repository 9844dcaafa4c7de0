package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"gqlpick/internal/eventbus"
	"gqlpick/internal/pagedsearch"
)

// DefaultBottomOffset is how many rows from the end of the list the
// next page load is triggered.
const DefaultBottomOffset = 30

// Options configures a Dropdown.
type Options[T any] struct {
	Title string
	// RenderItem turns an item into its display row. Required.
	RenderItem func(T) string
	// ItemKey returns a stable identifier, used for the selection
	// event and the CLI's stdout output. Required.
	ItemKey func(T) string
	// OnSelect is called when the user picks an item.
	OnSelect func(T)
	// Disabled renders the dropdown but ignores input.
	Disabled     bool
	EmptyText    string
	Placeholder  string
	BottomOffset int
}

// queryEventMsg wraps a bus event for the UI, the same way the repo
// watcher events are forwarded into the program loop.
type queryEventMsg struct {
	event eventbus.DomainEvent
}

// Dropdown is a searchable dropdown over a paged-search controller:
// a text input on top, a scrolling item list below, infinite scroll
// when the highlight nears the bottom.
type Dropdown[R, T any] struct {
	ctx    context.Context
	ctrl   *pagedsearch.Controller[R, T]
	bus    eventbus.EventBus
	opts   Options[T]
	styles *Styles

	input textinput.Model
	spin  spinner.Model

	cursor int // highlighted row in the item list
	offset int // first visible row
	width  int
	height int

	selected    *T
	events      chan eventbus.DomainEvent
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe []func()
	quitting    bool
}

// NewDropdown builds a dropdown over ctrl. Query completion events
// from the bus drive re-renders; call Close after the program exits.
func NewDropdown[R, T any](ctx context.Context, ctrl *pagedsearch.Controller[R, T], bus eventbus.EventBus, opts Options[T]) *Dropdown[R, T] {
	if opts.RenderItem == nil {
		opts.RenderItem = func(item T) string { return fmt.Sprintf("%v", item) }
	}
	if opts.ItemKey == nil {
		opts.ItemKey = func(item T) string { return fmt.Sprintf("%v", item) }
	}
	if opts.EmptyText == "" {
		opts.EmptyText = "No results"
	}
	if opts.Placeholder == "" {
		opts.Placeholder = "Type to search..."
	}
	if opts.BottomOffset <= 0 {
		opts.BottomOffset = DefaultBottomOffset
	}

	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = "> "
	if !opts.Disabled {
		ti.Focus()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	d := &Dropdown[R, T]{
		ctx:    ctx,
		ctrl:   ctrl,
		bus:    bus,
		opts:   opts,
		styles: NewStyles(),
		input:  ti,
		spin:   sp,
		events: make(chan eventbus.DomainEvent, 64),
		done:   make(chan struct{}),
		height: 24,
		width:  80,
	}

	// Forward query lifecycle events into the program loop
	forward := func(e eventbus.DomainEvent) {
		select {
		case d.events <- e:
		default:
		}
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventQueryCompleted,
		eventbus.EventQueryFailed,
		eventbus.EventPageFetched,
	} {
		d.unsubscribe = append(d.unsubscribe, bus.Subscribe(t, forward))
	}

	return d
}

// Selected returns the picked item, if any, after the program exits.
func (d *Dropdown[R, T]) Selected() (T, bool) {
	if d.selected == nil {
		var zero T
		return zero, false
	}
	return *d.selected, true
}

// Close unsubscribes from the bus, releases the event-forwarding
// goroutine and stops the controller's pending debounced work.
func (d *Dropdown[R, T]) Close() {
	for _, unsub := range d.unsubscribe {
		unsub()
	}
	d.closeOnce.Do(func() { close(d.done) })
	d.ctrl.Close()
}

// Init implements tea.Model
func (d *Dropdown[R, T]) Init() tea.Cmd {
	d.ctrl.Start(d.ctx)
	return tea.Batch(textinput.Blink, d.spin.Tick, d.nextEvent())
}

// nextEvent blocks on the bus-fed channel and delivers one event as a
// message, then is re-armed by Update. Close releases the final,
// never-answered wait.
func (d *Dropdown[R, T]) nextEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-d.events:
			return queryEventMsg{event: e}
		case <-d.done:
			return nil
		}
	}
}

// Update implements tea.Model
func (d *Dropdown[R, T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.clampViewport()
		return d, nil

	case queryEventMsg:
		// A fetch finished in the background; items/pagination are
		// re-derived from the controller on the next View.
		d.clampViewport()
		return d, d.nextEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spin, cmd = d.spin.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *Dropdown[R, T]) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		d.quitting = true
		return d, tea.Quit
	case "esc":
		if d.opts.Disabled {
			d.quitting = true
			return d, tea.Quit
		}
		// First esc clears the search, second cancels
		if v := d.input.Value(); v != "" {
			d.input.SetValue("")
			d.ctrl.Reset(d.ctx)
			d.cursor, d.offset = 0, 0
			return d, nil
		}
		d.quitting = true
		return d, tea.Quit
	}

	if d.opts.Disabled {
		return d, nil
	}

	switch msg.String() {
	case "enter":
		items := d.ctrl.Items()
		if d.cursor < len(items) {
			item := items[d.cursor]
			d.selected = &item
			if d.opts.OnSelect != nil {
				d.opts.OnSelect(item)
			}
			d.bus.Publish(eventbus.ItemSelectedEvent{
				Key:   d.opts.ItemKey(item),
				Label: d.opts.RenderItem(item),
			})
			d.quitting = true
			return d, tea.Quit
		}
		// No highlighted item; apply the typed term immediately
		term := d.input.Value()
		d.ctrl.SearchImmediate(d.ctx, term)
		d.bus.Publish(eventbus.SearchAppliedEvent{Term: strings.TrimSpace(term)})
		d.cursor, d.offset = 0, 0
		return d, nil
	case "up", "ctrl+p":
		d.moveCursor(-1)
		return d, nil
	case "down", "ctrl+n":
		d.moveCursor(1)
		return d, nil
	case "pgup":
		d.moveCursor(-d.listHeight())
		return d, nil
	case "pgdown":
		d.moveCursor(d.listHeight())
		return d, nil
	}

	before := d.input.Value()
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	if v := d.input.Value(); v != before {
		d.ctrl.Search(d.ctx, v)
		d.cursor, d.offset = 0, 0
	}
	return d, cmd
}

// moveCursor shifts the highlight, scrolls the viewport after it and
// kicks off the next page load when the view nears the bottom.
func (d *Dropdown[R, T]) moveCursor(delta int) {
	items := d.ctrl.Items()
	if len(items) == 0 {
		return
	}
	d.cursor += delta
	if d.cursor < 0 {
		d.cursor = 0
	}
	if d.cursor >= len(items) {
		d.cursor = len(items) - 1
	}
	d.clampViewport()

	if NearBottom(len(items), d.listHeight(), d.offset, d.opts.BottomOffset) {
		d.ctrl.LoadNextPage(d.ctx)
	}
}

// clampViewport keeps the highlight visible and the offset in range.
func (d *Dropdown[R, T]) clampViewport() {
	items := d.ctrl.Items()
	if d.cursor >= len(items) {
		d.cursor = len(items) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}
	visible := d.listHeight()
	if d.cursor < d.offset {
		d.offset = d.cursor
	}
	if d.cursor >= d.offset+visible {
		d.offset = d.cursor - visible + 1
	}
	if d.offset < 0 {
		d.offset = 0
	}
}

// listHeight is the number of item rows that fit under the chrome
// (title, input, status and help lines).
func (d *Dropdown[R, T]) listHeight() int {
	h := d.height - 5
	if d.opts.Title != "" {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View implements tea.Model
func (d *Dropdown[R, T]) View() string {
	if d.quitting {
		return ""
	}

	s := ""
	if d.opts.Title != "" {
		s += d.styles.Title.Render(d.opts.Title) + "\n"
	}
	s += d.styles.Input.Render(d.input.View()) + "\n\n"

	items := d.ctrl.Items()
	fetching := d.ctrl.IsFetching()

	switch {
	case len(items) == 0 && fetching:
		s += d.styles.Dim.Render(d.spin.View()+" loading...") + "\n"
	case len(items) == 0:
		s += d.styles.Empty.Render(d.opts.EmptyText) + "\n"
	default:
		end := d.offset + d.listHeight()
		if end > len(items) {
			end = len(items)
		}
		for i := d.offset; i < end; i++ {
			row := d.opts.RenderItem(items[i])
			if i == d.cursor {
				s += d.styles.SelectedBg.Render("▸ "+row) + "\n"
			} else {
				s += d.styles.Item.Render("  "+row) + "\n"
			}
		}
	}

	s += d.statusLine()
	s += "\n" + d.styles.Help.Render("↑/↓ move · enter select · esc clear/quit")
	return s
}

func (d *Dropdown[R, T]) statusLine() string {
	if err := d.ctrl.Err(); err != nil {
		return d.styles.StatusError.Render(fmt.Sprintf("error: %v", err))
	}

	page := d.ctrl.Pagination()
	status := ""
	if !page.IsZero() {
		status = fmt.Sprintf("%d/%d · %d items", page.Page, page.TotalPage, page.Total)
		if page.HasNext() {
			status += " · more available"
		}
	}
	if d.ctrl.IsFetchingNextPage() {
		status += " " + d.spin.View() + " loading more"
	} else if d.ctrl.IsFetching() && len(d.ctrl.Items()) > 0 {
		status += " " + d.spin.View()
	}
	return d.styles.Status.Render(status)
}
