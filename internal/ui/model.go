package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"selectmenu/internal/config"
	"selectmenu/internal/domain"
	"selectmenu/internal/eventbus"
	"selectmenu/internal/preview"
	"selectmenu/internal/selection"
	"selectmenu/internal/ui/input"
	inputtypes "selectmenu/internal/ui/input/types"
	"selectmenu/internal/ui/views"
)

const defaultViewportHeight = 10

// Model is the Bubble Tea menu. It is the list view the selection
// controller drives: rows resolve to domain.Item values identified by Key.
type Model struct {
	bus        eventbus.EventBus
	config     *config.Config
	items      []domain.Item
	controller *selection.Controller

	// checked caches the selected keys; rebuilt by Refresh
	checked map[string]bool
	// pressed is the row activated in the current key press, -1 when none
	pressed int

	width     int
	height    int
	help      help.Model
	navigator *Navigator
	renderer  *views.Renderer
	input     *input.Handler

	statusMessage string
	statusIsError bool
	statusSeq     int

	done      bool
	confirmed bool

	// newPager builds the command used to show a preview
	newPager func(content string) tea.ExecCommand
}

// Ensure Model satisfies the controller's view contract
var (
	_ selection.ListView      = (*Model)(nil)
	_ selection.RowDeselecter = (*Model)(nil)
)

// NewModel creates a menu over items driven by controller
func NewModel(items []domain.Item, controller *selection.Controller, cfg *config.Config, bus eventbus.EventBus) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if bus == nil {
		bus = eventbus.Nop()
	}

	multi := controller.Policy() == selection.Multi
	keys := input.NewKeyMap(multi)

	h := help.New()
	h.ShowAll = false

	height := cfg.UISettings.Height
	if height <= 0 {
		height = defaultViewportHeight
	}

	m := &Model{
		bus:        bus,
		config:     cfg,
		items:      items,
		controller: controller,
		checked:    make(map[string]bool),
		pressed:    -1,
		help:       h,
		navigator:  NewNavigator(len(items), height),
		renderer: views.NewRenderer(views.Glyphs{
			Cursor:    cfg.UISettings.Cursor,
			Checked:   cfg.UISettings.Checked,
			Unchecked: cfg.UISettings.Unchecked,
		}),
		input: input.New(keys),
		newPager: func(content string) tea.ExecCommand {
			return preview.NewPagerCommand(content)
		},
	}
	m.Refresh()
	return m
}

// Preselect seeds the selection with the items whose keys are given.
// Unknown keys are skipped. The cursor moves to the first seeded row.
func (m *Model) Preselect(keys []string) {
	first := -1
	for _, k := range keys {
		idx := m.indexOfKey(k)
		if idx < 0 {
			log.Printf("Preselect: no item with key %q", k)
			continue
		}
		m.controller.AddPreselected(m.items[idx], m)
		if first < 0 {
			first = idx
		}
	}
	if first >= 0 {
		m.navigator.MoveTo(first)
	}
	m.Refresh()
}

// ObjectAt resolves a row index to its item
func (m *Model) ObjectAt(index int) (any, bool) {
	if index < 0 || index >= len(m.items) {
		return nil, false
	}
	return m.items[index], true
}

// IsSelected finds an item with the same key in current
func (m *Model) IsSelected(object any, current []any) (int, bool) {
	item, ok := object.(domain.Item)
	if !ok {
		return -1, false
	}
	for i, o := range current {
		if other, ok := o.(domain.Item); ok && other.Key == item.Key {
			return i, true
		}
	}
	return -1, false
}

// Refresh rebuilds the checked rows from the controller's selection
func (m *Model) Refresh() {
	checked := make(map[string]bool, m.controller.Len())
	for _, o := range m.controller.Selected() {
		if item, ok := o.(domain.Item); ok {
			checked[item.Key] = true
		}
	}
	m.checked = checked
}

// DismissIfRequired closes a single-select menu when dismiss_on_select is set
func (m *Model) DismissIfRequired() {
	if m.controller.Policy() == selection.Single && m.config.DismissOnSelect {
		m.done = true
		m.confirmed = true
	}
}

// DeselectRow drops the transient highlight of an activated row
func (m *Model) DeselectRow(index int) {
	if m.pressed == index {
		m.pressed = -1
	}
}

// Result returns the selected items and whether the user confirmed them
func (m *Model) Result() ([]domain.Item, bool) {
	selected := m.controller.Selected()
	items := make([]domain.Item, 0, len(selected))
	for _, o := range selected {
		if item, ok := o.(domain.Item); ok {
			items = append(items, item)
		}
	}
	return items, m.confirmed
}

// Done reports whether the menu has closed
func (m *Model) Done() bool {
	return m.done
}

// Cursor returns the row under the keyboard cursor
func (m *Model) Cursor() int {
	return m.navigator.Cursor
}

// Context implementation for the input handler

func (m *Model) CurrentIndex() int  { return m.navigator.Cursor }
func (m *Model) TotalItems() int    { return len(m.items) }
func (m *Model) IsMulti() bool      { return m.controller.Policy() == selection.Multi }
func (m *Model) SelectedCount() int { return len(m.checked) }

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		var cmds []tea.Cmd
		for _, action := range m.input.HandleKey(msg, m) {
			cmds = append(cmds, m.apply(action))
			if m.done {
				return m, m.finish()
			}
		}
		return m, tea.Batch(cmds...)

	case previewDoneMsg:
		if msg.err != nil {
			log.Printf("Preview failed for %s: %v", msg.key, msg.err)
			m.bus.Publish(eventbus.PreviewFailedEvent{Key: msg.key, Err: msg.err})
			return m, m.setStatus(fmt.Sprintf("Preview failed: %v", msg.err), true)
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMessage = ""
			m.statusIsError = false
		}
		return m, nil
	}

	return m, nil
}

// apply executes a single input action
func (m *Model) apply(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.Navigate(a.Direction)

	case inputtypes.ActivateAction:
		m.activate(a.Index)

	case inputtypes.ToggleAllAction:
		m.toggleAll()

	case inputtypes.PreviewAction:
		return m.preview(a.Index)

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		m.updateViewportHeight()

	case inputtypes.ConfirmAction:
		m.done = true
		m.confirmed = true

	case inputtypes.QuitAction:
		m.done = true
		m.confirmed = false
	}
	return nil
}

// activate forwards a row activation to the controller
func (m *Model) activate(index int) {
	m.pressed = index
	m.controller.HandleRowActivated(index, m)
}

// toggleAll activates every unchecked row, or every row when all are checked
func (m *Model) toggleAll() {
	allChecked := len(m.checked) == len(m.items)
	for i, item := range m.items {
		if allChecked || !m.checked[item.Key] {
			m.activate(i)
		}
	}
}

// preview shows the item at index in the pager
func (m *Model) preview(index int) tea.Cmd {
	obj, ok := m.ObjectAt(index)
	if !ok {
		return nil
	}
	item := obj.(domain.Item)

	width := m.width
	if width <= 0 {
		width = 80
	}
	content := preview.Render(item, width-4)

	return tea.Exec(m.newPager(content), func(err error) tea.Msg {
		return previewDoneMsg{key: item.Key, err: err}
	})
}

// finish publishes the outcome and quits the program
func (m *Model) finish() tea.Cmd {
	items, confirmed := m.Result()
	m.bus.Publish(eventbus.MenuDismissedEvent{
		Confirmed: confirmed,
		Keys:      domain.Keys(items),
	})
	return tea.Quit
}

func (m *Model) setStatus(message string, isError bool) tea.Cmd {
	m.statusMessage = message
	m.statusIsError = isError
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// updateViewportHeight fits the list into the terminal unless the config
// fixes the height
func (m *Model) updateViewportHeight() {
	if m.config.UISettings.Height > 0 || m.height <= 0 {
		return
	}
	height := m.height - views.ChromeHeight
	if m.config.UISettings.ShowHelp && m.help.ShowAll {
		height -= len(m.input.Keys().FullHelp()[0]) - 1
	}
	m.navigator.SetViewportHeight(height)
}

func (m *Model) indexOfKey(key string) int {
	for i, it := range m.items {
		if it.Key == key {
			return i
		}
	}
	return -1
}

// View renders the menu
func (m *Model) View() string {
	if m.done {
		return ""
	}

	rows := make([]views.RowState, len(m.items))
	for i, item := range m.items {
		rows[i] = views.RowState{
			Label:     item.Label(),
			IsCursor:  i == m.navigator.Cursor,
			IsChecked: m.checked[item.Key],
			IsPressed: i == m.pressed,
		}
	}

	helpView := ""
	if m.config.UISettings.ShowHelp {
		helpView = m.help.View(m.input.Keys())
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Title:          m.config.Title,
		Multi:          m.IsMulti(),
		Rows:           rows,
		ViewportOffset: m.navigator.ViewportOffset,
		ViewportHeight: m.navigator.ViewportHeight,
		SelectedCount:  len(m.checked),
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		HelpView:       helpView,
	})
}
