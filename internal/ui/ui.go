package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/subdeck/internal/models"
	"github.com/desertthunder/subdeck/internal/shared"
	"github.com/desertthunder/subdeck/internal/subscriptions"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SubscriptionListView ViewState = iota
	ConfirmUnsubscribeView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	service  *subscriptions.Service
	width    int
	height   int
	subList  list.Model
	subs     []models.Subscription
	sortMode SortMode
	selected *models.Subscription
	loading  bool
	expired  bool
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	unsub   key.Binding
	sort    key.Binding
	refresh key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		unsub: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "unsubscribe"),
		),
		sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		yes: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "yes"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.unsub},
		{k.sort, k.refresh},
		{k.yes, k.no, k.quit},
	}
}

// subItem wraps [models.Subscription] to implement list.Item.
type subItem struct {
	sub models.Subscription
}

func (i subItem) FilterValue() string { return i.sub.Title }
func (i subItem) Title() string       { return i.sub.Title }
func (i subItem) Description() string {
	desc := "since " + shared.FormatDate(i.sub.PublishedAt)
	if i.sub.Statistics != nil && i.sub.Statistics.SubscriberCount != "" {
		desc = fmt.Sprintf("%s subscribers • %s", shared.FormatCount(i.sub.Statistics.SubscriberCount), desc)
	}
	return desc
}

type subsFetchedMsg struct {
	subs []models.Subscription
	err  error
}

type unsubscribedMsg struct {
	title string
	err   error
}

// SessionExpiredMsg is sent into the program from outside when periodic
// revalidation finds the access token dead. The TUI cannot recover the
// session itself, so it exits to the login instructions.
type SessionExpiredMsg struct{}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, service *subscriptions.Service) *Model {
	return &Model{
		ctx:     ctx,
		view:    SubscriptionListView,
		service: service,
		loading: true,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching the subscription collection.
func (m *Model) Init() tea.Cmd {
	return m.fetchSubscriptions(false)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.subList.Width() == 0 {
			m.subList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SubscriptionListView:
			return m.handleListKeys(msg)
		case ConfirmUnsubscribeView:
			return m.handleConfirmKeys(msg)
		}

	case subsFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.subs = msg.subs
		m.rebuildList()
		return m, nil

	case SessionExpiredMsg:
		m.expired = true
		return m, tea.Quit

	case unsubscribedMsg:
		m.view = SubscriptionListView
		m.selected = nil
		if msg.err != nil {
			m.status = ""
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("Unsubscribed from %s", msg.title)
		m.subs = m.service.Snapshot().Subscriptions
		m.rebuildList()
		return m, nil
	}

	var cmd tea.Cmd
	m.subList, cmd = m.subList.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.expired {
		return styles.err.Render("Session expired. Run 'subdeck auth login' to sign in again.")
	}

	if m.loading {
		return styles.help.Render("Loading subscriptions...")
	}

	if m.err != nil && m.view == SubscriptionListView && len(m.subs) == 0 {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.err))
	}

	switch m.view {
	case SubscriptionListView:
		return m.renderList()
	case ConfirmUnsubscribeView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's filter input is active, every key belongs to it.
	if m.subList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.subList, cmd = m.subList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.sortMode = m.sortMode.next()
		m.rebuildList()
		return m, nil
	case "r":
		m.loading = true
		m.status = ""
		return m, m.fetchSubscriptions(true)
	case "d":
		selected := m.subList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(subItem); ok {
				sub := item.sub
				m.selected = &sub
				m.view = ConfirmUnsubscribeView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.subList, cmd = m.subList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = SubscriptionListView
		m.selected = nil
		return m, nil
	case "y":
		return m, m.unsubscribe()
	}
	return m, nil
}

func (m *Model) rebuildList() {
	sorted := SortSubscriptions(m.subs, m.sortMode)
	items := make([]list.Item, len(sorted))
	for i, sub := range sorted {
		items[i] = subItem{sub: sub}
	}

	if m.subList.Width() == 0 {
		m.subList = list.New(items, list.NewDefaultDelegate(), m.width-4, m.height-8)
	} else {
		m.subList.SetItems(items)
	}
	m.subList.Title = fmt.Sprintf("Subscriptions (%d) — sorted by %s", len(sorted), m.sortMode)
}

func (m *Model) fetchSubscriptions(force bool) tea.Cmd {
	return func() tea.Msg {
		var (
			subs []models.Subscription
			err  error
		)
		if force {
			subs, err = m.service.Refresh(m.ctx)
		} else {
			subs, err = m.service.FetchAll(m.ctx)
		}
		return subsFetchedMsg{subs: subs, err: err}
	}
}

func (m *Model) unsubscribe() tea.Cmd {
	sub := *m.selected
	return func() tea.Msg {
		err := m.service.Unsubscribe(m.ctx, sub.ID)
		return unsubscribedMsg{title: sub.Title, err: err}
	}
}

func (m *Model) renderList() string {
	var status string
	if m.status != "" {
		status = "\n" + styles.ok.Render(m.status)
	}
	if m.err != nil {
		status = "\n" + styles.warn.Render(fmt.Sprintf("Warning: %v", m.err))
	}

	helpKeys := []key.Binding{m.keys.unsub, m.keys.sort, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", m.subList.View(), status, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Unsubscribe from '%s'?", m.selected.Title))

	info := fmt.Sprintf("\nChannel: %s\nSubscribed since: %s\n", m.selected.Title, shared.FormatDate(m.selected.PublishedAt))
	if m.selected.Statistics != nil && m.selected.Statistics.SubscriberCount != "" {
		info += fmt.Sprintf("Subscribers: %s\n", shared.FormatCount(m.selected.Statistics.SubscriberCount))
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
