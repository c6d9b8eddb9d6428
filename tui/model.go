// Package tui is the interactive terminal client.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/client"
	"github.com/SumanthSV/AI-Todo-summarizer/dto"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const noticeTTL = 3 * time.Second

// API is the part of client.Client the UI drives.
type API interface {
	CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (string, error)
	ToggleTodo(ctx context.Context, id string) error
	DeleteTodo(ctx context.Context, id string) error
	GenerateSummary(ctx context.Context) (string, error)
	Subscribe(ctx context.Context) (<-chan client.Snapshot, error)
}

type Options struct {
	// ExportDir receives exported PDFs.
	ExportDir string
}

type (
	snapshotMsg struct {
		snap client.Snapshot
	}
	streamClosedMsg  struct{}
	subscribedMsg    struct{ ch <-chan client.Snapshot }
	subscribeErrMsg  struct{ err error }
	createdMsg       struct{ err error }
	toggledMsg       struct{ err error }
	deletedMsg       struct{ err error }
	summaryDoneMsg   struct{ err error }
	exportedMsg      struct {
		path string
		err  error
	}
	clearNoticeMsg struct{ id int }
)

// Model keeps server state (the latest snapshot) apart from local UI
// state. Writes never touch the snapshot; the next live update does.
type Model struct {
	ctx  context.Context
	api  API
	opts Options
	keys keyMap
	now  func() time.Time

	// server state
	snap client.Snapshot
	live <-chan client.Snapshot

	// local UI state
	list       list.Model
	summary    viewport.Model
	spinner    spinner.Model
	help       help.Model
	form       *huh.Form
	fb         *formBindings
	modalOpen  bool
	submitting bool
	generating bool
	connected  bool
	notice     string
	noticeErr  bool
	noticeID   int

	width, height int
}

func New(ctx context.Context, api API, opts Options) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "My Todos"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	return Model{
		ctx:     ctx,
		api:     api,
		opts:    opts,
		keys:    defaultKeys(),
		now:     time.Now,
		list:    l,
		summary: viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		fb:      newFormBindings(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.subscribe(), m.spinner.Tick)
}

func (m Model) subscribe() tea.Cmd {
	return func() tea.Msg {
		ch, err := m.api.Subscribe(m.ctx)
		if err != nil {
			return subscribeErrMsg{err: err}
		}
		return subscribedMsg{ch: ch}
	}
}

func waitForSnapshot(ch <-chan client.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return snapshotMsg{snap: snap}
	}
}

func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.noticeID++
	m.notice = text
	m.noticeErr = isErr
	id := m.noticeID
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case subscribedMsg:
		m.live = msg.ch
		m.connected = true
		return m, waitForSnapshot(msg.ch)

	case subscribeErrMsg:
		m.connected = false
		return m, m.setNotice("Failed to connect to live updates", true)

	case snapshotMsg:
		m.applySnapshot(msg.snap)
		return m, waitForSnapshot(m.live)

	case streamClosedMsg:
		m.connected = false
		m.live = nil
		return m, m.setNotice("Live updates disconnected (r to reconnect)", true)

	case createdMsg:
		m.submitting = false
		if msg.err != nil {
			// keep the modal and what was typed
			m.form = buildTodoForm(m.fb, m.formWidth())
			return m, tea.Batch(m.form.Init(), m.setNotice("Failed to create todo", true))
		}
		m.fb.reset()
		m.form = nil
		m.modalOpen = false
		return m, m.setNotice("Todo created successfully!", false)

	case toggledMsg:
		if msg.err != nil {
			return m, m.setNotice("Failed to update todo", true)
		}
		return m, m.setNotice("Todo updated!", false)

	case deletedMsg:
		if msg.err != nil {
			return m, m.setNotice("Failed to delete todo", true)
		}
		return m, m.setNotice("Todo deleted!", false)

	case summaryDoneMsg:
		m.generating = false
		if msg.err != nil {
			return m, m.setNotice("Failed to generate summary", true)
		}
		return m, m.setNotice("AI summary generated!", false)

	case exportedMsg:
		if msg.err != nil {
			return m, m.setNotice("Failed to generate PDF", true)
		}
		return m, m.setNotice("Saved "+msg.path, false)

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.modalOpen {
		return m.updateModal(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.summary, cmd = m.summary.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.submitting || m.form == nil {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.form = nil
		m.modalOpen = false
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitting = true
		req := m.fb.request()
		return m, func() tea.Msg {
			_, err := m.api.CreateTodo(m.ctx, req)
			return createdMsg{err: err}
		}
	case huh.StateAborted:
		m.form = nil
		m.modalOpen = false
		return m, nil
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.New):
		m.modalOpen = true
		m.form = buildTodoForm(m.fb, m.formWidth())
		return m.form.Init(), true

	case key.Matches(msg, m.keys.Toggle):
		item, ok := m.list.SelectedItem().(todoItem)
		if !ok {
			return nil, true
		}
		id := item.todo.TodoID
		return func() tea.Msg { return toggledMsg{err: m.api.ToggleTodo(m.ctx, id)} }, true

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(todoItem)
		if !ok {
			return nil, true
		}
		id := item.todo.TodoID
		return func() tea.Msg { return deletedMsg{err: m.api.DeleteTodo(m.ctx, id)} }, true

	case key.Matches(msg, m.keys.Generate):
		if m.generating {
			return nil, true
		}
		if len(m.snap.Todos) == 0 {
			return m.setNotice("Add some todos first to generate a summary!", true), true
		}
		m.generating = true
		return func() tea.Msg {
			_, err := m.api.GenerateSummary(m.ctx)
			return summaryDoneMsg{err: err}
		}, true

	case key.Matches(msg, m.keys.ExportTodos):
		todos, stats, dir, now := m.snap.Todos, m.snap.Stats, m.opts.ExportDir, m.now()
		return func() tea.Msg {
			path, err := client.WriteTodosPDF(dir, todos, stats, now)
			return exportedMsg{path: path, err: err}
		}, true

	case key.Matches(msg, m.keys.ExportSummary):
		if m.snap.Summary == nil {
			return m.setNotice("No summary available to download", true), true
		}
		summary, dir, now := m.snap.Summary, m.opts.ExportDir, m.now()
		return func() tea.Msg {
			path, err := client.WriteSummaryPDF(dir, summary, now)
			return exportedMsg{path: path, err: err}
		}, true

	case key.Matches(msg, m.keys.Reconnect):
		if m.connected {
			return nil, true
		}
		return m.subscribe(), true
	}
	return nil, false
}

func (m *Model) applySnapshot(snap client.Snapshot) {
	m.snap = snap
	items := make([]list.Item, len(snap.Todos))
	for i, todo := range snap.Todos {
		items[i] = todoItem{todo: todo}
	}
	m.list.SetItems(items)

	if snap.Summary != nil {
		m.summary.SetContent(lipgloss.NewStyle().Width(m.summary.Width).Render(snap.Summary.Content))
	} else {
		m.summary.SetContent("")
	}
}

func (m *Model) resize() {
	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth - 4
	bodyHeight := m.height - 4

	m.list.SetSize(leftWidth, bodyHeight)
	m.summary.Width = rightWidth - 2
	m.summary.Height = bodyHeight - 10
	if m.summary.Height < 3 {
		m.summary.Height = 3
	}
	if m.snap.Summary != nil {
		m.summary.SetContent(lipgloss.NewStyle().Width(m.summary.Width).Render(m.snap.Summary.Content))
	}
	m.help.Width = m.width
}

func (m Model) formWidth() int {
	w := m.width - 10
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) View() string {
	if m.modalOpen && m.form != nil {
		body := titleStyle.Render("New Todo") + "\n\n" + m.form.View()
		if m.submitting {
			body += "\n" + m.spinner.View() + " Saving..."
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			modalStyle.Render(body)) + "\n" + m.noticeView()
	}

	left := m.todosView()
	right := lipgloss.JoinVertical(lipgloss.Left, m.statsView(), m.summaryView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.noticeView(), m.help.View(m.keys))
}

func (m Model) todosView() string {
	if !m.snap.Loaded {
		return panelStyle.Render(m.spinner.View() + " Loading todos...")
	}
	if len(m.snap.Todos) == 0 {
		return panelStyle.Render(titleStyle.Render("My Todos") + "\n\n" +
			mutedStyle.Render("No todos yet. Press n to add your first task."))
	}
	return m.list.View()
}

func (m Model) statsView() string {
	s := m.snap.Stats
	if !m.snap.Loaded {
		return panelStyle.Render(mutedStyle.Render("Stats loading..."))
	}
	return panelStyle.Render(fmt.Sprintf("%s\nTotal: %d  Completed: %d  Pending: %d  High priority: %d",
		titleStyle.Render("Stats"), s.Total, s.Completed, s.Pending, s.HighPriority))
}

func (m Model) summaryView() string {
	header := titleStyle.Render("AI Insights")
	switch {
	case m.generating:
		return panelStyle.Render(header + "\n" + m.spinner.View() + " Generating summary...")
	case m.snap.Summary == nil:
		return panelStyle.Render(header + "\n" + mutedStyle.Render("No summary yet. Press g to generate one."))
	}
	meta := mutedStyle.Render(fmt.Sprintf("%d todos · %d completed · %s",
		m.snap.Summary.TodoCount, m.snap.Summary.CompletedCount, m.snap.Summary.CreatedAt.Local().Format("2006-01-02 15:04")))
	return panelStyle.Render(header + "\n" + meta + "\n" + m.summary.View())
}

func (m Model) noticeView() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return errorStyle.Render(m.notice)
	}
	return noticeStyle.Render(m.notice)
}
