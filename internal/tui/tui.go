// Package tui implements the interactive dashboard on top of the
// interaction controller.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Natatashkin/todo/internal/controller"
	"github.com/Natatashkin/todo/internal/output"
	"github.com/Natatashkin/todo/internal/service"
)

// Messages carrying the outcome of remote calls back into Update.
type (
	loadedMsg    struct{ err error }
	mutatedMsg   struct{ err error }
	submittedMsg struct{ err error }
)

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx  context.Context
	ctrl *controller.Controller

	spinner spinner.Model
	input   textinput.Model
	search  textinput.Model

	filtering  bool
	submitting bool
	pending    int
	cursor    int
	width     int
}

// New creates a dashboard model driving ctrl. ctx bounds every remote call.
func New(ctx context.Context, ctrl *controller.Controller) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 256

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "filter"

	return &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		spinner: sp,
		input:   input,
		search:  search,
	}
}

// Run starts the dashboard and blocks until the user quits.
func Run(ctx context.Context, ctrl *controller.Controller) error {
	program := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-8, 20)
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.IsLoading() && m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.clampCursor()
		return m, nil

	case submittedMsg:
		m.submitting = false
		return m.Update(mutatedMsg(msg))

	case mutatedMsg:
		m.pending--
		if !m.ctrl.IsModalOpen() {
			m.input.Blur()
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case m.ctrl.IsModalOpen():
			return m.updateModal(msg)
		case m.filtering:
			return m.updateFilter(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CloseModal()
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		if m.submitting {
			return m, nil
		}
		return m, m.submitTitle(m.input.Value())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.ctrl.SetFilterText("")
		m.leaveFilter()
		return m, nil
	case tea.KeyEnter:
		m.leaveFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetFilterText(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ctrl.View().Tasks)-1 {
			m.cursor++
		}
	case "a":
		m.openModal(nil)
		return m, textinput.Blink
	case "e", "enter":
		if task, ok := m.selected(); ok {
			m.openModal(&task)
			return m, textinput.Blink
		}
	case " ", "x":
		if task, ok := m.selected(); ok {
			return m, m.mutate(func(ctx context.Context) error {
				return m.ctrl.ToggleCompleted(ctx, task.ID)
			})
		}
	case "d":
		if task, ok := m.selected(); ok {
			return m, m.mutate(func(ctx context.Context) error {
				return m.ctrl.RequestDelete(ctx, task.ID)
			})
		}
	case "/":
		m.filtering = true
		m.search.Focus()
		return m, textinput.Blink
	case "r":
		return m, m.refresh()
	case "esc":
		m.ctrl.ClearNotice()
	}
	return m, nil
}

func (m *Model) openModal(task *service.Task) {
	m.ctrl.ClearNotice()
	m.ctrl.ToggleCreateOrEdit(task)
	if task != nil {
		m.input.SetValue(task.Title)
	} else {
		m.input.SetValue("")
	}
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) leaveFilter() {
	m.filtering = false
	m.search.Blur()
	m.clampCursor()
}

func (m *Model) selected() (service.Task, bool) {
	tasks := m.ctrl.View().Tasks
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return service.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.View().Tasks)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) start() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{err: m.ctrl.Start(ctx)}
	}
}

func (m *Model) refresh() tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{err: m.ctrl.Refresh(ctx)}
	}
}

// submitTitle sends the modal value. Further enters are ignored until the
// call returns.
func (m *Model) submitTitle(value string) tea.Cmd {
	m.submitting = true
	m.pending++
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return submittedMsg{err: m.ctrl.SubmitTitle(ctx, value)}
	})
}

// mutate runs fn off the update loop and keeps the spinner going meanwhile.
func (m *Model) mutate(fn func(ctx context.Context) error) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return mutatedMsg{err: fn(ctx)}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dashboard"))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Control Panel"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("a add · e edit · space toggle · d delete · / filter · r reload · q quit"))
	b.WriteString("\n")

	if m.ctrl.IsModalOpen() {
		b.WriteString(m.modalView())
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render("Todo List"))
	b.WriteString("\n")
	b.WriteString(m.listView())

	if notice := m.ctrl.Notice(); notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render("! " + notice))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *Model) modalView() string {
	heading := "New task"
	if task, ok := m.ctrl.CurrentTask(); ok {
		heading = fmt.Sprintf("Edit %q", output.Title(task.Title))
	}
	body := heading + "\n" + m.input.View() + "\n" + hintStyle.Render("enter save · esc cancel")
	return modalStyle.Render(body)
}

func (m *Model) listView() string {
	if m.ctrl.IsLoading() {
		return m.spinner.View() + " Loading...\n"
	}

	var b strings.Builder
	if m.filtering {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if filter := m.ctrl.FilterText(); filter != "" {
		b.WriteString(hintStyle.Render("filter: " + filter))
		b.WriteString("\n")
	}

	res := m.ctrl.View()
	if len(res.Tasks) == 0 {
		b.WriteString(hintStyle.Render("No tasks"))
		b.WriteString("\n")
		return b.String()
	}

	for i, task := range res.Tasks {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		check := "[ ]"
		title := output.Title(task.Title)
		if task.Completed {
			check = "[x]"
			title = completedStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, check, title)
	}

	summary := fmt.Sprintf("%d open, %d completed", res.Open, res.Completed)
	if m.pending > 0 {
		summary = m.spinner.View() + " " + summary
	}
	b.WriteString(hintStyle.Render(summary))
	b.WriteString("\n")
	return b.String()
}
