package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/apiclient"
	"github.com/kartikey1112/hrms-dashboard/internal/listview"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const submitTimeout = 15 * time.Second

// Column renders one attribute of a row.
type Column[T any] struct {
	Title string
	Width int
	Value func(T) string
}

// FormField binds one form input to the draft. Fields with Choices are
// cycled with left/right instead of typed.
type FormField[D any] struct {
	Label   string
	Choices []string
	Get     func(D) string
	Set     func(*D, string)
}

// RowAction moves the selected row to Status when Key is pressed.
type RowAction struct {
	Key    string
	Label  string
	Status string
}

type ListConfig[T listview.Record, D any] struct {
	Title       string
	Source      listview.Source[T, D]
	Columns     []Column[T]
	Fields      []FormField[D]
	Facets      func(T) listview.Filters
	NewDraft    func() D
	DraftFrom   func(T) D
	Departments []string
	Statuses    []string
	Actions     []RowAction
	PageSize    int
	Debounce    time.Duration
	Theme       Theme
	Logger      *zap.Logger
}

type focus int

const (
	focusTable focus = iota
	focusSearch
	focusForm
)

type activityMsg struct{}

type submitDoneMsg struct{ err error }

type deleteDoneMsg struct{ err error }

type statusDoneMsg struct {
	label string
	err   error
}

// List is a bubbletea model for one resource list.
type List[T listview.Record, D any] struct {
	cfg    ListConfig[T, D]
	ctrl   *listview.Controller[T, D]
	logger *zap.Logger

	// activity is signalled by the controller after background changes. It
	// holds at most one pending signal so the controller never blocks.
	activity chan struct{}

	theme  Theme
	styles Styles

	table  table.Model
	search textinput.Model
	inputs []textinput.Model
	field  int
	focus  focus
	rows   []T
	status string
	width  int
}

func NewList[T listview.Record, D any](cfg ListConfig[T, D]) *List[T, D] {
	l := zap.L().Named("tui.list")
	if cfg.Logger != nil {
		l = cfg.Logger.Named("tui.list")
	}

	m := &List[T, D]{
		cfg:      cfg,
		logger:   l,
		activity: make(chan struct{}, 1),
		theme:    cfg.Theme,
		styles:   NewStyles(cfg.Theme),
	}
	m.ctrl = listview.New(listview.Config[T, D]{
		Source:    cfg.Source,
		Facets:    cfg.Facets,
		NewDraft:  cfg.NewDraft,
		DraftFrom: cfg.DraftFrom,
		PageSize:  cfg.PageSize,
		Debounce:  cfg.Debounce,
		OnChange:  m.signal,
		Logger:    cfg.Logger,
	})

	cols := make([]table.Column, 0, len(cfg.Columns))
	for _, c := range cfg.Columns {
		cols = append(cols, table.Column{Title: c.Title, Width: c.Width})
	}
	m.table = table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	m.applyTheme()

	m.search = textinput.New()
	m.search.Placeholder = "Search..."
	m.search.Prompt = "/ "
	m.search.CharLimit = 100
	m.search.Width = 40
	return m
}

func (m *List[T, D]) signal() {
	select {
	case m.activity <- struct{}{}:
	default:
	}
}

func (m *List[T, D]) waitForActivity() tea.Cmd {
	ch := m.activity
	return func() tea.Msg {
		<-ch
		return activityMsg{}
	}
}

// Controller exposes the underlying list state.
func (m *List[T, D]) Controller() *listview.Controller[T, D] {
	return m.ctrl
}

func (m *List[T, D]) Theme() Theme {
	return m.theme
}

// Close stops the controller. It is safe to call after the program exits.
func (m *List[T, D]) Close() {
	m.ctrl.Close()
}

func (m *List[T, D]) applyTheme() {
	m.styles = NewStyles(m.theme)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Foreground(m.theme.Foreground).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.Foreground).
		Background(m.theme.Selected).
		Bold(false)
	m.table.SetStyles(s)
}

func (m *List[T, D]) Init() tea.Cmd {
	m.ctrl.Load()
	return m.waitForActivity()
}

func (m *List[T, D]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case activityMsg:
		m.syncRows()
		return m, m.waitForActivity()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetWidth(msg.Width)
		if h := msg.Height - 10; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case submitDoneMsg:
		if msg.err != nil {
			m.status = "Save failed: " + errorText(msg.err)
			return m, nil
		}
		m.status = "Saved"
		m.closeForm()
		m.syncRows()
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.status = "Delete failed: " + errorText(msg.err)
		} else {
			m.status = "Deleted"
		}
		m.syncRows()
		return m, nil

	case statusDoneMsg:
		if msg.err != nil {
			m.status = msg.label + " failed: " + errorText(msg.err)
		} else {
			m.status = msg.label + " done"
		}
		m.syncRows()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.ctrl.View().PendingDelete != "":
			return m, m.updateConfirm(msg)
		case m.focus == focusForm:
			return m, m.updateForm(msg)
		case m.focus == focusSearch:
			return m, m.updateSearch(msg)
		default:
			return m, m.updateTable(msg)
		}
	}
	return m, nil
}

func (m *List[T, D]) updateTable(msg tea.KeyMsg) tea.Cmd {
	for _, a := range m.cfg.Actions {
		if msg.String() == a.Key {
			return m.runAction(a)
		}
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "/":
		m.focus = focusSearch
		m.table.Blur()
		return m.search.Focus()
	case "t":
		m.theme = m.theme.Toggle()
		m.applyTheme()
		return nil
	case "r":
		m.ctrl.Refresh()
		return nil
	case "d":
		f := m.ctrl.View().Filters
		m.ctrl.SetDepartment(nextChoice(m.cfg.Departments, f.Department))
		return nil
	case "s":
		f := m.ctrl.View().Filters
		m.ctrl.SetStatus(nextChoice(m.cfg.Statuses, f.Status))
		return nil
	case "]":
		m.ctrl.NextPage()
		return nil
	case "[":
		m.ctrl.PrevPage()
		return nil
	case "n":
		m.ctrl.OpenCreate()
		return m.openForm()
	case "e":
		key, ok := m.selectedKey()
		if !ok {
			return nil
		}
		if err := m.ctrl.OpenEdit(key); err != nil {
			m.status = editUnavailable(err)
			return nil
		}
		return m.openForm()
	case "x":
		key, ok := m.selectedKey()
		if !ok {
			return nil
		}
		if err := m.ctrl.RequestDelete(key); err != nil {
			m.status = editUnavailable(err)
		}
		return nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *List[T, D]) runAction(a RowAction) tea.Cmd {
	key, ok := m.selectedKey()
	if !ok {
		return nil
	}
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return statusDoneMsg{label: a.Label, err: ctrl.SetRecordStatus(ctx, key, a.Status)}
	}
}

func (m *List[T, D]) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.ctrl.CommitSearch()
		m.blurSearch()
		return nil
	case "esc":
		m.blurSearch()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.ctrl.SetSearch(m.search.Value())
	return cmd
}

func (m *List[T, D]) blurSearch() {
	m.focus = focusTable
	m.search.Blur()
	m.table.Focus()
}

func (m *List[T, D]) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		ctrl := m.ctrl
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			return deleteDoneMsg{err: ctrl.ConfirmDelete(ctx)}
		}
	case "n", "esc":
		m.ctrl.CancelDelete()
	}
	return nil
}

func (m *List[T, D]) openForm() tea.Cmd {
	draft := m.ctrl.View().Draft
	m.inputs = make([]textinput.Model, len(m.cfg.Fields))
	for i, f := range m.cfg.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 200
		in.Width = 40
		in.SetValue(f.Get(draft))
		m.inputs[i] = in
	}
	m.field = 0
	m.focus = focusForm
	m.table.Blur()
	m.status = ""
	return m.focusField(0)
}

func (m *List[T, D]) closeForm() {
	m.inputs = nil
	m.focus = focusTable
	m.table.Focus()
}

func (m *List[T, D]) focusField(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.field].Blur()
	m.field = (i + len(m.inputs)) % len(m.inputs)
	if len(m.cfg.Fields[m.field].Choices) > 0 {
		return nil
	}
	return m.inputs[m.field].Focus()
}

func (m *List[T, D]) updateForm(msg tea.KeyMsg) tea.Cmd {
	field := m.cfg.Fields[m.field]
	switch msg.String() {
	case "esc":
		m.ctrl.CloseModal()
		m.closeForm()
		return nil
	case "tab", "down":
		return m.focusField(m.field + 1)
	case "shift+tab", "up":
		return m.focusField(m.field - 1)
	case "enter":
		ctrl := m.ctrl
		m.status = "Saving..."
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()
			return submitDoneMsg{err: ctrl.Submit(ctx)}
		}
	case "left", "right":
		if len(field.Choices) > 0 {
			step := 1
			if msg.String() == "left" {
				step = -1
			}
			m.setField(cycleChoice(field.Choices, m.inputs[m.field].Value(), step))
			return nil
		}
	}
	if len(field.Choices) > 0 {
		return nil
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	m.setField(m.inputs[m.field].Value())
	return cmd
}

func (m *List[T, D]) setField(value string) {
	field := m.cfg.Fields[m.field]
	m.inputs[m.field].SetValue(value)
	m.ctrl.EditDraft(func(d *D) { field.Set(d, value) })
}

func (m *List[T, D]) syncRows() {
	v := m.ctrl.View()
	m.rows = v.Rows
	rows := make([]table.Row, 0, len(v.Rows))
	for _, r := range v.Rows {
		row := make(table.Row, len(m.cfg.Columns))
		for i, c := range m.cfg.Columns {
			row[i] = c.Value(r)
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m *List[T, D]) selectedKey() (string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return "", false
	}
	return m.rows[i].Key(), true
}

func (m *List[T, D]) View() string {
	v := m.ctrl.View()
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render(m.cfg.Title))
	sb.WriteString("\n\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n")
	sb.WriteString(m.filterLine(v.Filters))
	sb.WriteString("\n\n")

	switch {
	case v.Loading && len(v.Rows) == 0:
		sb.WriteString(m.styles.Muted.Render("Loading..."))
	case len(v.Rows) == 0:
		sb.WriteString(m.styles.Muted.Render("No records found"))
	default:
		sb.WriteString(m.table.View())
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(fmt.Sprintf(
		"Page %d of %d · %d total · showing %d of %d fetched",
		max(v.Page.Page, 1), max(v.Page.TotalPages, 1), v.Page.Total, len(v.Rows), v.Fetched,
	)))
	sb.WriteString("\n")

	if v.PendingDelete != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Warning.Render("Delete this record? (y/n)"))
		sb.WriteString("\n")
	}
	if v.Modal.Mode != listview.ModalClosed && len(m.inputs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.formView(v.Modal))
		sb.WriteString("\n")
	}
	if m.status != "" {
		sb.WriteString(m.styles.Muted.Render(m.status))
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Footer.Render(m.help()))
	return sb.String()
}

func (m *List[T, D]) filterLine(f listview.Filters) string {
	var parts []string
	if len(m.cfg.Departments) > 0 {
		parts = append(parts, m.styles.Label.Render("Department: ")+orAll(f.Department))
	}
	if len(m.cfg.Statuses) > 0 {
		parts = append(parts, m.styles.Label.Render("Status: ")+orAll(f.Status))
	}
	return strings.Join(parts, "   ")
}

func (m *List[T, D]) formView(modal listview.Modal) string {
	title := "New record"
	if modal.Mode == listview.ModalEdit {
		title = "Edit record"
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Label.Render(title))
	sb.WriteString("\n\n")
	for i, f := range m.cfg.Fields {
		label := m.styles.Muted.Render(fmt.Sprintf("%-14s", f.Label))
		if i == m.field {
			label = m.styles.Active.Render(fmt.Sprintf("%-14s", f.Label))
		}
		value := m.inputs[i].View()
		if len(f.Choices) > 0 {
			value = "< " + orNone(m.inputs[i].Value()) + " >"
		}
		sb.WriteString(label + value + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("enter save · esc cancel · tab next field"))
	return m.styles.Modal.Render(sb.String())
}

func (m *List[T, D]) help() string {
	keys := []string{"/ search", "n new"}
	if _, ok := m.cfg.Source.(listview.Updater[T, D]); ok {
		keys = append(keys, "e edit")
	}
	if _, ok := m.cfg.Source.(listview.Deleter); ok {
		keys = append(keys, "x delete")
	}
	for _, a := range m.cfg.Actions {
		keys = append(keys, a.Key+" "+strings.ToLower(a.Label))
	}
	if len(m.cfg.Departments) > 0 {
		keys = append(keys, "d department")
	}
	if len(m.cfg.Statuses) > 0 {
		keys = append(keys, "s status")
	}
	keys = append(keys, "[ ] page", "r refresh", "t theme", "q quit")
	return strings.Join(keys, " · ")
}

// nextChoice cycles "" -> choices[0] -> ... -> choices[n-1] -> "".
func nextChoice(choices []string, cur string) string {
	for i, c := range choices {
		if c == cur {
			if i+1 < len(choices) {
				return choices[i+1]
			}
			return ""
		}
	}
	if len(choices) == 0 {
		return ""
	}
	return choices[0]
}

// cycleChoice moves step places through choices, wrapping around. An
// unknown current value starts from the first choice.
func cycleChoice(choices []string, cur string, step int) string {
	if len(choices) == 0 {
		return cur
	}
	for i, c := range choices {
		if c == cur {
			return choices[(i+step+len(choices))%len(choices)]
		}
	}
	return choices[0]
}

func orAll(s string) string {
	if s == "" {
		return "All"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func editUnavailable(err error) string {
	if errors.Is(err, listview.ErrNotSupported) {
		return "Not available for this list"
	}
	return errorText(err)
}

func errorText(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
