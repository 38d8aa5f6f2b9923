// Package tui renders the vector builder popup in the terminal with Bubble Tea.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/huangsam/cvsspop/core/session"
	"github.com/huangsam/cvsspop/schema"
)

// Toast lifetimes.
const (
	NoticeTTL = 3 * time.Second
	CopiedTTL = 1500 * time.Millisecond
)

type noticeExpiredMsg struct{ id int }

type copiedExpiredMsg struct{ id int }

// Model is the Bubble Tea model of the popup.
type Model struct {
	sess      *session.Session
	keys      keyMap
	clipboard ClipboardFunc

	row int // focused metric
	col int // focused value of the focused metric

	editing bool
	input   textinput.Model

	notice   *session.Notice
	noticeID int
	copied   bool
	copiedID int

	width int
}

// Option configures New.
type Option func(*Model)

// WithClipboard replaces the OSC 52 clipboard.
func WithClipboard(fn ClipboardFunc) Option {
	return func(m *Model) { m.clipboard = fn }
}

// New returns a popup model over sess.
func New(sess *session.Session, opts ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = "vector> "
	ti.Placeholder = schema.V3Prefix + "AV:N/AC:L/..."
	ti.CharLimit = 256
	ti.Width = 72

	m := &Model{
		sess:      sess,
		keys:      defaultKeyMap(),
		clipboard: func(string) error { return errors.New("clipboard unavailable") },
		input:     ti,
		width:     80,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.focusSelected()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = max(msg.Width-len(m.input.Prompt)-4, 20)
		}
		return m, nil
	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = nil
		}
		return m, nil
	case copiedExpiredMsg:
		if msg.id == m.copiedID {
			m.copied = false
		}
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

// updateEditing handles keys while the vector editor is open.
func (m *Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		text := m.input.Value()
		m.closeEditor()
		err := m.sess.SubmitVector(text)
		m.focusSelected()
		return m, m.fail(err)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateBrowsing handles keys on the tabs.
func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Tab1):
		return m, m.switchTab(schema.TabCVSS3)
	case key.Matches(msg, m.keys.Tab2):
		return m, m.switchTab(schema.TabCVSS4)
	case key.Matches(msg, m.keys.Tab3):
		return m, m.switchTab(schema.TabAbout)
	case key.Matches(msg, m.keys.Next):
		return m, m.switchTab(nextTab(m.sess.Tab()))
	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditor()
	case key.Matches(msg, m.keys.Copy):
		return m, m.copy()
	}

	ms, ok := m.currentSchema()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
			m.focusSelectedValue(ms)
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < len(ms.Metrics)-1 {
			m.row++
			m.focusSelectedValue(ms)
		}
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(ms.Metrics[m.row].Values)-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.Select):
		metric := ms.Metrics[m.row]
		return m, m.fail(m.sess.SelectMetric(ms.Standard, metric.Key, metric.Values[m.col].Code))
	case key.Matches(msg, m.keys.Reset):
		if err := m.sess.Reset(ms.Standard); err != nil {
			return m, m.fail(err)
		}
		m.focusSelectedValue(ms)
		return m, m.toast(session.Notice{Text: fmt.Sprintf(session.ResetNoticeFormat, ms.Title)})
	}
	return m, nil
}

func (m *Model) switchTab(tab schema.Tab) tea.Cmd {
	if tab == m.sess.Tab() {
		return nil
	}
	if err := m.sess.SwitchTab(tab); err != nil {
		return m.fail(err)
	}
	m.row = 0
	m.focusSelected()
	return nil
}

func (m *Model) openEditor() tea.Cmd {
	text, err := m.sess.EditText()
	if err != nil {
		return m.fail(err)
	}
	m.editing = true
	m.input.SetValue(text)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeEditor() {
	m.editing = false
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) copy() tea.Cmd {
	text, err := m.sess.CopyText()
	if err != nil {
		return m.fail(err)
	}
	if err := m.clipboard(text); err != nil {
		return m.fail(err)
	}
	m.copied = true
	m.copiedID++
	id := m.copiedID
	return tea.Tick(CopiedTTL, func(time.Time) tea.Msg { return copiedExpiredMsg{id: id} })
}

// fail turns an intent error into a toast.
func (m *Model) fail(err error) tea.Cmd {
	notice, ok := session.NoticeFor(err)
	if !ok {
		return nil
	}
	return m.toast(notice)
}

func (m *Model) toast(n session.Notice) tea.Cmd {
	m.notice = &n
	m.noticeID++
	id := m.noticeID
	return tea.Tick(NoticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })
}

// currentSchema returns the schema of the visible tab, if it has one.
func (m *Model) currentSchema() (*schema.MetricSchema, bool) {
	std, ok := schema.StandardFor(m.sess.Tab())
	if !ok {
		return nil, false
	}
	return schema.SchemaFor(std)
}

// focusSelected clamps the cursor to the visible schema.
func (m *Model) focusSelected() {
	ms, ok := m.currentSchema()
	if !ok {
		m.row, m.col = 0, 0
		return
	}
	m.row = min(m.row, len(ms.Metrics)-1)
	m.focusSelectedValue(ms)
}

// focusSelectedValue moves the value cursor onto the selected value of the focused metric.
func (m *Model) focusSelectedValue(ms *schema.MetricSchema) {
	metric := ms.Metrics[m.row]
	selected := m.sess.Selection(ms.Standard)[metric.Key]
	m.col = 0
	for i, v := range metric.Values {
		if v.Code == selected {
			m.col = i
			return
		}
	}
}

func nextTab(tab schema.Tab) schema.Tab {
	for i, t := range schema.AllTabs {
		if t == tab {
			return schema.AllTabs[(i+1)%len(schema.AllTabs)]
		}
	}
	return schema.TabCVSS3
}
