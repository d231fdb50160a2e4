package components

import (
	"github.com/Veraticus/tasknest/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Button identifies one of the modal controls.
type Button int

const (
	ButtonOK Button = iota
	ButtonCancel
)

func (b Button) String() string {
	if b == ButtonCancel {
		return "Cancel"
	}
	return "OK"
}

// ModalKeyMap holds the bindings the modal reacts to.
type ModalKeyMap struct {
	Confirm key.Binding
	Next    key.Binding
	Cancel  key.Binding
}

// DefaultModalKeyMap returns the default modal bindings.
func DefaultModalKeyMap() ModalKeyMap {
	return ModalKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter", "press button"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab/←/→", "switch button"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ModalModel is a dialog with a title, a body and OK / Cancel buttons.
// While loading it shows a spinner in place of the body.
type ModalModel struct {
	theme   themes.Theme
	keymap  ModalKeyMap
	spinner spinner.Model
	title   string
	body    string
	errText string
	width   int
	focused Button
	loading bool
}

// NewModalModel creates a modal with the OK button focused.
func NewModalModel(title, body string, theme themes.Theme) ModalModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	return ModalModel{
		theme:   theme,
		keymap:  DefaultModalKeyMap(),
		spinner: s,
		title:   title,
		body:    body,
		focused: ButtonOK,
	}
}

// Update handles key presses and spinner ticks.
func (m ModalModel) Update(msg tea.Msg) (ModalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Next):
			m.focused = (m.focused + 1) % 2
		case key.Matches(msg, m.keymap.Confirm):
			return m, closeCmd(m.focused == ButtonOK)
		case key.Matches(msg, m.keymap.Cancel):
			return m, closeCmd(false)
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m, closeCmd(true)
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func closeCmd(confirmed bool) tea.Cmd {
	return func() tea.Msg {
		return ModalClosedMsg{Confirmed: confirmed}
	}
}

// View renders the modal box.
func (m ModalModel) View() string {
	body := m.body
	if m.loading {
		body = m.spinner.View() + " " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading...")
	}

	box := m.theme.ModalBox
	inner := 0
	if m.width > 0 {
		inner = m.width - box.GetHorizontalFrameSize()
		box = box.MaxWidth(m.width)
	}

	sections := []string{
		m.theme.ModalTitle.Render(m.title),
		"",
		wrap(m.theme.Normal, body, inner),
	}
	if m.errText != "" {
		sections = append(sections, "", wrap(m.theme.StatusError, m.errText, inner))
	}
	sections = append(sections,
		"",
		m.renderButtons(),
		"",
		m.theme.Help.Render("tab switch | enter press | click ok | esc cancel"),
	)

	return box.Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// wrap renders text with style, word wrapping it when it is wider than width.
func wrap(style lipgloss.Style, text string, width int) string {
	if width > 0 && lipgloss.Width(text) > width {
		style = style.Width(width)
	}
	return style.Render(text)
}

func (m ModalModel) renderButtons() string {
	render := func(b Button) string {
		if b == m.focused {
			return m.theme.ButtonFocused.Render(b.String())
		}
		return m.theme.Button.Render(b.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, render(ButtonOK), "  ", render(ButtonCancel))
}

// SetLoading toggles the spinner. Turning it on returns the first tick.
func (m *ModalModel) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// SetBody replaces the body text.
func (m *ModalModel) SetBody(body string) {
	m.body = body
}

// SetError shows err below the body; an empty string hides it.
func (m *ModalModel) SetError(errText string) {
	m.errText = errText
}

// Reset focuses the OK button again.
func (m *ModalModel) Reset() {
	m.focused = ButtonOK
}

// Loading reports whether the spinner is shown.
func (m ModalModel) Loading() bool {
	return m.loading
}

// Body returns the body text.
func (m ModalModel) Body() string {
	return m.body
}

// Focused returns the focused button.
func (m ModalModel) Focused() Button {
	return m.focused
}

// Resize limits the rendered width.
func (m *ModalModel) Resize(width int) {
	m.width = width
}
