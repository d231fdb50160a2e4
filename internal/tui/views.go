package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state.Open {
		return m.renderModal()
	}
	return m.renderPage()
}

// renderPage renders the title and button centered in the terminal.
func (m Model) renderPage() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render(Title),
		m.theme.ButtonFocused.Render(ButtonLabel),
	)

	return m.place(content)
}

// renderModal renders the dialog in place of the page.
func (m Model) renderModal() string {
	return m.place(m.modal.View())
}

// place centers content above the help line.
func (m Model) place(content string) string {
	if !m.config.ShowHelp || m.state.Open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	helpView := m.theme.Help.Render(m.help.View(m.keymap))
	body := lipgloss.Place(
		m.width,
		max(m.height-lipgloss.Height(helpView), 1),
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, helpView)
}
