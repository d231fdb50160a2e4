package tui

import (
	"context"

	"github.com/Veraticus/tasknest/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// fetchGreeting issues the request in the background. seq identifies the
// click that started it.
func fetchGreeting(ctx context.Context, fetcher service.GreetingFetcher, seq int) tea.Cmd {
	return func() tea.Msg {
		result, err := fetcher.Fetch(ctx)
		return greetingFetchedMsg{
			seq:    seq,
			result: result,
			err:    err,
		}
	}
}
