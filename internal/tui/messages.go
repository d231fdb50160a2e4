package tui

import "github.com/Veraticus/tasknest/internal/service"

// greetingFetchedMsg carries the outcome of one fetch back into Update.
type greetingFetchedMsg struct {
	err    error
	result service.GreetingResult
	seq    int
}
