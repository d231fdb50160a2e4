package tui

import (
	"context"
	"errors"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/tui/components"
	"github.com/Veraticus/tasknest/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Fixed page text.
const (
	Title                = "Hello, World !"
	ButtonLabel          = "Click Me!"
	WaitingMessage       = "Waiting api..."
	DefaultStaticMessage = "Hello, World !"
)

// ErrNoFetcher is returned when the networked variant has nothing to call.
var ErrNoFetcher = errors.New("networked variant requires a greeting fetcher")

// ModalState is the view's local state. Loading is only true while Open
// is true and a request is in flight.
type ModalState struct {
	Message string
	Open    bool
	Loading bool
}

// Model holds the greeting view state.
type Model struct {
	ctx      context.Context
	config   Config
	lastErr  error
	theme    themes.Theme
	keymap   KeyMap
	help     help.Model
	modal    components.ModalModel
	state    ModalState
	seq      int
	width    int
	height   int
	quitting bool
}

// New builds the view from opts.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Variant == VariantNetworked && cfg.Fetcher == nil {
		return Model{}, ErrNoFetcher
	}
	return newModel(cfg), nil
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	state := ModalState{Message: WaitingMessage}
	if cfg.Variant == VariantStatic {
		state.Message = cfg.StaticMessage
	}

	modal := components.NewModalModel(Title, state.Message, cfg.Theme)
	modal.Resize(cfg.Width - 4)

	h := help.New()
	h.ShowAll = false

	return Model{
		ctx:    cfg.Context,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		modal:  modal,
		state:  state,
		width:  cfg.Width,
		height: cfg.Height,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.state.Open {
			var cmd tea.Cmd
			m.modal, cmd = m.modal.Update(msg)
			return m, cmd
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.open()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.modal.Resize(msg.Width - 4)
		return m, nil

	case components.ModalClosedMsg:
		m.close(msg.Confirmed)
		return m, nil

	case greetingFetchedMsg:
		m.handleFetched(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey routes keys to the modal while it is open.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state.Open {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Activate):
		return m.open()
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// open is the button's click handler.
func (m Model) open() (tea.Model, tea.Cmd) {
	m.state.Open = true
	m.lastErr = nil
	m.modal.Reset()
	m.modal.SetError("")
	m.modal.SetBody(m.state.Message)

	if m.config.Variant == VariantStatic {
		return m, nil
	}

	m.seq++
	m.state.Loading = true
	common.LogDebug("fetching greeting", common.Fields{"seq": m.seq})

	tick := m.modal.SetLoading(true)
	return m, tea.Batch(fetchGreeting(m.ctx, m.config.Fetcher, m.seq), tick)
}

// close dismisses the modal. The message is kept.
func (m *Model) close(confirmed bool) {
	m.state.Open = false
	m.state.Loading = false
	m.modal.SetLoading(false)
	common.LogDebug("modal closed", common.Fields{"confirmed": confirmed})
}

// handleFetched applies a completed request unless a newer one was started.
func (m *Model) handleFetched(msg greetingFetchedMsg) {
	if msg.seq != m.seq {
		common.LogDebug("ignoring stale greeting response", common.Fields{"seq": msg.seq, "latest": m.seq})
		return
	}

	m.state.Loading = false
	m.modal.SetLoading(false)

	if msg.err != nil {
		m.lastErr = msg.err
		common.LogError(msg.err, "greeting request failed", common.Fields{"seq": msg.seq})
		m.modal.SetError(msg.err.Error())
		return
	}

	m.state.Message = msg.result.Message
	m.modal.SetBody(m.state.Message)
}

// State returns a copy of the modal state.
func (m Model) State() ModalState {
	return m.state
}

// Variant returns the configured variant.
func (m Model) Variant() Variant {
	return m.config.Variant
}

// LastError returns the error of the latest request, if it failed.
func (m Model) LastError() error {
	return m.lastErr
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}
