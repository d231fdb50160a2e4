package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/Veraticus/tasknest/internal/greeting"
	"github.com/Veraticus/tasknest/internal/service"
	"github.com/Veraticus/tasknest/internal/tui/components"
	tuitesting "github.com/Veraticus/tasknest/internal/tui/testing"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher returns canned results and counts calls.
type stubFetcher struct {
	err    error
	result service.GreetingResult
	calls  int
}

func (f *stubFetcher) Fetch(context.Context) (service.GreetingResult, error) {
	f.calls++
	return f.result, f.err
}

// skipTicks drops spinner ticks so Run never waits on a timer.
func skipTicks(msg tea.Msg) bool {
	_, isTick := msg.(spinner.TickMsg)
	return !isTick
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	m, err := New(append([]Option{WithSize(80, 24)}, opts...)...)
	require.NoError(t, err)
	return m
}

func greetingServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

// press sends msg and then runs whatever command it produced.
func press(r *tuitesting.TestRenderer, m tea.Model, msg tea.Msg) Model {
	next, cmd := r.Update(m, msg)
	return r.Run(next, cmd, skipTicks).(Model)
}

func TestNew_RequiresFetcher(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoFetcher)

	m, err := New(WithStatic(""))
	require.NoError(t, err)
	assert.Equal(t, VariantStatic, m.Variant())
	assert.Equal(t, DefaultStaticMessage, m.State().Message)
}

func TestInitialRender(t *testing.T) {
	for _, m := range []Model{
		newTestModel(t, WithFetcher(&stubFetcher{})),
		newTestModel(t, WithStatic("")),
	} {
		t.Run(m.Variant().String(), func(t *testing.T) {
			r := tuitesting.NewTestRenderer()
			r.Render(m)
			view := r.StripANSI()

			assert.Contains(t, view, Title)
			assert.Contains(t, view, ButtonLabel)
			assert.True(t, tuitesting.ContainsInOrder(view, Title, ButtonLabel))
			assert.NotContains(t, view, "Cancel")
			assert.False(t, m.State().Open)
			assert.False(t, m.State().Loading)
			assert.Nil(t, m.Init())
		})
	}
}

func TestInitialState(t *testing.T) {
	networked := newTestModel(t, WithFetcher(&stubFetcher{}))
	assert.Equal(t, ModalState{Message: WaitingMessage}, networked.State())

	static := newTestModel(t, WithStatic("Bonjour"))
	assert.Equal(t, ModalState{Message: "Bonjour"}, static.State())
}

func TestClickOpensModal(t *testing.T) {
	tests := []struct {
		msg  tea.Msg
		name string
	}{
		{name: "enter", msg: tuitesting.KeyEnter()},
		{name: "space", msg: tuitesting.KeySpace()},
		{name: "mouse", msg: tuitesting.MouseClick(40, 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, WithStatic(""))
			next, _ := m.Update(tt.msg)
			assert.True(t, next.(Model).State().Open)
		})
	}
}

func TestNetworked_Success(t *testing.T) {
	server := greetingServer(t, http.StatusOK, `{"message":"hi"}`)
	client := greeting.NewClient(server.URL+"/api/test", greeting.WithHTTPClient(server.Client()))
	m := newTestModel(t, WithFetcher(client))
	r := tuitesting.NewTestRenderer()

	opened, cmd := r.Update(m, tuitesting.KeyEnter())
	state := opened.(Model).State()
	assert.True(t, state.Open)
	assert.True(t, state.Loading)
	require.NotNil(t, cmd)
	assert.Contains(t, r.StripANSI(), "Loading...")

	final := r.Run(opened, cmd, skipTicks).(Model)
	state = final.State()
	assert.True(t, state.Open)
	assert.False(t, state.Loading)
	assert.Equal(t, "hi", state.Message)
	assert.Contains(t, r.StripANSI(), "hi")
	assert.NotContains(t, r.StripANSI(), "Loading...")
	assert.NoError(t, final.LastError())
}

func TestNetworked_Non200(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusNotFound, http.StatusNoContent} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := greetingServer(t, status, `{"message":"ignored"}`)
			client := greeting.NewClient(server.URL, greeting.WithHTTPClient(server.Client()))
			r := tuitesting.NewTestRenderer()

			final := press(r, newTestModel(t, WithFetcher(client)), tuitesting.KeyEnter())

			assert.Equal(t, "API call failed!", final.State().Message)
			assert.False(t, final.State().Loading)
			assert.Contains(t, r.StripANSI(), "API call failed!")
			assert.NotContains(t, r.StripANSI(), "ignored")
		})
	}
}

func TestNetworked_TransportError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.Join(greeting.ErrTransport, errors.New("connection refused"))}
	r := tuitesting.NewTestRenderer()

	final := press(r, newTestModel(t, WithFetcher(fetcher)), tuitesting.KeyEnter())

	state := final.State()
	assert.True(t, state.Open)
	assert.False(t, state.Loading)
	assert.Equal(t, WaitingMessage, state.Message)
	assert.ErrorIs(t, final.LastError(), greeting.ErrTransport)
	assert.Contains(t, r.StripANSI(), "connection refused")
}

func TestNetworked_TransportErrorLogged(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var logs bytes.Buffer
	require.NoError(t, common.SetupLoggerTo(&logs, "debug", "json"))

	fetcher := &stubFetcher{err: errors.Join(greeting.ErrTransport, errors.New("connection refused"))}
	press(tuitesting.NewTestRenderer(), newTestModel(t, WithFetcher(fetcher)), tuitesting.KeyEnter())

	out := logs.String()
	assert.Contains(t, out, `"msg":"greeting request failed"`)
	assert.Contains(t, out, `"seq":1`)
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, `"msg":"fetching greeting"`)
}

func TestNetworked_LongMessageWraps(t *testing.T) {
	message := strings.Repeat("The quick brown fox jumps over the lazy dog and ", 2) + "runs far beyond END"
	fetcher := &stubFetcher{result: service.GreetingResult{Message: message, StatusCode: http.StatusOK, OK: true}}
	r := tuitesting.NewTestRenderer()

	final := press(r, newTestModel(t, WithFetcher(fetcher)), tuitesting.KeyEnter())
	require.Equal(t, message, final.State().Message)

	view := r.StripANSI()
	assert.Contains(t, view, "END")
	for _, line := range strings.Split(view, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 80, "line too wide: %q", line)
	}
}

func TestMouseClickClosesOpenModal(t *testing.T) {
	m := newTestModel(t, WithStatic("Hello, World !"))
	r := tuitesting.NewTestRenderer()

	opened := press(r, m, tuitesting.MouseClick(40, 12))
	require.True(t, opened.State().Open)

	closed := press(r, opened, tuitesting.MouseClick(40, 12))
	assert.False(t, closed.State().Open)
	assert.Contains(t, r.StripANSI(), ButtonLabel)
}

func TestNetworked_StaleResponseIgnored(t *testing.T) {
	m := newTestModel(t, WithFetcher(&stubFetcher{}))

	next, _ := m.Update(tuitesting.KeyEnter())
	next, _ = next.Update(components.ModalClosedMsg{})
	next, _ = next.Update(tuitesting.KeyEnter())
	require.Equal(t, 2, next.(Model).seq)

	// The first request finishes after the second click.
	next, _ = next.Update(greetingFetchedMsg{seq: 1, result: service.GreetingResult{Message: "old", OK: true}})
	state := next.(Model).State()
	assert.True(t, state.Loading)
	assert.Equal(t, WaitingMessage, state.Message)

	next, _ = next.Update(greetingFetchedMsg{seq: 2, result: service.GreetingResult{Message: "new", OK: true}})
	state = next.(Model).State()
	assert.False(t, state.Loading)
	assert.Equal(t, "new", state.Message)
}

func TestStatic_NoNetwork(t *testing.T) {
	m := newTestModel(t, WithStatic("Hello, World !"))
	r := tuitesting.NewTestRenderer()

	next, cmd := r.Update(m, tuitesting.KeyEnter())
	assert.Nil(t, cmd)

	state := next.(Model).State()
	assert.True(t, state.Open)
	assert.False(t, state.Loading)
	assert.Contains(t, r.StripANSI(), "Hello, World !")
	assert.Contains(t, r.StripANSI(), "Cancel")
}

func TestCloseModal(t *testing.T) {
	closers := []struct {
		name string
		keys []tea.Msg
	}{
		{name: "confirm", keys: []tea.Msg{tuitesting.KeyEnter()}},
		{name: "cancel button", keys: []tea.Msg{tuitesting.KeyTab(), tuitesting.KeyEnter()}},
		{name: "escape", keys: []tea.Msg{tuitesting.KeyEsc()}},
	}
	variants := map[string]Option{
		"networked": WithFetcher(&stubFetcher{result: service.GreetingResult{Message: "hi", OK: true}}),
		"static":    WithStatic("Hello, World !"),
	}

	for variant, opt := range variants {
		for _, closer := range closers {
			t.Run(variant+"/"+closer.name, func(t *testing.T) {
				r := tuitesting.NewTestRenderer()
				m := press(r, newTestModel(t, opt), tuitesting.KeyEnter())
				require.True(t, m.State().Open)
				message := m.State().Message

				for _, k := range closer.keys {
					m = press(r, m, k)
				}

				assert.False(t, m.State().Open)
				assert.False(t, m.State().Loading)
				assert.Equal(t, message, m.State().Message)
				assert.NotContains(t, r.StripANSI(), "Cancel")
			})
		}
	}
}

func TestCloseWhileLoading(t *testing.T) {
	m := newTestModel(t, WithFetcher(&stubFetcher{}))

	next, _ := m.Update(tuitesting.KeyEnter())
	require.True(t, next.(Model).State().Loading)

	next, _ = next.Update(components.ModalClosedMsg{Confirmed: false})
	state := next.(Model).State()
	assert.False(t, state.Open)
	assert.False(t, state.Loading)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, WithStatic(""))

	_, cmd := m.Update(tuitesting.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q does nothing while the modal is open; ctrl+c always quits.
	opened, _ := m.Update(tuitesting.KeyEnter())
	next, cmd := opened.Update(tuitesting.KeyPress("q"))
	assert.Nil(t, cmd)
	assert.True(t, next.(Model).State().Open)

	next, cmd = opened.Update(tuitesting.KeyCtrlC())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, next.(Model).Quitting())
	assert.Empty(t, next.View())
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, WithStatic(""))
	r := tuitesting.NewTestRenderer()

	r.Update(m, tuitesting.WindowSize(120, 40))
	lines := r.Lines()
	assert.Len(t, lines, 40)

	titleLine := tuitesting.IndexOfLine(r.StripANSI(), Title)
	assert.Greater(t, titleLine, 10)
	assert.True(t, strings.HasPrefix(lines[titleLine], " "))
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, WithStatic(""))
	r := tuitesting.NewTestRenderer()

	r.Render(m)
	assert.NotContains(t, r.StripANSI(), "force quit")

	r.Update(m, tuitesting.KeyPress("?"))
	assert.Contains(t, r.StripANSI(), "force quit")
}
