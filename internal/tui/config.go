package tui

import (
	"context"

	"github.com/Veraticus/tasknest/internal/service"
	"github.com/Veraticus/tasknest/internal/tui/themes"
)

// Variant selects where the modal message comes from.
type Variant int

const (
	// VariantNetworked fetches the message when the button is pressed.
	VariantNetworked Variant = iota
	// VariantStatic shows a fixed message.
	VariantStatic
)

func (v Variant) String() string {
	if v == VariantStatic {
		return "static"
	}
	return "networked"
}

// Config holds TUI configuration.
type Config struct {
	Context       context.Context
	Fetcher       service.GreetingFetcher
	Theme         themes.Theme
	StaticMessage string
	Width         int
	Height        int
	Variant       Variant
	MouseSupport  bool
	AltScreen     bool
	ShowHelp      bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Context:       context.Background(),
		Theme:         themes.Default,
		StaticMessage: DefaultStaticMessage,
		Width:         80,
		Height:        24,
		Variant:       VariantNetworked,
		MouseSupport:  true,
		AltScreen:     true,
		ShowHelp:      true,
	}
}

// WithFetcher sets the source of the networked message.
func WithFetcher(fetcher service.GreetingFetcher) Option {
	return func(c *Config) {
		c.Fetcher = fetcher
	}
}

// WithStatic switches to the static variant showing message.
// An empty message keeps the default greeting.
func WithStatic(message string) Option {
	return func(c *Config) {
		c.Variant = VariantStatic
		if message != "" {
			c.StaticMessage = message
		}
	}
}

// WithContext sets the context handed to every fetch.
func WithContext(ctx context.Context) Option {
	return func(c *Config) {
		if ctx != nil {
			c.Context = ctx
		}
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFeatures configures terminal features.
func WithFeatures(mouse, altScreen, help bool) Option {
	return func(c *Config) {
		c.MouseSupport = mouse
		c.AltScreen = altScreen
		c.ShowHelp = help
	}
}
