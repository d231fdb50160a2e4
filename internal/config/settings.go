package config

import (
	"fmt"
	"net/url"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/spf13/viper"
)

// Defaults applied when neither the config file nor the environment sets a key.
const (
	DefaultDatabasePath  = "$HOME/.local/share/tasknest/tasknest.db"
	DefaultEndpoint      = "http://localhost:8080/api/test"
	DefaultStaticMessage = "Hello, World !"
	DefaultTheme         = "default"
)

// Greeting holds the settings of the greeting view.
type Greeting struct {
	Endpoint      string
	StaticMessage string
	Theme         string
	Static        bool
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("greeting.endpoint", DefaultEndpoint)
	v.SetDefault("greeting.static", false)
	v.SetDefault("greeting.static_message", DefaultStaticMessage)
	v.SetDefault("greeting.theme", DefaultTheme)
}

// DatabasePath returns the expanded database location.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// LoadGreeting reads the greeting settings from v.
func LoadGreeting(v *viper.Viper) (Greeting, error) {
	g := Greeting{
		Endpoint:      v.GetString("greeting.endpoint"),
		Static:        v.GetBool("greeting.static"),
		StaticMessage: v.GetString("greeting.static_message"),
		Theme:         v.GetString("greeting.theme"),
	}

	if g.Endpoint == "" {
		g.Endpoint = DefaultEndpoint
	}
	if g.StaticMessage == "" {
		g.StaticMessage = DefaultStaticMessage
	}
	if g.Theme == "" {
		g.Theme = DefaultTheme
	}

	if err := g.Validate(); err != nil {
		return Greeting{}, err
	}
	return g, nil
}

// Validate checks that the endpoint is an absolute http(s) URL.
func (g Greeting) Validate() error {
	if g.Static {
		return nil
	}

	u, err := url.Parse(g.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: greeting endpoint: %v", common.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: greeting endpoint must use http or https, got %q", common.ErrInvalidConfig, g.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: greeting endpoint has no host", common.ErrInvalidConfig)
	}
	return nil
}
