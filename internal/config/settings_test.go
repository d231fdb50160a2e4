package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tasknest/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TASKNEST_TEST_DIR", "/srv/data")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "memory dsn", input: ":memory:", want: ":memory:"},
		{name: "tilde only", input: "~", want: home},
		{name: "tilde prefix", input: "~/db/tasks.db", want: filepath.Join(home, "db/tasks.db")},
		{name: "env var", input: "$TASKNEST_TEST_DIR/tasks.db", want: "/srv/data/tasks.db"},
		{name: "absolute", input: "/tmp/tasks.db", want: "/tmp/tasks.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}

func TestLoadGreeting(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)

		g, err := LoadGreeting(v)
		require.NoError(t, err)
		assert.Equal(t, DefaultEndpoint, g.Endpoint)
		assert.Equal(t, DefaultStaticMessage, g.StaticMessage)
		assert.Equal(t, DefaultTheme, g.Theme)
		assert.False(t, g.Static)
	})

	t.Run("overrides", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("greeting.endpoint", "https://example.test/api/test")
		v.Set("greeting.static", true)
		v.Set("greeting.static_message", "Salut")

		g, err := LoadGreeting(v)
		require.NoError(t, err)
		assert.Equal(t, "https://example.test/api/test", g.Endpoint)
		assert.True(t, g.Static)
		assert.Equal(t, "Salut", g.StaticMessage)
	})

	t.Run("bad scheme", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("greeting.endpoint", "ftp://localhost/api/test")

		_, err := LoadGreeting(v)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("static skips endpoint validation", func(t *testing.T) {
		v := viper.New()
		SetDefaults(v)
		v.Set("greeting.static", true)
		v.Set("greeting.endpoint", "not a url")

		_, err := LoadGreeting(v)
		require.NoError(t, err)
	})
}

func TestDatabasePath(t *testing.T) {
	v := viper.New()
	v.Set("database.path", ":memory:")
	assert.Equal(t, ":memory:", DatabasePath(v))

	t.Setenv("HOME", "/home/tester")
	v = viper.New()
	assert.Equal(t, "/home/tester/.local/share/tasknest/tasknest.db", DatabasePath(v))
}
