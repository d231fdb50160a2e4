package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/tasknest/internal/config"
	"github.com/Veraticus/tasknest/internal/greeting"
	"github.com/Veraticus/tasknest/internal/tui"
	"github.com/Veraticus/tasknest/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func greetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "greet",
		Short: "Open the greeting view",
		Long: `Show the greeting page. Pressing the button opens a modal whose
message comes from the configured HTTP endpoint, or from a fixed
string when --static is set.`,
		RunE: runGreet,
	}

	cmd.Flags().Bool("static", false, "Show a fixed message instead of calling the endpoint")
	cmd.Flags().String("endpoint", config.DefaultEndpoint, "Greeting endpoint URL")
	cmd.Flags().String("message", config.DefaultStaticMessage, "Message shown with --static")
	cmd.Flags().String("theme", config.DefaultTheme, "Color theme (default, catppuccin-mocha)")
	cmd.Flags().Bool("no-mouse", false, "Disable mouse support")

	_ = viper.BindPFlag("greeting.static", cmd.Flags().Lookup("static"))
	_ = viper.BindPFlag("greeting.endpoint", cmd.Flags().Lookup("endpoint"))
	_ = viper.BindPFlag("greeting.static_message", cmd.Flags().Lookup("message"))
	_ = viper.BindPFlag("greeting.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runGreet(cmd *cobra.Command, _ []string) error {
	settings, err := config.LoadGreeting(viper.GetViper())
	if err != nil {
		return err
	}

	noMouse, _ := cmd.Flags().GetBool("no-mouse")
	opts := greetingOptions(settings)
	if noMouse {
		opts = append(opts, tui.WithFeatures(false, true, true))
	}

	slog.Debug("Starting greeting view",
		"static", settings.Static,
		"endpoint", settings.Endpoint,
		"theme", settings.Theme)

	if err := tui.Run(cmd.Context(), opts...); err != nil {
		return fmt.Errorf("greeting view failed: %w", err)
	}
	return nil
}

// greetingOptions translates the loaded settings into view options.
func greetingOptions(settings config.Greeting) []tui.Option {
	opts := []tui.Option{tui.WithTheme(themes.GetTheme(settings.Theme))}
	if settings.Static {
		return append(opts, tui.WithStatic(settings.StaticMessage))
	}
	return append(opts, tui.WithFetcher(greeting.NewClient(settings.Endpoint)))
}
