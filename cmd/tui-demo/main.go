// Package main runs the greeting view without a backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Veraticus/tasknest/internal/tui"
	"github.com/Veraticus/tasknest/internal/tui/themes"
)

func main() {
	message := flag.String("message", "", "message shown in the modal")
	theme := flag.String("theme", "default", "color theme")
	flag.Parse()

	err := tui.Run(context.Background(),
		tui.WithStatic(*message),
		tui.WithTheme(themes.GetTheme(*theme)),
		tui.WithSize(120, 40),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
