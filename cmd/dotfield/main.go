package main

import (
	"flag"
	"log"
	"os"

	"github.com/plus3/dotfield/dotfield"
	"github.com/plus3/dotfield/host/window"
	"github.com/plus3/dotfield/prefs"
)

func main() {
	themeFlag := flag.String("theme", "", "Start in this theme (light or dark) instead of the saved one.")
	width := flag.Int("width", 1280, "Initial window width.")
	height := flag.Int("height", 720, "Initial window height.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	prefsPath := flag.String("prefs", "", "Prefs file path (defaults to the user config dir).")
	flag.Parse()

	store, err := openStore(*prefsPath)
	if err != nil {
		log.Printf("Prefs unavailable: %v", err)
	}

	theme, source, err := prefs.Resolve(store, os.Getenv)
	if err != nil {
		log.Printf("Ignoring saved theme: %v", err)
	}
	if *themeFlag != "" {
		if theme, err = dotfield.ParseTheme(*themeFlag); err != nil {
			log.Fatalf("Invalid -theme: %v", err)
		}
		source = "flag"
	}
	log.Printf("Starting with %s theme (%s)", theme, source)

	cfg := window.Config{
		Title:  "dotfield",
		Width:  *width,
		Height: *height,
		Theme:  theme,
		Logger: log.Default(),
		OnTheme: func(t dotfield.Theme) {
			if store == nil {
				return
			}
			if err := store.SaveTheme(t); err != nil {
				log.Printf("Failed to save theme: %v", err)
			}
		},
	}
	if *debug {
		cfg.Overlay = window.NewDebugOverlay(cfg.Title, cfg.Width, cfg.Height)
	}

	if err := window.NewGame(cfg).Run(); err != nil {
		log.Fatalf("Window closed with error: %v", err)
	}
}

func openStore(path string) (*prefs.Store, error) {
	if path != "" {
		return prefs.NewStore(path), nil
	}
	return prefs.DefaultStore()
}
