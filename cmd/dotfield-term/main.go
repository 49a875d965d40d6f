package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/dotfield/dotfield"
	"github.com/plus3/dotfield/host/term"
	"github.com/plus3/dotfield/prefs"
)

func main() {
	themeFlag := flag.String("theme", "", "Start in this theme (light or dark) instead of the saved one.")
	prefsPath := flag.String("prefs", "", "Prefs file path (defaults to the user config dir).")
	logPath := flag.String("log", "", "Write logs to this file; the terminal is busy drawing.")
	flag.Parse()

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	var store *prefs.Store
	var err error
	if *prefsPath != "" {
		store = prefs.NewStore(*prefsPath)
	} else if store, err = prefs.DefaultStore(); err != nil {
		logger.Printf("Prefs unavailable: %v", err)
	}

	theme, _, err := prefs.Resolve(store, os.Getenv)
	if err != nil {
		logger.Printf("Ignoring saved theme: %v", err)
	}
	if *themeFlag != "" {
		if theme, err = dotfield.ParseTheme(*themeFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -theme: %v\n", err)
			os.Exit(2)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := term.NewTerminal(screen, term.Config{
		Theme:  theme,
		Logger: logger,
		OnTheme: func(th dotfield.Theme) {
			if store == nil {
				return
			}
			if err := store.SaveTheme(th); err != nil {
				logger.Printf("Failed to save theme: %v", err)
			}
		},
	})
	if err := t.Run(ctx); err != nil {
		logger.Printf("Terminal loop ended: %v", err)
	}
}
