package main

import (
	"flag"
	"log"

	"github.com/plus3/dotfield/dotfield"
	"github.com/plus3/dotfield/snapshot"
	"gonum.org/v1/gonum/spatial/r2"
)

func main() {
	out := flag.String("out", "dotfield.png", "Output PNG path.")
	width := flag.Int("width", 1280, "Image width.")
	height := flag.Int("height", 720, "Image height.")
	themeFlag := flag.String("theme", "dark", "Theme: light or dark.")
	pointerX := flag.Float64("x", -1, "Pointer x; negative leaves the field at rest.")
	pointerY := flag.Float64("y", -1, "Pointer y.")
	frames := flag.Int("frames", 1, "Frames to run before capturing.")
	caption := flag.String("caption", "", "Text drawn in the bottom-left corner.")
	flag.Parse()

	theme, err := dotfield.ParseTheme(*themeFlag)
	if err != nil {
		log.Fatalf("Invalid -theme: %v", err)
	}

	opts := snapshot.Options{
		Width:   *width,
		Height:  *height,
		Theme:   theme,
		Frames:  *frames,
		Caption: *caption,
		Logger:  log.Default(),
	}
	if *pointerX >= 0 && *pointerY >= 0 {
		opts.Pointer = &r2.Vec{X: *pointerX, Y: *pointerY}
	}

	if err := snapshot.SavePNG(*out, opts); err != nil {
		log.Fatalf("Snapshot failed: %v", err)
	}
	log.Printf("Wrote %dx%d %s snapshot to %s", *width, *height, theme, *out)
}
