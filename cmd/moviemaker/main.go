// Command moviemaker renders a timeline-driven scene file to an H.264 MP4.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/duskwillow/moviemaker"
	"github.com/duskwillow/moviemaker/internal/demo"
	"github.com/duskwillow/moviemaker/stage"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		scenePath  = flag.String("scene", "", "path to a scene JSON file (meta_scene_list document)")
		sourceRoot = flag.String("source", ".", "directory relative texture paths resolve against")
		out        = flag.String("out", "out.mp4", "output MP4 path")
		width      = flag.Int("width", 1280, "view-port width in pixels")
		height     = flag.Int("height", 720, "view-port height in pixels")
		duration   = flag.Float64("duration", 5, "stream duration in seconds")
		fps        = flag.Int("fps", 30, "frames per second")
		runDemo    = flag.Bool("demo", false, "run the built-in demo scene instead of loading -scene")
		tile       = flag.String("tile", "", "tile image path for -demo")
		verbose    = flag.Bool("v", false, "enable info-level logging")
	)
	flag.Parse()

	if *verbose {
		moviemaker.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	ctx := moviemaker.NewRuntimeContext(*sourceRoot, *width, *height, *duration, *fps)

	if *runDemo {
		if *tile == "" {
			fmt.Fprintln(os.Stderr, "moviemaker: -demo requires -tile")
			return 2
		}
		if err := demo.Run(ctx, demo.Config{TilePath: *tile, OutputPath: *out, CellSize: 16}); err != nil {
			fmt.Fprintln(os.Stderr, "moviemaker:", err)
			return 1
		}
		return 0
	}

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "moviemaker: -scene is required (or pass -demo)")
		return 2
	}

	data, err := os.ReadFile(*scenePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "moviemaker:", err)
		return 1
	}

	list, err := stage.LoadSceneList(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "moviemaker:", err)
		return 1
	}
	if len(list.Scenes) == 0 {
		fmt.Fprintln(os.Stderr, "moviemaker: scene file has no scenes")
		return 1
	}

	if err := moviemaker.EncodeScene(ctx, list.Scenes[0], *out); err != nil {
		fmt.Fprintln(os.Stderr, "moviemaker:", err)
		return 1
	}
	return 0
}
