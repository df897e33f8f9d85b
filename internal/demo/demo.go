// Package demo is an end-to-end driver exercising the full render-and-encode
// path without a hand-authored scene file: it synthesizes a sprite sheet
// with boardgen, builds a MetaScene programmatically, and hands it to
// moviemaker.EncodeScene.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"os"

	"github.com/duskwillow/moviemaker"
	"github.com/duskwillow/moviemaker/internal/boardgen"
	"github.com/duskwillow/moviemaker/stage"
)

// Config is the set of parameters the demo needs beyond what
// moviemaker.RuntimeContext already carries.
type Config struct {
	TilePath   string // decodable image used as the stamped tile
	OutputPath string
	CellSize   int
}

// Run builds a single-scene timeline — a clear background plus one
// synthesized sprite sheet that slides across the frame — and encodes it
// through ctx.
func Run(ctx *moviemaker.RuntimeContext, cfg Config) error {
	tileFile, err := os.Open(cfg.TilePath)
	if err != nil {
		return fmt.Errorf("demo: open tile image: %w", err)
	}
	defer tileFile.Close()

	tile, _, err := image.Decode(tileFile)
	if err != nil {
		return fmt.Errorf("demo: decode tile image: %w", err)
	}

	mask := [][]bool{
		{true, false, true},
		{false, true, false},
		{true, false, true},
	}
	sheet := boardgen.BuildGrid(tile, mask, cfg.CellSize)
	spriteID := ctx.Registry.InsertSynth(sheet, "demo-grid")

	clear := image.NewRGBA(image.Rect(0, 0, ctx.Width, ctx.Height))
	draw.Draw(clear, clear.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)
	clearID := ctx.Registry.InsertSynth(clear, "demo-clear")

	nodeID := ctx.NextID()
	scale := stage.NodeScale{1, 1}
	meta := stage.MetaScene{
		Name:      "demo",
		ClearTpID: clearID,
		Nodes: []stage.MetaNode{
			{
				ID:   nodeID,
				TpID: spriteID,
				Name: "grid",
				Attr: stage.NodeAttr{
					Pos:    stage.NodePos{0, float64(ctx.Height) / 2, 0},
					Scale:  &scale,
					Active: true,
				},
			},
		},
		Timeline: map[string][]stage.MetaAction{
			fmt.Sprintf("%d", nodeID): {
				{
					Action:    stage.ActionMoveTo,
					StartT:    0,
					Duration:  durationPtr(ctx.Duration),
					PosStart:  &stage.NodePos{0, float64(ctx.Height) / 2, 0},
					PosTarget: &stage.NodePos{float64(ctx.Width), float64(ctx.Height) / 2, 0},
				},
			},
		},
	}

	return moviemaker.EncodeScene(ctx, meta, cfg.OutputPath)
}

func durationPtr(d float64) *float64 { return &d }
