package stage_test

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskwillow/moviemaker/stage"
	"github.com/duskwillow/moviemaker/texture"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestSceneRuntimeEmptySceneEmitsClearImage(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	clearID := reg.InsertSynth(solid(10, 10, color.RGBA{255, 0, 0, 255}), "clear")

	runtime, err := stage.NewSceneRuntime(stage.MetaScene{Name: "empty", ClearTpID: clearID}, reg)
	require.NoError(t, err)

	frame := runtime.Render(0)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, frame.RGBAAt(5, 5))

	frame2 := runtime.Render(1)
	assert.Equal(t, frame.Pix, frame2.Pix, "no actions at all: consecutive frames must be byte-identical")
}

func TestSceneRuntimeStaticSpriteBlendsOnce(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	clearID := reg.InsertSynth(solid(20, 20, color.RGBA{255, 0, 0, 255}), "clear")
	spriteID := reg.InsertSynth(solid(4, 4, color.RGBA{0, 0, 255, 255}), "sprite")

	meta := stage.MetaScene{
		Name:      "static",
		ClearTpID: clearID,
		Nodes: []stage.MetaNode{
			{ID: 1, TpID: spriteID, Attr: stage.NodeAttr{Pos: stage.NodePos{8, 8, 0}, IsStatic: true, Active: true}},
		},
	}

	runtime, err := stage.NewSceneRuntime(meta, reg)
	require.NoError(t, err)

	frame := runtime.Render(0)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, frame.RGBAAt(9, 9))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, frame.RGBAAt(0, 0))

	frame2 := runtime.Render(1)
	assert.Equal(t, frame.Pix, frame2.Pix)
	assert.Equal(t, 1, runtime.DrawCalls(), "static node blends exactly once, on the first frame")
}

func TestSceneRuntimeMoveToAdvancesEachFrame(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	clearID := reg.InsertSynth(solid(100, 100, color.RGBA{255, 0, 0, 255}), "clear")
	spriteID := reg.InsertSynth(solid(10, 10, color.RGBA{0, 255, 0, 255}), "sprite")

	nodeID := uint64(1)
	meta := stage.MetaScene{
		Name:      "move",
		ClearTpID: clearID,
		Nodes: []stage.MetaNode{
			{ID: nodeID, TpID: spriteID, Attr: stage.NodeAttr{Pos: stage.NodePos{0, 0, 0}, Active: true}},
		},
		Timeline: map[string][]stage.MetaAction{
			"1": {{
				Action:    stage.ActionMoveTo,
				StartT:    0,
				Duration:  f64ptr(1.0),
				PosStart:  &stage.NodePos{0, 0, 0},
				PosTarget: &stage.NodePos{90, 0, 0},
			}},
		},
	}

	runtime, err := stage.NewSceneRuntime(meta, reg)
	require.NoError(t, err)

	for k := 0; k < 10; k++ {
		t0 := float64(k) / 10.0
		frame := runtime.Render(t0)
		expectedLeft := 9 * k
		assert.Equal(t, color.RGBA{0, 255, 0, 255}, frame.RGBAAt(expectedLeft+5, 5), "frame %d", k)
	}
}

func TestSceneRuntimeDrawCallsCountStaticPlusActiveDynamicPerFrame(t *testing.T) {
	reg := texture.NewRegistry(t.TempDir())
	clearID := reg.InsertSynth(solid(50, 50, color.RGBA{0, 0, 0, 255}), "clear")
	staticID := reg.InsertSynth(solid(4, 4, color.RGBA{10, 10, 10, 255}), "static")
	dynamicID := reg.InsertSynth(solid(4, 4, color.RGBA{20, 20, 20, 255}), "dynamic")

	meta := stage.MetaScene{
		Name:      "mixed",
		ClearTpID: clearID,
		Nodes: []stage.MetaNode{
			{ID: 1, TpID: staticID, Attr: stage.NodeAttr{IsStatic: true, Active: true}},
			{ID: 2, TpID: dynamicID, Attr: stage.NodeAttr{Active: true, Pos: stage.NodePos{0, 0, 0}}},
		},
		Timeline: map[string][]stage.MetaAction{
			"2": {{
				Action:    stage.ActionMoveTo,
				StartT:    0,
				Duration:  f64ptr(3.0),
				PosStart:  &stage.NodePos{0, 0, 0},
				PosTarget: &stage.NodePos{30, 0, 0},
			}},
		},
	}

	runtime, err := stage.NewSceneRuntime(meta, reg)
	require.NoError(t, err)

	const frames = 4
	for k := 0; k < frames; k++ {
		runtime.Render(float64(k))
	}

	assert.Equal(t, 1+frames, runtime.DrawCalls())
}

func f64ptr(v float64) *float64 { return &v }
