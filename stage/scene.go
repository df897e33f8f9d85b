package stage

import (
	"fmt"
	"image"
	"strconv"

	"github.com/duskwillow/moviemaker/compositor"
	"github.com/duskwillow/moviemaker/texture"
)

// SceneRuntime is one bound, renderable instance of a MetaScene: the node
// table, the bound action lists, and a two-layer frame cache (a static
// "beach" layer built once, a per-frame dynamic layer on top). A
// SceneRuntime is built once per scene and rendered once per frame by the
// encoder pipeline.
type SceneRuntime struct {
	name     string
	registry *texture.Registry

	nodes         map[uint64]*NodeGraph
	order         []uint64 // declaration order, drives back-to-front compositing
	actionsByNode map[uint64][]MetaAction

	clearImage        *image.RGBA
	dynamicBeachImage *image.RGBA
	catchImage        *image.RGBA

	firstFrame bool
	dirty      bool

	drawCalls int
}

// NewSceneRuntime binds a MetaScene against a texture registry: it loads the
// scene's node-textures at their array-position ids ("0", "1", …), resolves
// the clear/background texture, builds the node table, and runs the
// action-binding pass. reg must already be usable for LoadFromPath (its
// source root configured) before this is called.
func NewSceneRuntime(meta MetaScene, reg *texture.Registry) (*SceneRuntime, error) {
	for idx, relPath := range meta.NodeTextures {
		if _, err := reg.LoadFromPath(relPath, strconv.Itoa(idx)); err != nil {
			return nil, fmt.Errorf("stage: scene %q: %w", meta.Name, err)
		}
	}

	nodes, order := buildNodeTable(meta.Nodes)
	actionsByNode := bindActions(meta.Timeline, nodes)

	clear := compositor.ToRGBA(reg.Get(meta.ClearTpID).Bitmap)

	return &SceneRuntime{
		name:          meta.Name,
		registry:      reg,
		nodes:         nodes,
		order:         order,
		actionsByNode: actionsByNode,
		clearImage:    clear,
		firstFrame:    true,
		dirty:         true,
	}, nil
}

// DrawCalls returns the running total of compositor blend invocations, the
// primary observability signal for a render run.
func (s *SceneRuntime) DrawCalls() int {
	return s.drawCalls
}

// Render produces the frame for global time t: evaluate actions, take the
// fast path when nothing changed, otherwise rebuild (once) the static beach
// image or (every dirty frame) the dynamic layer on top of it.
func (s *SceneRuntime) Render(t float64) *image.RGBA {
	s.dirty = applyActions(t, s.actionsByNode, s.nodes)

	if !s.dirty && !s.firstFrame {
		return s.catchImage
	}

	if s.firstFrame {
		s.dynamicBeachImage = compositor.Clone(s.clearImage)
		for _, id := range s.order {
			n := s.nodes[id]
			if !n.IsStatic {
				continue
			}
			s.blendNode(s.dynamicBeachImage, n)
		}

		s.catchImage = compositor.Clone(s.dynamicBeachImage)
		for _, id := range s.order {
			n := s.nodes[id]
			if n.IsStatic || !n.Active {
				continue
			}
			s.blendNode(s.catchImage, n)
		}

		s.firstFrame = false
		return s.catchImage
	}

	frame := compositor.Clone(s.dynamicBeachImage)
	for _, id := range s.order {
		n := s.nodes[id]
		if n.IsStatic || !n.Active {
			continue
		}
		s.blendNode(frame, n)
	}
	s.catchImage = frame
	return frame
}

// blendNode looks up n's texture and composites it onto dst at its current
// attributes, counting the draw call. A node with no tp_id is skipped
// rather than treated as an error — a sprite with no texture is only valid
// while inactive, and an active-but-textureless node is a scene-authoring
// bug we don't want to turn into a panic mid-encode.
func (s *SceneRuntime) blendNode(dst *image.RGBA, n *NodeGraph) {
	if n.TpID == "" {
		return
	}
	tex := s.registry.Get(n.TpID)

	opts := compositor.Options{
		ScaleX:      &n.Scale[0],
		ScaleY:      &n.Scale[1],
		RotationDeg: &n.RotationDeg,
		Opacity:     &n.Opacity,
		AnchorX:     &n.Anchor[0],
		AnchorY:     &n.Anchor[1],
	}
	if n.HasSize {
		w, h := n.Size[0], n.Size[1]
		opts.Width, opts.Height = &w, &h
	}

	compositor.Blend(dst, tex.Bitmap, n.Pos[0], n.Pos[1], opts)
	s.drawCalls++
}
