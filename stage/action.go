package stage

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// actionResult is the set of attribute deltas one action contributes for
// one frame. Every field is a pointer so merge() can implement "later
// entries win per attribute" without a sentinel zero value.
type actionResult struct {
	x, y        *float64
	active      *bool
	rotationDeg *float64
	scale       *NodeScale
	size        *NodeSize
	opacity     *int
	anchor      *NodeAnchor
}

// merge folds other into r, with non-nil fields in other overwriting r's
// — this is what gives later-declared actions priority for the same
// attribute within one frame.
func (r *actionResult) merge(other actionResult) {
	if other.x != nil {
		r.x = other.x
	}
	if other.y != nil {
		r.y = other.y
	}
	if other.active != nil {
		r.active = other.active
	}
	if other.rotationDeg != nil {
		r.rotationDeg = other.rotationDeg
	}
	if other.scale != nil {
		r.scale = other.scale
	}
	if other.size != nil {
		r.size = other.size
	}
	if other.opacity != nil {
		r.opacity = other.opacity
	}
	if other.anchor != nil {
		r.anchor = other.anchor
	}
}

// evaluateAction maps one action plus its local elapsed time tau (= t -
// start_t, already known non-negative by the caller) to the attribute
// deltas it contributes this frame. A fresh gween.Tween is built per call
// rather than stepped with per-frame dt: the tween is a pure function of
// tau, so there is nothing to accumulate across frames.
func evaluateAction(a MetaAction, tau float64) actionResult {
	switch a.Action {
	case ActionMoveTo:
		if a.PosStart == nil || a.PosTarget == nil {
			return actionResult{}
		}
		duration := derefDuration(a.Duration)
		tx, _ := gween.New(float32(a.PosStart[0]), float32(a.PosTarget[0]), float32(duration), ease.Linear).Update(float32(tau))
		ty, _ := gween.New(float32(a.PosStart[1]), float32(a.PosTarget[1]), float32(duration), ease.Linear).Update(float32(tau))
		x, y := float64(tx), float64(ty)
		return actionResult{x: &x, y: &y}

	case ActionScaleTo:
		if a.ScaleStart == nil || a.ScaleTarget == nil {
			return actionResult{}
		}
		duration := derefDuration(a.Duration)
		sx, _ := gween.New(float32(a.ScaleStart[0]), float32(a.ScaleTarget[0]), float32(duration), ease.Linear).Update(float32(tau))
		sy, _ := gween.New(float32(a.ScaleStart[1]), float32(a.ScaleTarget[1]), float32(duration), ease.Linear).Update(float32(tau))
		scale := NodeScale{float64(sx), float64(sy)}
		return actionResult{scale: &scale}

	case ActionActive:
		if a.Active == nil {
			return actionResult{}
		}
		active := *a.Active
		return actionResult{active: &active}

	default:
		return actionResult{}
	}
}

// applyActions evaluates every bound action against global time t, merges
// per-node deltas (later actions in declaration order win ties), writes the
// result onto the matching NodeGraph, and reports whether anything actually
// changed via a scalar-equality check per attribute. Actions whose start_t
// is still in the future this frame contribute nothing.
func applyActions(t float64, actionsByNode map[uint64][]MetaAction, nodes map[uint64]*NodeGraph) bool {
	dirty := false
	for id, actions := range actionsByNode {
		node, ok := nodes[id]
		if !ok {
			continue
		}

		var merged actionResult
		for _, a := range actions {
			if t < a.StartT {
				continue
			}
			merged.merge(evaluateAction(a, t-a.StartT))
		}

		if merged.x != nil && node.Pos[0] != *merged.x {
			dirty = true
			node.Pos[0] = *merged.x
		}
		if merged.y != nil && node.Pos[1] != *merged.y {
			dirty = true
			node.Pos[1] = *merged.y
		}
		if merged.active != nil && node.Active != *merged.active {
			dirty = true
			node.Active = *merged.active
		}
		if merged.rotationDeg != nil && node.RotationDeg != *merged.rotationDeg {
			dirty = true
			node.RotationDeg = *merged.rotationDeg
		}
		if merged.scale != nil && node.Scale != *merged.scale {
			dirty = true
			node.Scale = *merged.scale
		}
		if merged.size != nil && (!node.HasSize || node.Size != *merged.size) {
			dirty = true
			node.HasSize = true
			node.Size = *merged.size
		}
		if merged.opacity != nil && node.Opacity != *merged.opacity {
			dirty = true
			node.Opacity = *merged.opacity
		}
		if merged.anchor != nil && node.Anchor != *merged.anchor {
			dirty = true
			node.Anchor = *merged.anchor
		}
	}
	return dirty
}

func derefDuration(d *float64) float64 {
	if d == nil {
		return 0
	}
	return *d
}
