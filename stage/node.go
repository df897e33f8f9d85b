package stage

import (
	"strconv"

	"github.com/duskwillow/moviemaker/internal/mmlog"
)

// NodeGraph is the mutable runtime counterpart to a MetaNode. Actions
// mutate it only within the apply step at a frame boundary.
type NodeGraph struct {
	ID   uint64
	Name string
	TpID string

	Pos         NodePos
	Active      bool
	RotationDeg float64
	Scale       NodeScale
	HasSize     bool
	Size        NodeSize
	Color       NodeColor
	Opacity     int
	Anchor      NodeAnchor

	IsStatic bool
	// IsShared is reserved metadata: declared on every node but never
	// consumed by the renderer (see DESIGN.md Open Question decisions).
	IsShared bool
}

// newNodeGraphFromMeta builds a NodeGraph from its declared MetaNode,
// applying the same defaults the compositor treats as "no override":
// scale 1:1, opacity fully opaque, anchor top-left, no rotation.
func newNodeGraphFromMeta(m MetaNode) *NodeGraph {
	n := &NodeGraph{
		ID:       m.ID,
		Name:     m.Name,
		TpID:     m.TpID,
		Pos:      m.Attr.Pos,
		Active:   m.Attr.Active,
		Scale:    NodeScale{1, 1},
		Opacity:  255,
		IsStatic: m.Attr.IsStatic,
		IsShared: m.Attr.IsShared,
	}
	if m.Attr.RotationDeg != nil {
		n.RotationDeg = *m.Attr.RotationDeg
	}
	if m.Attr.Scale != nil {
		n.Scale = *m.Attr.Scale
	}
	if m.Attr.Size != nil {
		n.HasSize = true
		n.Size = *m.Attr.Size
	}
	if m.Attr.Color != nil {
		n.Color = *m.Attr.Color
	}
	if m.Attr.Opacity != nil {
		n.Opacity = *m.Attr.Opacity
	}
	if m.Attr.Anchor != nil {
		n.Anchor = *m.Attr.Anchor
	}
	return n
}

// buildNodeTable creates the id -> NodeGraph map and the declaration-order
// id slice compositing uses for back-to-front draw order.
func buildNodeTable(nodes []MetaNode) (map[uint64]*NodeGraph, []uint64) {
	table := make(map[uint64]*NodeGraph, len(nodes))
	order := make([]uint64, 0, len(nodes))
	for _, m := range nodes {
		table[m.ID] = newNodeGraphFromMeta(m)
		order = append(order, m.ID)
	}
	return table, order
}

// bindActions resolves each timeline key to a node id and returns the
// per-node, declaration-ordered action lists. A key that doesn't parse as
// an unsigned integer, or that names a node absent from nodes, is logged
// and dropped rather than treated as fatal.
func bindActions(timeline map[string][]MetaAction, nodes map[uint64]*NodeGraph) map[uint64][]MetaAction {
	bound := make(map[uint64][]MetaAction, len(timeline))
	for key, actions := range timeline {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			mmlog.Get().Warn("stage: timeline key is not a node id", "key", key)
			continue
		}
		if _, ok := nodes[id]; !ok {
			mmlog.Get().Warn("stage: action references unknown node, dropping", "node_id", id)
			continue
		}
		list := make([]MetaAction, len(actions))
		copy(list, actions)
		for i := range list {
			list[i].BindNode = id
			if list[i].Action == ActionActive && list[i].Duration == nil {
				d := activeDurationSentinel
				list[i].Duration = &d
			}
		}
		bound[id] = list
	}
	return bound
}
