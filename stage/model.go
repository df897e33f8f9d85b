// Package stage holds the declarative scene model (as deserialized from
// JSON), the runtime node/action representation built from it, and the
// per-frame render loop that composites a scene into an RGBA image.
package stage

import (
	"encoding/json"
	"fmt"
)

// NodePos is a node position in (x, y, z) pixels. Only x and y feed the
// compositor today; z is carried through for forward compatibility with a
// future z-sort. This engine deliberately does not z-sort — nodes always
// composite in declaration order.
type NodePos [3]float64

// NodeScale is a (sx, sy) scale factor pair.
type NodeScale [2]float64

// NodeSize is a (width, height) pixel size override.
type NodeSize [2]float64

// NodeColor is an (r, g, b, a) tint, each 0-255. Declared on every node but
// not consumed by the compositor — see DESIGN.md's Open Question decisions.
type NodeColor [4]int

// NodeAnchor is a (ax, ay) pair in [0,1]^2 selecting which point of a
// sprite lands on its declared position.
type NodeAnchor [2]float64

// NodeAttr is the attribute block embedded in a MetaNode.
type NodeAttr struct {
	Pos         NodePos     `json:"pos"`
	RotationDeg *float64    `json:"rotation,omitempty"`
	Scale       *NodeScale  `json:"scale,omitempty"`
	Size        *NodeSize   `json:"size,omitempty"`
	Color       *NodeColor  `json:"color,omitempty"`
	Opacity     *int        `json:"opacity,omitempty"`
	Anchor      *NodeAnchor `json:"anchor,omitempty"`
	Active      bool        `json:"active"`
	IsStatic    bool        `json:"is-static"`
	IsShared    bool        `json:"is-shared"`
}

// MetaNode is one sprite or placeholder declared in a scene file.
type MetaNode struct {
	ID   uint64   `json:"id"`
	TpID string   `json:"tp_id,omitempty"`
	Name string   `json:"name"`
	Attr NodeAttr `json:"attr"`
}

// MetaAction is one timeline entry bound to a node. BindNode is filled in
// during the action-binding pass, never present in the scene file JSON.
type MetaAction struct {
	BindNode uint64 `json:"-"`

	Action      string     `json:"action"`
	StartT      float64    `json:"start_t"`
	Duration    *float64   `json:"duration,omitempty"`
	PosStart    *NodePos   `json:"pos_star,omitempty"`
	PosTarget   *NodePos   `json:"pos_target,omitempty"`
	ScaleStart  *NodeScale `json:"scale_star,omitempty"`
	ScaleTarget *NodeScale `json:"scale_target,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

// Action kind tags, matching the closed set the JSON "action" field uses.
const (
	ActionMoveTo  = "move_to"
	ActionScaleTo = "scale_to"
	ActionActive  = "active"
)

// activeDurationSentinel is the default duration applied to an "active"
// action when the scene file omits one. The toggle itself is instantaneous;
// this only bounds how long the action is considered "in progress" for
// advisory purposes.
const activeDurationSentinel = 10.0

// MetaScene is one scene's declarative description.
type MetaScene struct {
	Name         string                  `json:"name"`
	ClearTpID    string                  `json:"clear-tp-id,omitempty"`
	NodeTextures []string                `json:"node-textures,omitempty"`
	Nodes        []MetaNode              `json:"nodes"`
	Timeline     map[string][]MetaAction `json:"timeline"`
}

// MetaSceneList is the top-level scene file document.
type MetaSceneList struct {
	Scenes []MetaScene `json:"meta_scene_list"`
}

// LoadSceneList parses a full scene file document in one shot — a single
// full-document unmarshal, no streaming.
func LoadSceneList(data []byte) (MetaSceneList, error) {
	var list MetaSceneList
	if err := json.Unmarshal(data, &list); err != nil {
		return MetaSceneList{}, fmt.Errorf("stage: parse scene document: %w", err)
	}
	return list, nil
}
