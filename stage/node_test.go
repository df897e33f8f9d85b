package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildNodeTablePreservesDeclarationOrder(t *testing.T) {
	nodes := []MetaNode{
		{ID: 5, Name: "e"},
		{ID: 1, Name: "a"},
		{ID: 3, Name: "c"},
	}

	table, order := buildNodeTable(nodes)

	assert.Equal(t, []uint64{5, 1, 3}, order)
	assert.Len(t, table, 3)
	assert.Equal(t, "a", table[1].Name)
}

func TestNewNodeGraphFromMetaAppliesDefaults(t *testing.T) {
	n := newNodeGraphFromMeta(MetaNode{ID: 1, Attr: NodeAttr{Pos: NodePos{1, 2, 0}}})

	assert.Equal(t, NodeScale{1, 1}, n.Scale)
	assert.Equal(t, 255, n.Opacity)
	assert.False(t, n.HasSize)
	assert.Equal(t, NodeAnchor{0, 0}, n.Anchor)
}

func TestNewNodeGraphFromMetaHonorsOverrides(t *testing.T) {
	opacity := 128
	size := NodeSize{10, 20}
	n := newNodeGraphFromMeta(MetaNode{
		ID: 1,
		Attr: NodeAttr{
			Opacity: &opacity,
			Size:    &size,
		},
	})

	assert.Equal(t, 128, n.Opacity)
	assert.True(t, n.HasSize)
	assert.Equal(t, size, n.Size)
}

func TestBindActionsDropsUnknownNodeReference(t *testing.T) {
	nodes, _ := buildNodeTable([]MetaNode{{ID: 1}})
	timeline := map[string][]MetaAction{
		"1":   {{Action: ActionActive}},
		"999": {{Action: ActionActive}},
	}

	bound := bindActions(timeline, nodes)

	assert.Len(t, bound, 1)
	_, ok := bound[1]
	assert.True(t, ok)
	_, ok = bound[999]
	assert.False(t, ok)
}

func TestBindActionsDropsUnparsableKey(t *testing.T) {
	nodes, _ := buildNodeTable([]MetaNode{{ID: 1}})
	timeline := map[string][]MetaAction{
		"not-a-number": {{Action: ActionActive}},
	}

	bound := bindActions(timeline, nodes)

	assert.Len(t, bound, 0)
}
