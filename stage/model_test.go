package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskwillow/moviemaker/stage"
)

const sampleScene = `{
  "meta_scene_list": [
    {
      "name": "s1",
      "clear-tp-id": "bg",
      "node-textures": ["a.png", "b.png"],
      "nodes": [
        {"id": 1, "tp_id": "0", "name": "n1", "attr": {"pos": [0,0,0], "active": true}}
      ],
      "timeline": {
        "1": [
          {"action": "move_to", "start_t": 0, "duration": 1, "pos_star": [0,0,0], "pos_target": [10,0,0]}
        ]
      }
    }
  ]
}`

func TestLoadSceneListParsesDocument(t *testing.T) {
	list, err := stage.LoadSceneList([]byte(sampleScene))
	require.NoError(t, err)
	require.Len(t, list.Scenes, 1)

	scene := list.Scenes[0]
	assert.Equal(t, "s1", scene.Name)
	assert.Equal(t, "bg", scene.ClearTpID)
	assert.Equal(t, []string{"a.png", "b.png"}, scene.NodeTextures)
	require.Len(t, scene.Nodes, 1)
	assert.Equal(t, uint64(1), scene.Nodes[0].ID)

	actions := scene.Timeline["1"]
	require.Len(t, actions, 1)
	assert.Equal(t, stage.ActionMoveTo, actions[0].Action)
	require.NotNil(t, actions[0].PosStart)
	assert.Equal(t, stage.NodePos{0, 0, 0}, *actions[0].PosStart)
	require.NotNil(t, actions[0].PosTarget)
	assert.Equal(t, stage.NodePos{10, 0, 0}, *actions[0].PosTarget)
}

func TestLoadSceneListRejectsMalformedJSON(t *testing.T) {
	_, err := stage.LoadSceneList([]byte("{not json"))
	assert.Error(t, err)
}
